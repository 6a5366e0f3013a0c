package gherkin_parser

import (
	"strings"
	"testing"

	messages "github.com/cucumber/messages/go/v21"
	"github.com/stretchr/testify/require"
)

func TestSearchFeatureFilesIn(t *testing.T) {
	t.Run("should return all feature files in a directory", func(t *testing.T) {
		expectedFiles := []string{
			"testdata/billing.feature",
			"testdata/nested/empty.feature",
		}

		actualFiles, err := SearchFeatureFilesIn([]string{"testdata"})

		require.Nil(t, err)
		require.Equal(t, expectedFiles, actualFiles)
	})

	t.Run("should fail for a missing directory", func(t *testing.T) {
		_, err := SearchFeatureFilesIn([]string{"testdata/does-not-exist"})

		require.Error(t, err)
	})
}

func TestParseFeatureFile(t *testing.T) {
	t.Run("should return the parsed feature with its uri", func(t *testing.T) {
		document, err := ParseFeatureFile("testdata/billing.feature")

		require.Nil(t, err)
		require.Equal(t, "testdata/billing.feature", document.Uri)
		require.Equal(t, "Billing", document.Feature.Name)
	})

	t.Run("should fail for gherkin syntax errors", func(t *testing.T) {
		_, err := ParseGherkinFile(strings.NewReader("Feature: one\nFeature: two\n"))

		require.Error(t, err)
	})
}

func TestParseTagExpression(t *testing.T) {
	t.Run("should return nil for empty input", func(t *testing.T) {
		evaluator, err := ParseTagExpression("  ")

		require.Nil(t, err)
		require.Nil(t, evaluator)
	})

	t.Run("should fail for an invalid expression", func(t *testing.T) {
		_, err := ParseTagExpression("invalid expression ((")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid tag expression")
	})
}

func TestFilterDocumentByTags(t *testing.T) {
	t.Run("filters scenarios by tag", func(t *testing.T) {
		evaluator, _ := ParseTagExpression("@smoke")

		doc := &messages.GherkinDocument{
			Feature: &messages.Feature{
				Children: []*messages.FeatureChild{
					{
						Scenario: &messages.Scenario{
							Name: "Smoke Test",
							Tags: []*messages.Tag{{Name: "@smoke"}},
						},
					},
					{
						Scenario: &messages.Scenario{
							Name: "Other Test",
							Tags: []*messages.Tag{{Name: "@other"}},
						},
					},
				},
			},
		}

		filtered := FilterDocumentByTags(doc, evaluator)
		require.Len(t, filtered.Feature.Children, 1)
		require.Equal(t, "Smoke Test", filtered.Feature.Children[0].Scenario.Name)
	})

	t.Run("inherits feature tags", func(t *testing.T) {
		evaluator, _ := ParseTagExpression("@feature")

		doc := &messages.GherkinDocument{
			Feature: &messages.Feature{
				Tags: []*messages.Tag{{Name: "@feature"}},
				Children: []*messages.FeatureChild{
					{
						Scenario: &messages.Scenario{
							Name: "Test",
							Tags: []*messages.Tag{},
						},
					},
				},
			},
		}

		filtered := FilterDocumentByTags(doc, evaluator)
		require.Len(t, filtered.Feature.Children, 1)
	})

	t.Run("handles complex expression with parentheses", func(t *testing.T) {
		evaluator, _ := ParseTagExpression("(@smoke or @ui) and not @slow")

		doc := &messages.GherkinDocument{
			Feature: &messages.Feature{
				Children: []*messages.FeatureChild{
					{Scenario: &messages.Scenario{Name: "Smoke Fast", Tags: []*messages.Tag{{Name: "@smoke"}}}},
					{Scenario: &messages.Scenario{Name: "UI Fast", Tags: []*messages.Tag{{Name: "@ui"}}}},
					{Scenario: &messages.Scenario{Name: "Smoke Slow", Tags: []*messages.Tag{{Name: "@smoke"}, {Name: "@slow"}}}},
					{Scenario: &messages.Scenario{Name: "Other", Tags: []*messages.Tag{{Name: "@other"}}}},
				},
			},
		}

		filtered := FilterDocumentByTags(doc, evaluator)
		require.Len(t, filtered.Feature.Children, 2)
		require.Equal(t, "Smoke Fast", filtered.Feature.Children[0].Scenario.Name)
		require.Equal(t, "UI Fast", filtered.Feature.Children[1].Scenario.Name)
	})

	t.Run("preserves background", func(t *testing.T) {
		evaluator, _ := ParseTagExpression("@smoke")

		doc := &messages.GherkinDocument{
			Feature: &messages.Feature{
				Children: []*messages.FeatureChild{
					{Background: &messages.Background{Name: "Setup"}},
					{Scenario: &messages.Scenario{Name: "Smoke Test", Tags: []*messages.Tag{{Name: "@smoke"}}}},
				},
			},
		}

		filtered := FilterDocumentByTags(doc, evaluator)
		require.Len(t, filtered.Feature.Children, 2)
		require.NotNil(t, filtered.Feature.Children[0].Background)
	})

	t.Run("filters scenarios within rules with tag inheritance", func(t *testing.T) {
		evaluator, _ := ParseTagExpression("@feature and @rule")

		doc := &messages.GherkinDocument{
			Feature: &messages.Feature{
				Tags: []*messages.Tag{{Name: "@feature"}},
				Children: []*messages.FeatureChild{
					{
						Rule: &messages.Rule{
							Tags: []*messages.Tag{{Name: "@rule"}},
							Children: []*messages.RuleChild{
								{Scenario: &messages.Scenario{Name: "Rule Scenario", Tags: []*messages.Tag{}}},
							},
						},
					},
				},
			},
		}

		filtered := FilterDocumentByTags(doc, evaluator)
		require.Len(t, filtered.Feature.Children, 1)
		require.NotNil(t, filtered.Feature.Children[0].Rule)
		require.Len(t, filtered.Feature.Children[0].Rule.Children, 1)
	})

	t.Run("drops a rule when no scenario matches", func(t *testing.T) {
		evaluator, _ := ParseTagExpression("@nonexistent")

		doc := &messages.GherkinDocument{
			Feature: &messages.Feature{
				Children: []*messages.FeatureChild{
					{
						Rule: &messages.Rule{
							Children: []*messages.RuleChild{
								{Scenario: &messages.Scenario{Name: "Rule Scenario"}},
							},
						},
					},
				},
			},
		}

		filtered := FilterDocumentByTags(doc, evaluator)
		require.Empty(t, filtered.Feature.Children)
	})

	t.Run("returns the document unchanged for a nil evaluator", func(t *testing.T) {
		doc := &messages.GherkinDocument{
			Feature: &messages.Feature{
				Children: []*messages.FeatureChild{
					{Scenario: &messages.Scenario{Name: "Test"}},
				},
			},
		}

		filtered := FilterDocumentByTags(doc, nil)
		require.Len(t, filtered.Feature.Children, 1)
	})
}

func TestExpandOutline(t *testing.T) {
	t.Run("should expand one instance per example row", func(t *testing.T) {
		document, err := ParseFeatureFile("testdata/billing.feature")
		require.Nil(t, err)

		var outline *messages.Scenario
		for _, child := range document.Feature.Children {
			if child.Scenario != nil && IsOutline(child.Scenario) {
				outline = child.Scenario
			}
		}
		require.NotNil(t, outline)

		instances := ExpandOutline(outline)

		require.Len(t, instances, 2)
		require.Equal(t, "a paid invoice of 10", instances[0][0].Text)
		require.Equal(t, "the refund is 10", instances[0][2].Text)
		require.Equal(t, "a paid invoice of 20", instances[1][0].Text)
	})

	t.Run("should return no instances for an outline without rows", func(t *testing.T) {
		outline := &messages.Scenario{
			Steps:    []*messages.Step{{Keyword: "Given ", Text: "a <thing>"}},
			Examples: []*messages.Examples{{}},
		}

		require.Empty(t, ExpandOutline(outline))
	})
}

func TestGetBackground(t *testing.T) {
	t.Run("should find the feature background", func(t *testing.T) {
		document, err := ParseFeatureFile("testdata/billing.feature")
		require.Nil(t, err)

		background := GetBackground(document.Feature)

		require.NotNil(t, background)
		require.Len(t, background.Steps, 1)
	})

	t.Run("should return nil when there is none", func(t *testing.T) {
		document, err := ParseFeatureFile("testdata/nested/empty.feature")
		require.Nil(t, err)

		require.Nil(t, GetBackground(document.Feature))
	})
}
