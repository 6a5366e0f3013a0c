package gherkin_parser

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
	tagexpressions "github.com/cucumber/tag-expressions/go/v6"
	"github.com/google/uuid"
)

const (
	FeatureExtension = ".feature"
)

// SearchFeatureFilesIn walks the given directories and returns every
// .feature file found, in walk order.
func SearchFeatureFilesIn(directories []string) ([]string, error) {
	featureFiles := make([]string, 0)

	for _, directory := range directories {
		err := filepath.Walk(directory, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && strings.HasSuffix(info.Name(), FeatureExtension) {
				featureFiles = append(featureFiles, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("could not walk feature directory %s, error=%w", directory, err)
		}
	}
	return featureFiles, nil
}

// ParseGherkinFile parses Gherkin source into a document.
func ParseGherkinFile(reader io.Reader) (*messages.GherkinDocument, error) {
	document, err := gherkin.ParseGherkinDocument(reader, uuid.NewString)
	if err != nil {
		return nil, err
	}
	return document, nil
}

// ParseFeatureFile reads and parses one .feature file. The document's
// Uri is set to the given path.
func ParseFeatureFile(path string) (*messages.GherkinDocument, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s, error=%w", path, err)
	}
	document, err := ParseGherkinFile(strings.NewReader(string(file)))
	if err != nil {
		return nil, fmt.Errorf("gherkin parse error in file %s, error=%w", path, err)
	}
	document.Uri = path
	return document, nil
}

// ParseTagExpression compiles a Cucumber tag expression
// (e.g. "(@smoke or @ui) and not @slow"). Empty input yields a nil
// evaluator, meaning "match everything".
func ParseTagExpression(expr string) (tagexpressions.Evaluatable, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	evaluator, err := tagexpressions.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid tag expression %q: %w", expr, err)
	}
	return evaluator, nil
}

// FilterDocumentByTags returns a copy of the document keeping only the
// scenarios whose tags satisfy the evaluator. Feature and rule tags are
// inherited by their scenarios; backgrounds are always preserved; a
// rule survives when at least one of its scenarios does. A nil
// evaluator keeps everything.
func FilterDocumentByTags(document *messages.GherkinDocument, evaluator tagexpressions.Evaluatable) *messages.GherkinDocument {
	if evaluator == nil || document.Feature == nil {
		return document
	}

	featureTags := extractTagNames(document.Feature.Tags)
	children := make([]*messages.FeatureChild, 0, len(document.Feature.Children))
	for _, child := range document.Feature.Children {
		switch {
		case child.Background != nil:
			children = append(children, child)
		case child.Scenario != nil:
			tags := mergeTags(featureTags, extractTagNames(child.Scenario.Tags))
			if evaluator.Evaluate(tags) {
				children = append(children, child)
			}
		case child.Rule != nil:
			if rule := filterRule(child.Rule, featureTags, evaluator); rule != nil {
				children = append(children, &messages.FeatureChild{Rule: rule})
			}
		}
	}

	feature := *document.Feature
	feature.Children = children
	filtered := *document
	filtered.Feature = &feature
	return &filtered
}

func filterRule(rule *messages.Rule, featureTags []string, evaluator tagexpressions.Evaluatable) *messages.Rule {
	ruleTags := mergeTags(featureTags, extractTagNames(rule.Tags))
	children := make([]*messages.RuleChild, 0, len(rule.Children))
	kept := false
	for _, child := range rule.Children {
		switch {
		case child.Background != nil:
			children = append(children, child)
		case child.Scenario != nil:
			tags := mergeTags(ruleTags, extractTagNames(child.Scenario.Tags))
			if evaluator.Evaluate(tags) {
				children = append(children, child)
				kept = true
			}
		}
	}
	if !kept {
		return nil
	}
	copied := *rule
	copied.Children = children
	return &copied
}

// GetBackground returns the feature-level background, if any.
func GetBackground(feature *messages.Feature) *messages.Background {
	for _, child := range feature.Children {
		if child.Background != nil {
			return child.Background
		}
	}
	return nil
}

// GetRuleBackground returns the rule-level background, if any.
func GetRuleBackground(rule *messages.Rule) *messages.Background {
	for _, child := range rule.Children {
		if child.Background != nil {
			return child.Background
		}
	}
	return nil
}

// IsOutline reports whether a scenario is a Scenario Outline, i.e. it
// carries at least one Examples table.
func IsOutline(scenario *messages.Scenario) bool {
	return len(scenario.Examples) > 0
}

// ExpandOutline produces the concrete step lists of a Scenario Outline,
// one per example row across all Examples blocks, with <placeholder>
// occurrences replaced by the row's values. Step order and keywords are
// preserved.
func ExpandOutline(scenario *messages.Scenario) [][]messages.Step {
	instances := make([][]messages.Step, 0)
	for _, examples := range scenario.Examples {
		if examples.TableHeader == nil {
			continue
		}
		headers := cellValues(examples.TableHeader)
		for _, row := range examples.TableBody {
			values := cellValues(row)
			steps := make([]messages.Step, 0, len(scenario.Steps))
			for _, step := range scenario.Steps {
				expanded := *step
				expanded.Text = substitutePlaceholders(step.Text, headers, values)
				steps = append(steps, expanded)
			}
			instances = append(instances, steps)
		}
	}
	return instances
}

func cellValues(row *messages.TableRow) []string {
	values := make([]string, 0, len(row.Cells))
	for _, cell := range row.Cells {
		values = append(values, cell.Value)
	}
	return values
}

func substitutePlaceholders(text string, headers, values []string) string {
	for i, header := range headers {
		if i >= len(values) {
			break
		}
		text = strings.ReplaceAll(text, "<"+header+">", values[i])
	}
	return text
}

func extractTagNames(tags []*messages.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func mergeTags(parent, child []string) []string {
	merged := make([]string, 0, len(parent)+len(child))
	merged = append(merged, parent...)
	merged = append(merged, child...)
	return merged
}
