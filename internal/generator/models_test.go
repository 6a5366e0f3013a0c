package generator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatternFor(t *testing.T) {
	t.Run("captures numbers", func(t *testing.T) {
		require.Equal(t, `the refund is (\d+)`, PatternFor("the refund is 42"))
	})

	t.Run("captures quoted strings", func(t *testing.T) {
		require.Equal(t, `the user "([^"]*)" logs in`, PatternFor(`the user "alice" logs in`))
	})

	t.Run("escapes regex metacharacters", func(t *testing.T) {
		require.Equal(t, `a total of \$(\d+) \(net\)`, PatternFor("a total of $10 (net)"))
	})

	t.Run("keeps plain text literal", func(t *testing.T) {
		require.Equal(t, "a clean ledger", PatternFor("a clean ledger"))
	})
}

func Test_funcNameFor(t *testing.T) {
	t.Run("title-cases the words", func(t *testing.T) {
		require.Equal(t, "TheRefundIs42", funcNameFor("the refund is 42"))
	})

	t.Run("never starts with a digit", func(t *testing.T) {
		require.Equal(t, "Step42IsTheAnswer", funcNameFor("42 is the answer"))
	})

	t.Run("falls back for symbol-only text", func(t *testing.T) {
		require.Equal(t, "Step", funcNameFor("!!!"))
	})
}

func Test_functionNames(t *testing.T) {
	t.Run("disambiguates colliding names", func(t *testing.T) {
		s := &Snippets{Steps: []string{"pay now", "pay-now", "pay now!"}}

		require.Equal(t, []string{"PayNow", "PayNow2", "PayNow3"}, s.functionNames())
	})
}

func TestSnippets_Generate(t *testing.T) {
	t.Run("renders registrations and pending implementations", func(t *testing.T) {
		s := &Snippets{
			PackageName: "billing",
			PackagePath: "example.com/demo/billing",
			Steps:       []string{"a clean ledger", "the refund is 42"},
		}

		var buf bytes.Buffer
		require.NoError(t, s.Generate(&buf))

		src := buf.String()
		require.Contains(t, src, "package billing")
		require.Contains(t, src, "github.com/moinuddin14/karate/pkg/runner")
		require.Contains(t, src, "func RegisterPendingSteps(r *runner.Runner)")
		require.Contains(t, src, `r.RegisterStep("a clean ledger", ACleanLedger)`)
		require.Contains(t, src, `"the refund is (\\d+)"`)
		require.Contains(t, src, "func TheRefundIs42(ctx context.Context, args ...string) error")
		require.Contains(t, src, "return runner.ErrPending")
	})

	t.Run("defaults to package main", func(t *testing.T) {
		s := &Snippets{Steps: []string{"a thing"}}

		var buf bytes.Buffer
		require.NoError(t, s.Generate(&buf))

		require.Contains(t, buf.String(), "package main")
	})

	t.Run("drops the qualifier inside the runner package itself", func(t *testing.T) {
		s := &Snippets{
			PackageName: "runner",
			PackagePath: "github.com/moinuddin14/karate/pkg/runner",
			Steps:       []string{"a thing"},
		}

		var buf bytes.Buffer
		require.NoError(t, s.Generate(&buf))

		src := buf.String()
		require.Contains(t, src, "func RegisterPendingSteps(r *Runner)")
		require.Contains(t, src, "return ErrPending")
	})
}
