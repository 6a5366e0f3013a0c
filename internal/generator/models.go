package generator

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
)

const runnerPackage = "github.com/moinuddin14/karate/pkg/runner"

type (
	// Snippets renders pending step definitions for every step text
	// that matched no registered pattern.
	Snippets struct {
		PackageName string // Short package name; empty defaults to "main"
		PackagePath string // Full import path of the target package
		Steps       []string
	}
)

var (
	quotedPattern = regexp.MustCompile(`"[^"]*"`)
	numberPattern = regexp.MustCompile(`\d+`)
)

// PatternFor turns a step text into the step pattern of its snippet:
// quoted strings and numbers become capture groups, everything else is
// matched literally.
func PatternFor(text string) string {
	escaped := regexp.QuoteMeta(text)
	// QuoteMeta leaves digits and quotes untouched, so the
	// placeholders can be substituted afterwards.
	escaped = quotedPattern.ReplaceAllString(escaped, `"([^"]*)"`)
	escaped = numberPattern.ReplaceAllString(escaped, `(\d+)`)
	return escaped
}

// Generate writes one registration function binding every step to a
// pending implementation. The generated file compiles as-is; each
// pending body is meant to be replaced by hand.
func (s *Snippets) Generate(writer io.Writer) error {
	pkgName := s.PackageName
	if pkgName == "" {
		pkgName = "main"
	}
	file := jen.NewFilePathName(s.PackagePath, pkgName)

	names := s.functionNames()
	calls := make([]jen.Code, 0, len(s.Steps))
	for i, step := range s.Steps {
		calls = append(calls, jen.Id("r").Dot("RegisterStep").Call(
			jen.Lit(PatternFor(step)),
			jen.Id(names[i]),
		))
	}

	file.Comment("RegisterPendingSteps binds every step that was observed without an")
	file.Comment("implementation. Replace the pending bodies with real ones.")
	file.Func().
		Id("RegisterPendingSteps").
		Params(jen.Id("r").Op("*").Qual(runnerPackage, "Runner")).
		Block(calls...)

	for i, step := range s.Steps {
		file.Comment(names[i] + " implements the step \"" + step + "\".")
		file.Func().
			Id(names[i]).
			Params(jen.Id("ctx").Qual("context", "Context"), jen.Id("args").Op("...").String()).
			Error().
			Block(jen.Return(jen.Qual(runnerPackage, "ErrPending")))
	}

	return file.Render(writer)
}

// functionNames assigns one unique exported identifier per step.
func (s *Snippets) functionNames() []string {
	seen := make(map[string]int)
	names := make([]string, 0, len(s.Steps))
	for _, step := range s.Steps {
		name := funcNameFor(step)
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = name + strconv.Itoa(n+1)
		} else {
			seen[name] = 1
		}
		names = append(names, name)
	}
	return names
}

// funcNameFor derives an exported identifier from a step text, e.g.
// "the refund is 42" yields "TheRefundIs42".
func funcNameFor(text string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			if upperNext {
				r = unicode.ToUpper(r)
				upperNext = false
			}
			b.WriteRune(r)
		case unicode.IsDigit(r):
			b.WriteRune(r)
			upperNext = true
		default:
			upperNext = true
		}
	}
	name := b.String()
	if name == "" {
		return "Step"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "Step" + name
	}
	return name
}
