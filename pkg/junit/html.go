package junit

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

// htmlCase is the per-case view model for the HTML report.
type htmlCase struct {
	Name      string
	ClassName string
	Time      string
	CSSClass  string // "failed", "skipped" or "passed"
	Label     string
	Message   string
	Body      string
}

// htmlData is the view model passed to the HTML template.
type htmlData struct {
	Name     string
	Tests    int
	Failures int
	Skipped  int
	Time     string
	Cases    []htmlCase
}

// buildHTMLData flattens a finalized suite for the HTML template.
func buildHTMLData(suite *Suite) htmlData {
	data := htmlData{
		Name:     suite.Name(),
		Tests:    suite.Tests(),
		Failures: suite.Failures(),
		Skipped:  suite.Skipped(),
		Time:     formatSeconds(suite.TimeSeconds()),
		Cases:    make([]htmlCase, 0, len(suite.Cases())),
	}
	for _, c := range suite.Cases() {
		data.Cases = append(data.Cases, htmlCase{
			Name:      c.Name,
			ClassName: c.ClassName,
			Time:      c.Time,
			CSSClass:  outcomeClass(c.Outcome.Kind),
			Label:     outcomeLabel(c.Outcome.Kind),
			Message:   c.Outcome.Message,
			Body:      c.Outcome.Body,
		})
	}
	return data
}

// outcomeClass returns the CSS class name for an outcome kind.
func outcomeClass(k OutcomeKind) string {
	switch k {
	case OutcomeFailure:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "passed"
	}
}

func outcomeLabel(k OutcomeKind) string {
	switch k {
	case OutcomeFailure:
		return "Failed"
	case OutcomeSkipped:
		return "Skipped"
	default:
		return "Passed"
	}
}

// GenerateHTMLReport writes a self-contained HTML rendering of a
// finalized suite to the given path. The page carries the summary
// counts and one card per test case with its outcome and step listing,
// styled with inline CSS only.
func GenerateHTMLReport(path string, suite *Suite) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create report directory %q: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create report file %q: %w", path, err)
	}
	defer f.Close()

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"summaryClass": func(failures int) string {
			if failures > 0 {
				return "has-failures"
			}
			return "all-passed"
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("could not parse HTML template: %w", err)
	}

	if err := tmpl.Execute(f, buildHTMLData(suite)); err != nil {
		return fmt.Errorf("could not render HTML report: %w", err)
	}

	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Name}} Test Report</title>
<style>
  *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto,
                 "Helvetica Neue", sans-serif;
    background: #f8f9fa; color: #212529; line-height: 1.6; padding: 2rem;
  }
  h1 { font-size: 1.4rem; margin-bottom: 1rem; }
  .summary {
    display: flex; gap: 1rem; flex-wrap: wrap; margin-bottom: 2rem;
    padding: 1rem 1.25rem; background: #fff; border-radius: 10px;
    border: 1px solid #e9ecef;
  }
  .summary.all-passed  { border: 2px solid #2b8a3e; background: #f6fef7; }
  .summary.has-failures { border: 2px solid #c92a2a; background: #fff5f5; }
  .summary-item { text-align: center; min-width: 90px; }
  .summary-item .number { font-size: 1.6rem; font-weight: 700; }
  .summary-item .label {
    font-size: 0.7rem; text-transform: uppercase; color: #868e96;
  }
  .number.green  { color: #2b8a3e; }
  .number.red    { color: #c92a2a; }
  .number.yellow { color: #e67700; }
  .number.blue   { color: #1864ab; }
  .case {
    margin-bottom: 0.5rem; background: #fff; border-radius: 8px;
    border: 1px solid #e9ecef; border-left: 4px solid #ced4da;
    padding: 0.6rem 1rem;
  }
  .case.passed  { border-left-color: #69db7c; }
  .case.failed  { border-left-color: #ff6b6b; }
  .case.skipped { border-left-color: #e6b800; }
  .case-name { font-weight: 600; font-size: 0.9rem; }
  .case-meta { font-size: 0.75rem; color: #868e96; }
  .case-message { font-size: 0.8rem; color: #c92a2a; margin-top: 0.25rem; }
  .case-body {
    font-family: "SF Mono", "Cascadia Code", monospace; font-size: 0.78rem;
    background: #1e1f22; color: #BCBEC4; border-radius: 6px;
    padding: 0.5rem 0.75rem; margin-top: 0.4rem; white-space: pre-wrap;
  }
</style>
</head>
<body>
<h1>{{.Name}}</h1>

<div class="summary {{summaryClass .Failures}}">
  <div class="summary-item">
    <div class="number blue">{{.Tests}}</div>
    <div class="label">Tests</div>
  </div>
  <div class="summary-item">
    <div class="number red">{{.Failures}}</div>
    <div class="label">Failures</div>
  </div>
  <div class="summary-item">
    <div class="number yellow">{{.Skipped}}</div>
    <div class="label">Skipped</div>
  </div>
  <div class="summary-item">
    <div class="number green">{{.Time}}s</div>
    <div class="label">Time</div>
  </div>
</div>

{{range .Cases}}
<div class="case {{.CSSClass}}">
  <span class="case-name">{{.Name}}</span>
  <div class="case-meta">{{.ClassName}}{{if .Time}} | {{.Time}}s{{end}} | {{.Label}}</div>
  {{if .Message}}<div class="case-message">{{.Message}}</div>{{end}}
  {{if .Body}}<div class="case-body">{{.Body}}</div>{{end}}
</div>
{{end}}
</body>
</html>
`
