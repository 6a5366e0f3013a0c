package junit

import (
	"encoding/xml"
	"fmt"
	"io"
)

// JUnit XML schema. Reference: https://llg.cubic.org/docs/junit/
// Each testcase carries exactly one of failure, skipped or system-out.
type (
	xmlSuite struct {
		XMLName  xml.Name  `xml:"testsuite"`
		Name     string    `xml:"name,attr"`
		Tests    int       `xml:"tests,attr"`
		Failures int       `xml:"failures,attr"`
		Skipped  int       `xml:"skipped,attr"`
		Time     string    `xml:"time,attr"`
		Cases    []xmlCase `xml:"testcase"`
	}

	xmlCase struct {
		ClassName string      `xml:"classname,attr"`
		Name      string      `xml:"name,attr"`
		Time      string      `xml:"time,attr,omitempty"`
		Failure   *xmlElement `xml:"failure,omitempty"`
		Skipped   *xmlElement `xml:"skipped,omitempty"`
		SystemOut *xmlElement `xml:"system-out,omitempty"`
	}

	xmlElement struct {
		Message string `xml:"message,attr,omitempty"`
		Body    string `xml:",cdata"`
	}
)

// encodeSuite serializes a finalized suite as indented JUnit XML.
func encodeSuite(w io.Writer, s *Suite) error {
	doc := xmlSuite{
		Name:     s.Name(),
		Tests:    s.Tests(),
		Failures: s.Failures(),
		Skipped:  s.Skipped(),
		Time:     formatSeconds(s.TimeSeconds()),
		Cases:    make([]xmlCase, 0, len(s.Cases())),
	}
	for _, c := range s.Cases() {
		doc.Cases = append(doc.Cases, toXMLCase(c))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("could not serialize report: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	return nil
}

func toXMLCase(c *Case) xmlCase {
	out := xmlCase{
		ClassName: c.ClassName,
		Name:      c.Name,
		Time:      c.Time,
	}
	el := &xmlElement{Message: c.Outcome.Message, Body: c.Outcome.Body}
	switch c.Outcome.Kind {
	case OutcomeFailure:
		out.Failure = el
	case OutcomeSkipped:
		out.Skipped = el
	default:
		out.SystemOut = el
	}
	return out
}
