package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/limaJavier/lessonplanner/pkg/model"
)

const (
	FormatText = "text"
	FormatCsv  = "csv"
	FormatJson = "json"
	FormatPdf  = "pdf"
)

// Reporter writes a finished timetable in some document format
type Reporter interface {
	Render(writer io.Writer, timetable *model.Timetable) error
}

// New returns the reporter for the given format. font is only used by the pdf reporter.
func New(format string, font string) (Reporter, error) {
	switch strings.ToLower(format) {
	case FormatText:
		return NewTextReporter(), nil
	case FormatCsv:
		return NewCsvReporter(), nil
	case FormatJson:
		return NewJsonReporter(), nil
	case FormatPdf:
		return NewPdfReporter(font), nil
	default:
		return nil, fmt.Errorf("%v is not a valid report format", format)
	}
}
