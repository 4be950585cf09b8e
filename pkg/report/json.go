package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/limaJavier/lessonplanner/pkg/model"
)

type JsonReporter struct{}

func NewJsonReporter() *JsonReporter {
	return &JsonReporter{}
}

func (reporter *JsonReporter) Render(writer io.Writer, timetable *model.Timetable) error {
	document, err := NewDocument(timetable)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(document); err != nil {
		return fmt.Errorf("cannot write json report: %w", err)
	}
	return nil
}
