package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/limaJavier/lessonplanner/pkg/model"
)

const (
	DayColumn    = "День"
	TimeColumn   = "Время"
	StatusColumn = "Статус"

	statusPlaced    = "назначен"
	statusAbandoned = "не назначен"
)

var csvHeader = []string{model.GroupColumn, DayColumn, TimeColumn, model.SubjectColumn, model.TeacherColumn, StatusColumn}

// CsvReporter writes one row per lesson; abandoned lessons have no day nor time
type CsvReporter struct{}

func NewCsvReporter() *CsvReporter {
	return &CsvReporter{}
}

func (reporter *CsvReporter) Render(writer io.Writer, timetable *model.Timetable) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(csvHeader); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}

	for _, record := range csvRecords(timetable) {
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("cannot write csv record: %w", err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("cannot flush csv report: %w", err)
	}
	return nil
}

func csvRecords(timetable *model.Timetable) [][]string {
	records := make([][]string, 0)
	for _, group := range timetable.Groups() {
		grid, _ := timetable.Grid(group)
		for _, assignment := range grid.Assignments() {
			records = append(records, []string{
				group,
				timetable.Catalog.DayName(assignment.Day),
				timetable.Catalog.TimeName(assignment.Time),
				assignment.Requirement.Subject,
				assignment.Requirement.Teacher,
				statusPlaced,
			})
		}
		for _, requirement := range timetable.Abandoned(group) {
			records = append(records, []string{group, "", "", requirement.Subject, requirement.Teacher, statusAbandoned})
		}
	}
	return records
}
