package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/limaJavier/lessonplanner/pkg/model"
)

// TextReporter writes the plain document: a title, then one table per group with time slots as rows and days as columns
type TextReporter struct{}

func NewTextReporter() *TextReporter {
	return &TextReporter{}
}

func (reporter *TextReporter) Render(writer io.Writer, timetable *model.Timetable) error {
	recoverable, err := model.RecoverableLessons(timetable)
	if err != nil {
		return err
	}

	builder := &strings.Builder{}
	builder.WriteString("Расписание:\n\n")

	for _, group := range timetable.Groups() {
		grid, _ := timetable.Grid(group)
		fmt.Fprintf(builder, "Группа: %v\n", group)

		table := tabwriter.NewWriter(builder, 0, 0, 2, ' ', 0)
		fmt.Fprintf(table, "\t%v\t\n", strings.Join(timetable.Catalog.Days, "\t"))
		for time, row := range grid.Render() {
			fmt.Fprintf(table, "%v\t%v\t\n", timetable.Catalog.Times[time], strings.Join(row, "\t"))
		}
		if err := table.Flush(); err != nil {
			return err
		}

		if abandoned := timetable.Abandoned(group); len(abandoned) > 0 {
			builder.WriteString("Не назначено:\n")
			for _, requirement := range abandoned {
				fmt.Fprintf(builder, "- %v (%v)\n", requirement.Subject, requirement.Teacher)
			}
			fmt.Fprintf(builder, "Можно разместить вручную: %v\n", recoverable[group])
		}
		builder.WriteString("\n\n")
	}

	if _, err := io.WriteString(writer, builder.String()); err != nil {
		return fmt.Errorf("cannot write text report: %w", err)
	}
	return nil
}
