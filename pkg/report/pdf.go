package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/limaJavier/lessonplanner/pkg/model"
)

const (
	coreFont   = "Arial"
	customFont = "timetable"
	pageWidth  = 277.0 // Landscape A4 minus margins
	timeWidth  = 30.0
)

// PdfReporter writes one landscape page per group. The core font only covers Latin-1, so Cyrillic text needs a
// UTF-8 TrueType font file.
type PdfReporter struct {
	font string
}

func NewPdfReporter(font string) *PdfReporter {
	return &PdfReporter{font: font}
}

func (reporter *PdfReporter) Render(writer io.Writer, timetable *model.Timetable) error {
	fontDir := ""
	if reporter.font != "" {
		fontDir = filepath.Dir(reporter.font)
	}
	pdf := gofpdf.New("L", "mm", "A4", fontDir)
	pdf.SetMargins(10, 15, 10)

	family, bold := coreFont, "B"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if reporter.font != "" {
		// Font files are resolved against the font directory
		pdf.AddUTF8Font(customFont, "", filepath.Base(reporter.font))
		family, bold = customFont, ""
		translate = func(text string) string { return text }
	}

	catalog := timetable.Catalog
	cellWidth := (pageWidth - timeWidth) / float64(catalog.DayCount())

	for _, group := range timetable.Groups() {
		grid, _ := timetable.Grid(group)
		pdf.AddPage()

		pdf.SetFont(family, bold, 14)
		pdf.CellFormat(0, 10, translate(fmt.Sprintf("Группа: %v", group)), "", 1, "C", false, 0, "")
		pdf.Ln(5)

		pdf.SetFont(family, bold, 9)
		pdf.CellFormat(timeWidth, 8, "", "1", 0, "C", false, 0, "")
		for _, day := range catalog.Days {
			pdf.CellFormat(cellWidth, 8, translate(day), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont(family, "", 7)
		for time, row := range grid.Render() {
			pdf.CellFormat(timeWidth, 10, translate(catalog.Times[time]), "1", 0, "", false, 0, "")
			for _, cell := range row {
				pdf.CellFormat(cellWidth, 10, translate(cell), "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}

		if abandoned := timetable.Abandoned(group); len(abandoned) > 0 {
			pdf.Ln(5)
			pdf.SetFont(family, bold, 9)
			pdf.CellFormat(0, 7, translate("Не назначено:"), "", 1, "", false, 0, "")
			pdf.SetFont(family, "", 8)
			for _, requirement := range abandoned {
				pdf.CellFormat(0, 6, translate(fmt.Sprintf("- %v (%v)", requirement.Subject, requirement.Teacher)), "", 1, "", false, 0, "")
			}
		}
	}

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("cannot render pdf report: %w", err)
	}
	return nil
}
