package model

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

const (
	GroupColumn   = "Группа"
	SubjectColumn = "Предмет"
	TeacherColumn = "Учитель"
)

var ErrMissingColumn = errors.New("missing column")

type RawRequirement struct {
	Group   string `mapstructure:"Группа" validate:"required"`
	Subject string `mapstructure:"Предмет" validate:"required"`
	Teacher string `mapstructure:"Учитель" validate:"required"`
}

// InputFromFile reads requirements from a JSON file (".json" extension) or from a CSV file (anything else)
func InputFromFile(file string) ([]LessonRequirement, error) {
	if strings.EqualFold(filepath.Ext(file), ".json") {
		return InputFromJson(file)
	}
	return InputFromCsv(file)
}

func InputFromCsv(file string) ([]LessonRequirement, error) {
	handle, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file: %w", err)
	}
	defer handle.Close()

	return ReadCsv(handle)
}

// sourceRow is a row of cells together with its position in the input, used in error messages
type sourceRow struct {
	position string
	cells    map[string]any
}

func ReadCsv(reader io.Reader) ([]LessonRequirement, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	record, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv input is empty: %w", ErrMissingColumn)
	} else if err != nil {
		return nil, fmt.Errorf("cannot parse csv input: %w", err)
	}

	header := lo.Map(record, func(column string, _ int) string {
		return strings.TrimSpace(strings.TrimPrefix(column, "\ufeff"))
	})
	for _, column := range []string{GroupColumn, SubjectColumn, TeacherColumn} {
		if !lo.Contains(header, column) {
			return nil, fmt.Errorf("column \"%v\" not found in %v: %w", column, header, ErrMissingColumn)
		}
	}

	rows := make([]sourceRow, 0)
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("cannot parse csv input: %w", err)
		}

		// Skip rows made only of separators
		if lo.EveryBy(record, func(value string) bool { return strings.TrimSpace(value) == "" }) {
			continue
		}

		line, _ := csvReader.FieldPos(0)
		row := sourceRow{position: fmt.Sprintf("line %v", line), cells: make(map[string]any)}
		for i, column := range header {
			if i < len(record) {
				row.cells[column] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return decodeRows(rows)
}

func InputFromJson(file string) ([]LessonRequirement, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}

	var inputJson []map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, fmt.Errorf("cannot parse json input: %w", err)
	}

	return decodeRows(lo.Map(inputJson, func(cells map[string]any, i int) sourceRow {
		return sourceRow{position: fmt.Sprintf("item %v", i+1), cells: cells}
	}))
}

func decodeRows(rows []sourceRow) ([]LessonRequirement, error) {
	rawInput := make([]RawRequirement, len(rows))
	for i, row := range rows {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &rawInput[i],
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(row.cells); err != nil {
			return nil, fmt.Errorf("%v: %w", row.position, err)
		}
	}
	return processRawInput(rawInput, lo.Map(rows, func(row sourceRow, _ int) string { return row.position }))
}

// ProcessRawInput trims and validates raw rows, giving each requirement its row position as id
func ProcessRawInput(rawInput []RawRequirement) ([]LessonRequirement, error) {
	return processRawInput(rawInput, lo.Times(len(rawInput), func(i int) string { return fmt.Sprintf("row %v", i+1) }))
}

func processRawInput(rawInput []RawRequirement, positions []string) ([]LessonRequirement, error) {
	validate := validator.New()
	requirements := make([]LessonRequirement, 0, len(rawInput))

	for i, raw := range rawInput {
		raw.Group = strings.TrimSpace(raw.Group)
		raw.Subject = strings.TrimSpace(raw.Subject)
		raw.Teacher = strings.TrimSpace(raw.Teacher)

		if err := validate.Struct(raw); err != nil {
			return nil, fmt.Errorf("%v: a group, a subject and a teacher are required: %w", positions[i], err)
		}

		requirements = append(requirements, LessonRequirement{
			Id:      uint64(i),
			Group:   raw.Group,
			Subject: raw.Subject,
			Teacher: raw.Teacher,
		})
	}

	return requirements, nil
}
