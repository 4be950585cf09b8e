package model

import (
	"fmt"
	"strings"
)

// Day is an index into Catalog.Days
type Day uint64

// TimeSlot is an index into Catalog.Times
type TimeSlot uint64

// Catalog holds the ordered day and time labels shared by every group's grid
type Catalog struct {
	Days  []string `mapstructure:"days" validate:"min=1,dive,required"`
	Times []string `mapstructure:"times" validate:"min=1,dive,required"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		Days:  []string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница"},
		Times: []string{"8:10-9:40", "9:50-11:20", "11:50-13:20", "13:30-15:00"},
	}
}

func (catalog Catalog) DayCount() uint64 {
	return uint64(len(catalog.Days))
}

func (catalog Catalog) TimeCount() uint64 {
	return uint64(len(catalog.Times))
}

func (catalog Catalog) DayName(day Day) string {
	return catalog.Days[day]
}

func (catalog Catalog) TimeName(time TimeSlot) string {
	return catalog.Times[time]
}

func (catalog Catalog) contains(day Day, time TimeSlot) bool {
	return uint64(day) < catalog.DayCount() && uint64(time) < catalog.TimeCount()
}

// Validate checks that both catalogs are non-empty and hold distinct, non-blank labels
func (catalog Catalog) Validate() error {
	if err := validateLabels("day", catalog.Days); err != nil {
		return err
	}
	return validateLabels("time", catalog.Times)
}

func validateLabels(kind string, labels []string) error {
	if len(labels) == 0 {
		return fmt.Errorf("at least one %v label must be defined", kind)
	}

	seen := make(map[string]bool)
	for i, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			return fmt.Errorf("%v label at position %v is blank", kind, i)
		} else if seen[label] {
			return fmt.Errorf("%v label \"%v\" is defined more than once", kind, label)
		}
		seen[label] = true
	}
	return nil
}
