package model

import "fmt"

type LessonRequirement struct {
	Id      uint64 // Position of the requirement in the input
	Group   string
	Subject string
	Teacher string
}

type Assignment struct {
	Requirement LessonRequirement
	Day         Day
	Time        TimeSlot
}

func (assignment Assignment) String() string {
	return fmt.Sprintf("%v (%v)", assignment.Requirement.Subject, assignment.Requirement.Teacher)
}

type SlotOccupiedError struct {
	Day  Day
	Time TimeSlot
}

func (err *SlotOccupiedError) Error() string {
	return fmt.Sprintf("slot (day %v, time %v) is already occupied", err.Day, err.Time)
}

type SlotOutOfRangeError struct {
	Day  Day
	Time TimeSlot
}

func (err *SlotOutOfRangeError) Error() string {
	return fmt.Sprintf("slot (day %v, time %v) is outside of the catalog", err.Day, err.Time)
}

// Grid is a single group's week: cells[time][day] holds at most one assignment
type Grid struct {
	group string
	cells [][]*Assignment
}

func newGrid(group string, catalog Catalog) *Grid {
	cells := make([][]*Assignment, catalog.TimeCount())
	for i := range cells {
		cells[i] = make([]*Assignment, catalog.DayCount())
	}
	return &Grid{
		group: group,
		cells: cells,
	}
}

func (grid *Grid) Group() string {
	return grid.group
}

func (grid *Grid) inRange(day Day, time TimeSlot) bool {
	return uint64(time) < uint64(len(grid.cells)) && uint64(day) < uint64(len(grid.cells[time]))
}

// IsOccupied reports whether the cell already holds an assignment. Out-of-range cells are reported as occupied.
func (grid *Grid) IsOccupied(day Day, time TimeSlot) bool {
	if !grid.inRange(day, time) {
		return true
	}
	return grid.cells[time][day] != nil
}

func (grid *Grid) At(day Day, time TimeSlot) *Assignment {
	if !grid.inRange(day, time) {
		return nil
	}
	return grid.cells[time][day]
}

func (grid *Grid) Place(day Day, time TimeSlot, assignment Assignment) error {
	if !grid.inRange(day, time) {
		return &SlotOutOfRangeError{Day: day, Time: time}
	} else if grid.cells[time][day] != nil {
		return &SlotOccupiedError{Day: day, Time: time}
	}

	assignment.Day, assignment.Time = day, time
	grid.cells[time][day] = &assignment
	return nil
}

func (grid *Grid) SubjectsOnDay(day Day) map[string]bool {
	subjects := make(map[string]bool)
	for _, row := range grid.cells {
		if uint64(day) < uint64(len(row)) && row[day] != nil {
			subjects[row[day].Requirement.Subject] = true
		}
	}
	return subjects
}

// Assignments returns the grid's assignments ordered by day and then by time
func (grid *Grid) Assignments() []Assignment {
	assignments := make([]Assignment, 0)
	if len(grid.cells) == 0 {
		return assignments
	}
	for day := range len(grid.cells[0]) {
		for time := range len(grid.cells) {
			if cell := grid.cells[time][day]; cell != nil {
				assignments = append(assignments, *cell)
			}
		}
	}
	return assignments
}

// Render returns one row per time slot and one column per day, with blank text for empty cells
func (grid *Grid) Render() [][]string {
	rows := make([][]string, len(grid.cells))
	for time, row := range grid.cells {
		rows[time] = make([]string, len(row))
		for day, cell := range row {
			if cell != nil {
				rows[time][day] = cell.String()
			}
		}
	}
	return rows
}
