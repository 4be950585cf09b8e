package model

import (
	"fmt"
	"strings"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

func verify(timetable *Timetable, requirements []LessonRequirement) bool {
	if timetable == nil {
		return false
	}

	//** Index requirements
	expected := make(map[uint64]LessonRequirement)
	for _, requirement := range requirements {
		if _, ok := expected[requirement.Id]; ok {
			return false
		}
		expected[requirement.Id] = requirement
	}

	//** Initialize teacher-assistance
	totalTimes, totalDays := timetable.Catalog.TimeCount(), timetable.Catalog.DayCount()
	teacherAssistance := make(map[string][][]bool)
	assist := func(teacher string, day Day, time TimeSlot) bool {
		if _, ok := teacherAssistance[teacher]; !ok {
			teacherAssistance[teacher] = make([][]bool, totalTimes)
			for i := range teacherAssistance[teacher] {
				teacherAssistance[teacher][i] = make([]bool, totalDays)
			}
		}
		alreadyAssisting := teacherAssistance[teacher][time][day]
		teacherAssistance[teacher][time][day] = true
		return alreadyAssisting
	}

	accounted := make(map[uint64]bool)

	for _, group := range timetable.groups {
		grid, ok := timetable.grids[group]
		if !ok {
			return false
		}

		subjectTaught := make(map[[2]string]bool)
		for time := range TimeSlot(totalTimes) {
			for day := range Day(totalDays) {
				cell := grid.At(day, time)
				if cell == nil {
					continue
				}
				requirement := cell.Requirement
				original, known := expected[requirement.Id]
				key := [2]string{fmt.Sprint(day), requirement.Subject}

				// Check that:
				// - The assignment sits in the cell it claims and in its own group's grid
				// - It matches exactly one requirement that was not accounted for already
				// - The teacher is not already assisting another group at that day and time
				// - The subject is not taught twice on the same day to the group
				if cell.Day != day || cell.Time != time ||
					requirement.Group != group ||
					!known || original != requirement ||
					accounted[requirement.Id] ||
					assist(requirement.Teacher, day, time) ||
					subjectTaught[key] {
					return false
				}

				accounted[requirement.Id] = true
				subjectTaught[key] = true
			}
		}
	}

	for _, requirement := range timetable.AllAbandoned() {
		original, known := expected[requirement.Id]
		if !known || original != requirement || accounted[requirement.Id] {
			return false
		}
		accounted[requirement.Id] = true
	}

	// Every requirement must be either placed or abandoned
	return len(accounted) == len(expected)
}

func checkRequirements(requirements []LessonRequirement) error {
	ids := make(map[uint64]bool)
	for _, requirement := range requirements {
		if ids[requirement.Id] {
			return fmt.Errorf("requirement id %v is used more than once", requirement.Id)
		}
		ids[requirement.Id] = true

		if strings.TrimSpace(requirement.Group) == "" ||
			strings.TrimSpace(requirement.Subject) == "" ||
			strings.TrimSpace(requirement.Teacher) == "" {
			return fmt.Errorf("requirement %v must have a group, a subject and a teacher", requirement.Id)
		}
	}
	return nil
}

// RecoverableLessons computes, per group, how many abandoned requirements could still be placed in the finished
// timetable. It is the size of a largest matching between the group's abandoned requirements and its free cells,
// where a requirement neighbours a cell if the teacher is free there and the subject is not yet taught that day.
// Two abandoned requirements sharing a subject may be matched to the same day, so the count is an upper bound.
func RecoverableLessons(timetable *Timetable) (map[string]int, error) {
	recoverable := make(map[string]int)

	for _, group := range timetable.groups {
		abandoned := timetable.abandoned[group]
		freeCells := lo.Filter(allCells(timetable.Catalog), func(cell [2]uint64, _ int) bool {
			return !timetable.grids[group].IsOccupied(Day(cell[0]), TimeSlot(cell[1]))
		})

		if len(abandoned) == 0 || len(freeCells) == 0 {
			recoverable[group] = 0
			continue
		}

		// Build neighbors predicate based on availability
		neighbors := func(requirementAny any, cellAny any) (bool, error) {
			requirement := requirementAny.(LessonRequirement)
			cell := cellAny.([2]uint64)
			day, time := Day(cell[0]), TimeSlot(cell[1])

			return IsSlotAvailable(timetable, group, day, time, requirement.Teacher) &&
				!timetable.subjectUsed(group, day, requirement.Subject), nil
		}

		requirementsAny := lo.Map(abandoned, func(requirement LessonRequirement, _ int) any { return requirement })
		cellsAny := lo.Map(freeCells, func(cell [2]uint64, _ int) any { return cell })

		graph, err := bipartitegraph.NewBipartiteGraph(requirementsAny, cellsAny, neighbors)
		if err != nil {
			return nil, fmt.Errorf("cannot build recovery graph for group \"%v\": %w", group, err)
		}
		recoverable[group] = len(graph.LargestMatching())
	}

	return recoverable, nil
}

// allCells lists every (day, time) pair of the catalog
func allCells(catalog Catalog) [][2]uint64 {
	cells := make([][2]uint64, 0, catalog.DayCount()*catalog.TimeCount())
	for day := range catalog.DayCount() {
		for time := range catalog.TimeCount() {
			cells = append(cells, [2]uint64{day, time})
		}
	}
	return cells
}
