package model

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Timetable is the whole school's schedule: one grid per group plus the bookkeeping needed while it is built.
// It is only mutated by the timetabler that created it and must be treated as read-only afterwards.
type Timetable struct {
	RunId     string
	Catalog   Catalog
	groups    []string
	grids     map[string]*Grid
	abandoned map[string][]LessonRequirement
}

type GroupStats struct {
	Group        string
	Requirements uint64
	Placed       uint64
	Abandoned    uint64
}

func (stats GroupStats) FillRatio() float64 {
	if stats.Requirements == 0 {
		return 1
	}
	return float64(stats.Placed) / float64(stats.Requirements)
}

func NewTimetable(catalog Catalog, groups []string) *Timetable {
	groups = lo.Uniq(groups)
	slices.Sort(groups)

	timetable := &Timetable{
		RunId:     uuid.NewString(),
		Catalog:   catalog,
		groups:    groups,
		grids:     make(map[string]*Grid),
		abandoned: make(map[string][]LessonRequirement),
	}

	for _, group := range groups {
		timetable.grids[group] = newGrid(group, catalog)
	}

	return timetable
}

// RestoreTimetable rebuilds a timetable from previously produced assignments and abandoned requirements, e.g. a
// saved report, so it can be verified. It fails if two assignments share a cell or fall outside the catalog.
func RestoreTimetable(catalog Catalog, assignments []Assignment, abandoned []LessonRequirement) (*Timetable, error) {
	groups := append(
		lo.Map(assignments, func(assignment Assignment, _ int) string { return assignment.Requirement.Group }),
		lo.Map(abandoned, func(requirement LessonRequirement, _ int) string { return requirement.Group })...,
	)
	timetable := NewTimetable(catalog, groups)

	for _, assignment := range assignments {
		if err := timetable.commit(assignment.Requirement, assignment.Day, assignment.Time); err != nil {
			return nil, fmt.Errorf("cannot restore lesson %v: %w", assignment.Requirement.Id, err)
		}
	}
	for _, requirement := range abandoned {
		timetable.abandon(requirement)
	}
	return timetable, nil
}

// Groups returns the group identifiers in sorted order
func (timetable *Timetable) Groups() []string {
	return slices.Clone(timetable.groups)
}

func (timetable *Timetable) Grid(group string) (*Grid, bool) {
	grid, ok := timetable.grids[group]
	return grid, ok
}

func (timetable *Timetable) Abandoned(group string) []LessonRequirement {
	return slices.Clone(timetable.abandoned[group])
}

func (timetable *Timetable) AllAbandoned() []LessonRequirement {
	return lo.FlatMap(timetable.groups, func(group string, _ int) []LessonRequirement {
		return timetable.abandoned[group]
	})
}

func (timetable *Timetable) Assignments() []Assignment {
	return lo.FlatMap(timetable.groups, func(group string, _ int) []Assignment {
		return timetable.grids[group].Assignments()
	})
}

// subjectUsed reports whether the group's grid already holds the subject on that day
func (timetable *Timetable) subjectUsed(group string, day Day, subject string) bool {
	grid, ok := timetable.grids[group]
	if !ok {
		return false
	}
	return grid.SubjectsOnDay(day)[subject]
}

// commit places the requirement in its group's grid
func (timetable *Timetable) commit(requirement LessonRequirement, day Day, time TimeSlot) error {
	grid, ok := timetable.grids[requirement.Group]
	if !ok {
		return &unknownGroupError{group: requirement.Group}
	}

	return grid.Place(day, time, Assignment{Requirement: requirement})
}

func (timetable *Timetable) abandon(requirement LessonRequirement) {
	timetable.abandoned[requirement.Group] = append(timetable.abandoned[requirement.Group], requirement)
}

func (timetable *Timetable) Stats() []GroupStats {
	return lo.Map(timetable.groups, func(group string, _ int) GroupStats {
		placed := uint64(len(timetable.grids[group].Assignments()))
		abandoned := uint64(len(timetable.abandoned[group]))
		return GroupStats{
			Group:        group,
			Requirements: placed + abandoned,
			Placed:       placed,
			Abandoned:    abandoned,
		}
	})
}

func (timetable *Timetable) TotalStats() GroupStats {
	return lo.Reduce(timetable.Stats(), func(total GroupStats, stats GroupStats, _ int) GroupStats {
		total.Requirements += stats.Requirements
		total.Placed += stats.Placed
		total.Abandoned += stats.Abandoned
		return total
	}, GroupStats{})
}

type unknownGroupError struct {
	group string
}

func (err *unknownGroupError) Error() string {
	return "group \"" + err.group + "\" has no grid in the timetable"
}
