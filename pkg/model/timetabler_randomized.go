package model

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type randomizedTimetabler struct {
	options    Options
	randomizer Randomizer
	logger     *zap.Logger
}

func NewRandomizedTimetabler(options Options, randomizer Randomizer, logger *zap.Logger) Timetabler {
	if randomizer == nil {
		randomizer = NewRandomizer(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &randomizedTimetabler{
		options:    options,
		randomizer: randomizer,
		logger:     logger,
	}
}

func (timetabler *randomizedTimetabler) Build(requirements []LessonRequirement) (*Timetable, error) {
	if err := timetabler.options.Validate(); err != nil {
		return nil, err
	}
	if err := checkRequirements(requirements); err != nil {
		return nil, err
	}

	//** Initialize an empty grid per group
	requirementsPerGroup := lo.GroupBy(requirements, func(requirement LessonRequirement) string {
		return requirement.Group
	})
	timetable := NewTimetable(timetabler.options.Catalog, lo.Keys(requirementsPerGroup))
	logger := timetabler.logger.With(zap.String("run_id", timetable.RunId))

	//** Fill each group independently; teacher conflicts are checked against the shared timetable
	for _, group := range timetable.Groups() {
		logger.Info("building timetable for group", zap.String("group", group))
		placed := make(map[uint64]bool)

		for attempt := range timetabler.options.Attempts {
			pending := lo.Reject(requirementsPerGroup[group], func(requirement LessonRequirement, _ int) bool {
				return placed[requirement.Id]
			})
			if len(pending) == 0 {
				break
			}
			logger.Debug("attempt", zap.String("group", group), zap.Uint64("attempt", attempt+1), zap.Int("pending", len(pending)))

			for _, index := range timetabler.randomizer.Perm(len(pending)) {
				requirement := pending[index]

				ok, err := timetabler.place(timetable, requirement)
				if err != nil {
					return nil, err
				} else if !ok {
					logger.Debug("cannot assign lesson in this attempt", requirementFields(requirement)...)
					continue
				}
				placed[requirement.Id] = true
			}
		}

		//** Abandon whatever is still unplaced
		for _, requirement := range requirementsPerGroup[group] {
			if !placed[requirement.Id] {
				timetable.abandon(requirement)
				logger.Warn("lesson abandoned", requirementFields(requirement)...)
			}
		}
	}

	return timetable, nil
}

// place searches the shuffled days (skipping those where the subject is already taught) and probes their time slots
func (timetabler *randomizedTimetabler) place(timetable *Timetable, requirement LessonRequirement) (bool, error) {
	catalog := timetabler.options.Catalog

	for _, dayIndex := range timetabler.randomizer.Perm(len(catalog.Days)) {
		day := Day(dayIndex)
		if timetable.subjectUsed(requirement.Group, day, requirement.Subject) {
			continue
		}

		times := timetabler.randomizer.Perm(len(catalog.Times))
		for probe := range timetabler.probes(len(times)) {
			time := timetabler.probe(times, probe)
			if !IsSlotAvailable(timetable, requirement.Group, day, time, requirement.Teacher) {
				continue
			}

			if err := timetable.commit(requirement, day, time); err != nil {
				return false, fmt.Errorf("cannot commit lesson %v: %w", requirement.Id, err)
			}
			timetabler.logger.Debug("lesson assigned", append(requirementFields(requirement),
				zap.String("day", catalog.DayName(day)),
				zap.String("time", catalog.TimeName(time)),
			)...)
			return true, nil
		}
	}
	return false, nil
}

func (timetabler *randomizedTimetabler) probes(candidates int) int {
	if timetabler.options.Strategy == ExhaustiveProbe {
		return candidates
	}
	return int(timetabler.options.Probes)
}

// probe picks the time slot for the given probe. Jitter probes draw with replacement, so a slot may be tried twice.
func (timetabler *randomizedTimetabler) probe(times []int, probe int) TimeSlot {
	if timetabler.options.Strategy == ExhaustiveProbe {
		return TimeSlot(times[probe])
	}
	return TimeSlot(times[timetabler.randomizer.IntN(len(times))])
}

func (timetabler *randomizedTimetabler) Verify(timetable *Timetable, requirements []LessonRequirement) bool {
	return verify(timetable, requirements)
}

func requirementFields(requirement LessonRequirement) []zap.Field {
	return []zap.Field{
		zap.Uint64("requirement", requirement.Id),
		zap.String("group", requirement.Group),
		zap.String("subject", requirement.Subject),
		zap.String("teacher", requirement.Teacher),
	}
}
