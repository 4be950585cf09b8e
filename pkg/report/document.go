package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/limaJavier/lessonplanner/pkg/model"
)

// Document is the serializable view of a timetable shared by the json reporter, the HTTP API and verification
type Document struct {
	RunId  string          `json:"run_id"`
	Days   []string        `json:"days"`
	Times  []string        `json:"times"`
	Groups []GroupDocument `json:"groups"`
	Stats  Stats           `json:"stats"`
}

type GroupDocument struct {
	Group       string        `json:"group"`
	Lessons     []Lesson      `json:"lessons"`
	Abandoned   []Requirement `json:"abandoned"`
	Recoverable int           `json:"recoverable"` // Abandoned lessons that still fit somewhere
	Stats       Stats         `json:"stats"`
}

type Lesson struct {
	Id      uint64 `json:"id"`
	Day     string `json:"day"`
	Time    string `json:"time"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
}

type Requirement struct {
	Id      uint64 `json:"id"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
}

type Stats struct {
	Requirements uint64  `json:"requirements"`
	Placed       uint64  `json:"placed"`
	Abandoned    uint64  `json:"abandoned"`
	FillRatio    float64 `json:"fill_ratio"`
}

func NewDocument(timetable *model.Timetable) (Document, error) {
	recoverable, err := model.RecoverableLessons(timetable)
	if err != nil {
		return Document{}, err
	}
	catalog := timetable.Catalog
	stats := lo.KeyBy(timetable.Stats(), func(stats model.GroupStats) string { return stats.Group })

	groups := lo.Map(timetable.Groups(), func(group string, _ int) GroupDocument {
		grid, _ := timetable.Grid(group)
		return GroupDocument{
			Group: group,
			Lessons: lo.Map(grid.Assignments(), func(assignment model.Assignment, _ int) Lesson {
				return Lesson{
					Id:      assignment.Requirement.Id,
					Day:     catalog.DayName(assignment.Day),
					Time:    catalog.TimeName(assignment.Time),
					Subject: assignment.Requirement.Subject,
					Teacher: assignment.Requirement.Teacher,
				}
			}),
			Abandoned: lo.Map(timetable.Abandoned(group), func(requirement model.LessonRequirement, _ int) Requirement {
				return Requirement{Id: requirement.Id, Subject: requirement.Subject, Teacher: requirement.Teacher}
			}),
			Recoverable: recoverable[group],
			Stats:       newStats(stats[group]),
		}
	})

	return Document{
		RunId:  timetable.RunId,
		Days:   catalog.Days,
		Times:  catalog.Times,
		Groups: groups,
		Stats:  newStats(timetable.TotalStats()),
	}, nil
}

func newStats(stats model.GroupStats) Stats {
	return Stats{
		Requirements: stats.Requirements,
		Placed:       stats.Placed,
		Abandoned:    stats.Abandoned,
		FillRatio:    stats.FillRatio(),
	}
}

func ReadDocument(reader io.Reader) (Document, error) {
	var document Document
	if err := json.NewDecoder(reader).Decode(&document); err != nil {
		return Document{}, fmt.Errorf("cannot parse timetable document: %w", err)
	}
	return document, nil
}

// Timetable rebuilds the timetable the document describes, resolving day and time labels against its own catalog
func (document Document) Timetable() (*model.Timetable, error) {
	catalog := model.Catalog{Days: document.Days, Times: document.Times}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	assignments := make([]model.Assignment, 0)
	abandoned := make([]model.LessonRequirement, 0)
	for _, group := range document.Groups {
		for _, lesson := range group.Lessons {
			day, time := lo.IndexOf(catalog.Days, lesson.Day), lo.IndexOf(catalog.Times, lesson.Time)
			if day < 0 || time < 0 {
				return nil, fmt.Errorf("lesson %v of group \"%v\" is scheduled at an unknown slot %v %v", lesson.Id, group.Group, lesson.Day, lesson.Time)
			}
			assignments = append(assignments, model.Assignment{
				Requirement: model.LessonRequirement{Id: lesson.Id, Group: group.Group, Subject: lesson.Subject, Teacher: lesson.Teacher},
				Day:         model.Day(day),
				Time:        model.TimeSlot(time),
			})
		}
		for _, requirement := range group.Abandoned {
			abandoned = append(abandoned, model.LessonRequirement{
				Id: requirement.Id, Group: group.Group, Subject: requirement.Subject, Teacher: requirement.Teacher,
			})
		}
	}

	timetable, err := model.RestoreTimetable(catalog, assignments, abandoned)
	if err != nil {
		return nil, err
	}
	timetable.RunId = document.RunId
	return timetable, nil
}
