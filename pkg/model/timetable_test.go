package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreTimetable(t *testing.T) {
	requirements := requirementsOf(
		[3]string{"10A", "Математика", "Иванов"},
		[3]string{"10A", "Физика", "Петров"},
		[3]string{"10B", "Химия", "Сидоров"},
	)

	t.Run("Round trip", func(t *testing.T) {
		//** Arrange
		built, err := NewRandomizedTimetabler(DefaultOptions(), NewRandomizer(7), nil).Build(requirements)
		require.NoError(t, err)

		//** Act
		restored, err := RestoreTimetable(built.Catalog, built.Assignments(), built.AllAbandoned())

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, built.Groups(), restored.Groups())
		assert.Equal(t, built.Assignments(), restored.Assignments())
		assert.Equal(t, built.TotalStats(), restored.TotalStats())
		assert.True(t, verify(restored, requirements))
	})

	t.Run("Two lessons in one cell", func(t *testing.T) {
		//** Arrange
		assignments := []Assignment{
			{Requirement: requirements[0], Day: 1, Time: 2},
			{Requirement: requirements[1], Day: 1, Time: 2},
		}

		//** Act
		_, err := RestoreTimetable(DefaultCatalog(), assignments, nil)

		//** Assert
		var occupied *SlotOccupiedError
		assert.True(t, errors.As(err, &occupied))
	})

	t.Run("Subject repeat is restored but fails verification", func(t *testing.T) {
		//** Arrange
		repeated := requirementsOf(
			[3]string{"10A", "Математика", "Иванов"},
			[3]string{"10A", "Математика", "Иванов"},
		)
		assignments := []Assignment{
			{Requirement: repeated[0], Day: 0, Time: 0},
			{Requirement: repeated[1], Day: 0, Time: 1},
		}

		//** Act
		restored, err := RestoreTimetable(DefaultCatalog(), assignments, nil)

		//** Assert
		require.NoError(t, err)
		assert.False(t, verify(restored, repeated))
	})
}

func TestStats(t *testing.T) {
	//** Arrange
	catalog := Catalog{Days: []string{"Mon"}, Times: []string{"1"}}
	requirements := requirementsOf(
		[3]string{"10A", "Математика", "Иванов"},
		[3]string{"10A", "Физика", "Петров"},
		[3]string{"10B", "Химия", "Сидоров"},
	)

	//** Act
	timetable, err := RestoreTimetable(catalog,
		[]Assignment{{Requirement: requirements[0]}, {Requirement: requirements[2]}},
		[]LessonRequirement{requirements[1]},
	)
	require.NoError(t, err)
	stats := timetable.Stats()

	//** Assert
	assert.Equal(t, []GroupStats{
		{Group: "10A", Requirements: 2, Placed: 1, Abandoned: 1},
		{Group: "10B", Requirements: 1, Placed: 1, Abandoned: 0},
	}, stats)
	assert.InDelta(t, 0.5, stats[0].FillRatio(), 1e-9)
	assert.Equal(t, GroupStats{Requirements: 3, Placed: 2, Abandoned: 1}, timetable.TotalStats())
}

func TestSubjectUsed(t *testing.T) {
	//** Arrange
	timetable := NewTimetable(DefaultCatalog(), []string{"10A", "10B"})
	requirements := requirementsOf(
		[3]string{"10A", "Математика", "Иванов"},
		[3]string{"10A", "Физика", "Петров"},
	)

	//** Act
	require.NoError(t, timetable.commit(requirements[0], 2, 1))
	grid, _ := timetable.Grid("10A")
	require.NoError(t, grid.Place(3, 0, Assignment{Requirement: requirements[1]}))

	//** Assert
	assert.True(t, timetable.subjectUsed("10A", 2, "Математика"))
	assert.True(t, timetable.subjectUsed("10A", 3, "Физика"))
	assert.False(t, timetable.subjectUsed("10A", 3, "Математика"))
	assert.False(t, timetable.subjectUsed("10B", 2, "Математика"))
	assert.False(t, timetable.subjectUsed("11A", 2, "Математика"))
	assert.Equal(t, grid.SubjectsOnDay(2), map[string]bool{"Математика": true})
}
