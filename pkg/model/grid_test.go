package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	requirement := LessonRequirement{Id: 3, Group: "10A", Subject: "Химия", Teacher: "Сидоров"}

	t.Run("Place and query", func(t *testing.T) {
		//** Arrange
		grid := newGrid("10A", DefaultCatalog())

		//** Act
		err := grid.Place(2, 1, Assignment{Requirement: requirement})

		//** Assert
		require.NoError(t, err)
		assert.True(t, grid.IsOccupied(2, 1))
		assert.False(t, grid.IsOccupied(1, 2))
		assert.Equal(t, Day(2), grid.At(2, 1).Day)
		assert.Equal(t, TimeSlot(1), grid.At(2, 1).Time)
		assert.Equal(t, map[string]bool{"Химия": true}, grid.SubjectsOnDay(2))
		assert.Empty(t, grid.SubjectsOnDay(0))
		assert.Equal(t, []Assignment{{Requirement: requirement, Day: 2, Time: 1}}, grid.Assignments())
	})

	t.Run("Occupied slot", func(t *testing.T) {
		grid := newGrid("10A", DefaultCatalog())
		require.NoError(t, grid.Place(0, 0, Assignment{Requirement: requirement}))

		err := grid.Place(0, 0, Assignment{Requirement: requirement})

		var occupied *SlotOccupiedError
		require.True(t, errors.As(err, &occupied))
		assert.Equal(t, Day(0), occupied.Day)
		assert.Equal(t, "Химия (Сидоров)", grid.At(0, 0).String())
	})

	t.Run("Out of range slot", func(t *testing.T) {
		grid := newGrid("10A", DefaultCatalog())

		err := grid.Place(5, 0, Assignment{Requirement: requirement})

		var outOfRange *SlotOutOfRangeError
		assert.True(t, errors.As(err, &outOfRange))
		assert.True(t, grid.IsOccupied(5, 0))
		assert.Nil(t, grid.At(0, 4))
	})

	t.Run("Render", func(t *testing.T) {
		grid := newGrid("10A", DefaultCatalog())
		require.NoError(t, grid.Place(4, 3, Assignment{Requirement: requirement}))

		rows := grid.Render()

		require.Len(t, rows, 4)
		for _, row := range rows {
			assert.Len(t, row, 5)
		}
		assert.Equal(t, "Химия (Сидоров)", rows[3][4])
		assert.Equal(t, "", rows[0][0])
	})
}

func TestCatalogValidate(t *testing.T) {
	assert.NoError(t, DefaultCatalog().Validate())
	assert.Error(t, Catalog{Days: []string{}, Times: []string{"1"}}.Validate())
	assert.Error(t, Catalog{Days: []string{"Mon", " "}, Times: []string{"1"}}.Validate())
	assert.Error(t, Catalog{Days: []string{"Mon"}, Times: []string{"1", "1"}}.Validate())
	assert.Equal(t, "Среда", DefaultCatalog().DayName(2))
	assert.Equal(t, "13:30-15:00", DefaultCatalog().TimeName(3))
}
