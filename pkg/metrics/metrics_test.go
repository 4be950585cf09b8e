package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/lessonplanner/pkg/model"
)

func buildTimetable(t *testing.T, groups ...string) *model.Timetable {
	t.Helper()
	rawInput := make([]model.RawRequirement, 0)
	for _, group := range groups {
		rawInput = append(rawInput,
			model.RawRequirement{Group: group, Subject: "Математика", Teacher: "Иванов " + group},
			model.RawRequirement{Group: group, Subject: "Физика", Teacher: "Петров " + group},
		)
	}
	requirements, err := model.ProcessRawInput(rawInput)
	require.NoError(t, err)
	timetable, err := model.NewRandomizedTimetabler(model.DefaultOptions(), model.NewRandomizer(1), nil).Build(requirements)
	require.NoError(t, err)
	return timetable
}

func TestObserveBuild(t *testing.T) {
	t.Run("Per group series", func(t *testing.T) {
		//** Arrange
		timetable := buildTimetable(t, "10A", "10B")
		recorder := NewRecorder(true)

		//** Act
		recorder.ObserveBuild(timetable, 15*time.Millisecond)

		//** Assert
		assert.Equal(t, 1.0, testutil.ToFloat64(recorder.builds))
		assert.Equal(t, 2.0, testutil.ToFloat64(recorder.placed.WithLabelValues("10A")))
		assert.Equal(t, 0.0, testutil.ToFloat64(recorder.abandoned.WithLabelValues("10B")))
		assert.Equal(t, 1.0, testutil.ToFloat64(recorder.fillRatio.WithLabelValues("10B")))

		file := filepath.Join(t.TempDir(), "timetable.prom")
		require.NoError(t, recorder.WriteToTextfile(file))
		content, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(content), `timetable_lessons_placed_total{group="10A"} 2`)
	})

	t.Run("Totals only", func(t *testing.T) {
		//** Arrange
		recorder := NewRecorder(false)

		//** Act
		recorder.ObserveBuild(buildTimetable(t, "10A", "10B"), time.Millisecond)
		recorder.ObserveBuild(buildTimetable(t, "7C", "8D", "9E"), time.Millisecond)

		//** Assert
		assert.Equal(t, 2.0, testutil.ToFloat64(recorder.builds))
		assert.Equal(t, 1, testutil.CollectAndCount(recorder.placed))
		assert.Equal(t, 1, testutil.CollectAndCount(recorder.fillRatio))
		assert.Equal(t, 10.0, testutil.ToFloat64(recorder.placed.WithLabelValues(allGroups)))
		assert.Equal(t, 10.0, testutil.ToFloat64(recorder.requirements.WithLabelValues(allGroups)))
	})
}
