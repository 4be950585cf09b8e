package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/limaJavier/lessonplanner/pkg/model"
)

// allGroups labels the totals of a build when per-group series are disabled
const allGroups = "all"

// Recorder keeps timetable build metrics in a private registry
type Recorder struct {
	perGroup      bool
	registry      *prometheus.Registry
	builds        prometheus.Counter
	buildDuration prometheus.Histogram
	requirements  *prometheus.CounterVec
	placed        *prometheus.CounterVec
	abandoned     *prometheus.CounterVec
	fillRatio     *prometheus.GaugeVec
}

// NewRecorder creates a recorder. Unless perGroup is set, builds are recorded under the single "all" group;
// callers receiving group names from clients must leave it unset.
func NewRecorder(perGroup bool) *Recorder {
	registry := prometheus.NewRegistry()

	recorder := &Recorder{
		perGroup: perGroup,
		registry: registry,
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timetable_builds_total",
			Help: "Total number of timetables built",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timetable_build_duration_seconds",
			Help:    "Duration of timetable builds in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		requirements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timetable_requirements_total",
			Help: "Lesson requirements received per group",
		}, []string{"group"}),
		placed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timetable_lessons_placed_total",
			Help: "Lessons placed per group",
		}, []string{"group"}),
		abandoned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timetable_lessons_abandoned_total",
			Help: "Lessons that could not be placed per group",
		}, []string{"group"}),
		fillRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "timetable_fill_ratio",
			Help: "Share of the group's requirements placed by the last build",
		}, []string{"group"}),
	}

	registry.MustRegister(
		recorder.builds,
		recorder.buildDuration,
		recorder.requirements,
		recorder.placed,
		recorder.abandoned,
		recorder.fillRatio,
	)
	return recorder
}

func (recorder *Recorder) ObserveBuild(timetable *model.Timetable, duration time.Duration) {
	recorder.builds.Inc()
	recorder.buildDuration.Observe(duration.Seconds())

	groups := []model.GroupStats{timetable.TotalStats()}
	groups[0].Group = allGroups
	if recorder.perGroup {
		groups = timetable.Stats()
	}

	for _, stats := range groups {
		recorder.requirements.WithLabelValues(stats.Group).Add(float64(stats.Requirements))
		recorder.placed.WithLabelValues(stats.Group).Add(float64(stats.Placed))
		recorder.abandoned.WithLabelValues(stats.Group).Add(float64(stats.Abandoned))
		recorder.fillRatio.WithLabelValues(stats.Group).Set(stats.FillRatio())
	}
}

func (recorder *Recorder) Gatherer() prometheus.Gatherer {
	return recorder.registry
}

func (recorder *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(recorder.registry, promhttp.HandlerOpts{})
}

// WriteToTextfile dumps the metrics in the node exporter textfile format
func (recorder *Recorder) WriteToTextfile(file string) error {
	return prometheus.WriteToTextfile(file, recorder.registry)
}
