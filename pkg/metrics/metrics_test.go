package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerConstruction(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		reg := prometheus.NewRegistry()

		Convey("When a manager is created with options", func() {
			m := NewManager(
				WithPrometheusRegistry(reg),
				WithNamespace("testns"),
				WithSubsystem("testsub"),
				WithHistogramBuckets([]float64{1, 10, 100}),
			)

			Convey("Then the manager reflects the options", func() {
				So(m, ShouldNotBeNil)
				So(m.namespace, ShouldEqual, "testns")
				So(m.subsystem, ShouldEqual, "testsub")
				So(m.histogramBuckets, ShouldResemble, []float64{1, 10, 100})
			})

			Convey("Then all collectors are registered", func() {
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				// Counters with zero observations are still registered; gauges
				// and histograms show up immediately.
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When options are given empty values", func() {
			m := NewManager(
				WithPrometheusRegistry(reg),
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
			)

			Convey("Then defaults are preserved", func() {
				So(m.namespace, ShouldEqual, "scout")
				So(m.subsystem, ShouldEqual, "core")
				So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recorders are invoked they must not panic", func() {
			So(func() {
				RecordJobStarted()
				RecordJobCompleted()
				RecordJobFailed()
				RecordJobFallback()
				RecordJobDuration(12.5)
				UpdateJobProgress(40)
				RecordChunkLatency(3.2)
				RecordPlayersScored(100)
				RecordQueryEvaluation()
				RecordQueryMatch()
				RecordQueryLatency(0.5)
				UpdateCacheEntries(10)
				RecordCacheHit()
				RecordCacheMiss()
				UpdateRosterSize(3)
				RecordPlayersImported(3)
				RecordPlayersReplaced(1)
				RecordHTTPRequest("players", "POST", "200")
				RecordHTTPRequestDuration("players", "POST", "200", 1.0)
				RecordErrorByComponent("scheduler", "fallback")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)
		})

		Convey("Then the shared registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
