package main

import (
	"log/slog"
	"time"

	"github.com/rcrowley/go-metrics"
)

// logMetrics logs the registered parse and encode metrics at debug level.
func logMetrics(logger *slog.Logger) {
	metrics.DefaultRegistry.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case metrics.Timer:
			t := m.Snapshot()
			if t.Count() == 0 {
				return
			}
			logger.Debug("timer", "name", name, "count", t.Count(),
				"mean", time.Duration(t.Mean()), "max", time.Duration(t.Max()))
		case metrics.Meter:
			mt := m.Snapshot()
			logger.Debug("meter", "name", name, "count", mt.Count(), "rate", mt.RateMean())
		}
	})
}
