package branding

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MetricFetchTotal counts settings fetches by result (ok, error)
	MetricFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cabinet_branding_fetch_total",
		Help: "Branding settings fetches by result",
	}, []string{"result"})

	// MetricCacheHits counts color resolutions served from the cache
	MetricCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cabinet_branding_cache_hits_total",
		Help: "Color resolutions served from cache",
	})

	// MetricCacheClears counts explicit cache invalidations
	MetricCacheClears = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cabinet_branding_cache_clears_total",
		Help: "Explicit branding cache invalidations",
	})

	// MetricApplyTotal counts apply cycles by theme mode
	MetricApplyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cabinet_branding_apply_total",
		Help: "Branding apply cycles by theme mode",
	}, []string{"mode"})

	// MetricApplyErrors counts apply cycles that failed to write the document
	MetricApplyErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cabinet_branding_apply_errors_total",
		Help: "Branding apply cycles that failed to write the document",
	})

	// MetricColorUpdates counts single-color updates by key
	MetricColorUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cabinet_branding_color_updates_total",
		Help: "Single color updates by key",
	}, []string{"key"})
)

func modeLabel(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
