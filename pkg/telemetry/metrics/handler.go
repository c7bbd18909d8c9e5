package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the collector's registry for scraping, in OpenMetrics
// format when the scraper asks for it. Scrapes are themselves counted in
// promhttp_metric_handler_requests_total.
func (c *Collector) Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(c.registry, promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		Registry:          c.registry,
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	}))
}

// WriteTextfile replaces path with the current metrics in the Prometheus
// text format, for the node exporter textfile collector. It is a no-op
// when metrics are disabled or path is empty.
func (c *Collector) WriteTextfile(path string) error {
	if !c.config.Enabled || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
