// Package metrics provides Prometheus metrics for lint runs.
//
// # Metrics Categories
//
//   - Run Metrics: run count by status, duration, and last-run gauges
//   - Locale Metrics: warnings by check and code, fatal errors by type,
//     per-locale duration and phrase counts
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordFinding("de", "duplicate-phrases", "duplicate-phrase")
//	collector.RecordLocale("de", 120, 1, 3*time.Millisecond)
//	collector.RecordRun(metrics.StatusWarnings, 5*time.Millisecond, 1, 0)
//
// # Export
//
// One-shot runs write a textfile for the node exporter textfile collector:
//
//	telemetry:
//	  metrics:
//	    enabled: true
//	    textfile: /var/lib/node_exporter/modellint.prom
//
// The watch command can also serve /metrics through Handler when
// listen_address is set.
package metrics
