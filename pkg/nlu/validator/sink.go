package validator

import (
	"fmt"
	"io"
	"sync"
)

// Sink receives findings as the checks produce them.
type Sink interface {
	Report(Finding)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Finding)

// Report calls f(finding).
func (f SinkFunc) Report(finding Finding) { f(finding) }

// Collector is a Sink that keeps findings in report order.
// It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	findings []Finding
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends the finding.
func (c *Collector) Report(finding Finding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.findings = append(c.findings, finding)
}

// Findings returns a copy of the collected findings.
func (c *Collector) Findings() []Finding {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Finding, len(c.findings))
	copy(out, c.findings)
	return out
}

// Len returns the number of collected findings.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.findings)
}

// WriterSink writes each finding as a warning line.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Report writes the rendered finding followed by a newline.
func (s *WriterSink) Report(finding Finding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, finding.String())
}

// MultiSink fans findings out to several sinks in order.
type MultiSink []Sink

// Report forwards the finding to every sink.
func (m MultiSink) Report(finding Finding) {
	for _, s := range m {
		s.Report(finding)
	}
}
