package clustergo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAnalyze is called after each analysis run.
	// particles is the size of the live set, clusters the number of final
	// clusters, duration the total time taken; err is nil on success.
	RecordAnalyze(particles, clusters int, duration time.Duration, err error)

	// RecordSnapshotSave is called after each snapshot save.
	RecordSnapshotSave(duration time.Duration, err error)

	// RecordSnapshotLoad is called after each snapshot load.
	RecordSnapshotLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAnalyze(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSnapshotSave(time.Duration, error)      {}
func (NoopMetricsCollector) RecordSnapshotLoad(time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AnalyzeCount      atomic.Int64
	AnalyzeErrors     atomic.Int64
	AnalyzeTotalNanos atomic.Int64
	ParticlesSeen     atomic.Int64
	ClustersFound     atomic.Int64
	SnapshotSaves     atomic.Int64
	SnapshotSaveErrs  atomic.Int64
	SnapshotLoads     atomic.Int64
	SnapshotLoadErrs  atomic.Int64
}

// RecordAnalyze implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAnalyze(particles, clusters int, duration time.Duration, err error) {
	b.AnalyzeCount.Add(1)
	b.AnalyzeTotalNanos.Add(duration.Nanoseconds())
	b.ParticlesSeen.Add(int64(particles))
	if err != nil {
		b.AnalyzeErrors.Add(1)
		return
	}
	b.ClustersFound.Add(int64(clusters))
}

// RecordSnapshotSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotSave(duration time.Duration, err error) {
	b.SnapshotSaves.Add(1)
	if err != nil {
		b.SnapshotSaveErrs.Add(1)
	}
}

// RecordSnapshotLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotLoad(duration time.Duration, err error) {
	b.SnapshotLoads.Add(1)
	if err != nil {
		b.SnapshotLoadErrs.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AnalyzeCount:     b.AnalyzeCount.Load(),
		AnalyzeErrors:    b.AnalyzeErrors.Load(),
		AnalyzeAvgNanos:  b.getAvgAnalyzeNanos(),
		ParticlesSeen:    b.ParticlesSeen.Load(),
		ClustersFound:    b.ClustersFound.Load(),
		SnapshotSaves:    b.SnapshotSaves.Load(),
		SnapshotSaveErrs: b.SnapshotSaveErrs.Load(),
		SnapshotLoads:    b.SnapshotLoads.Load(),
		SnapshotLoadErrs: b.SnapshotLoadErrs.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgAnalyzeNanos() int64 {
	count := b.AnalyzeCount.Load()
	if count == 0 {
		return 0
	}
	return b.AnalyzeTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AnalyzeCount     int64
	AnalyzeErrors    int64
	AnalyzeAvgNanos  int64
	ParticlesSeen    int64
	ClustersFound    int64
	SnapshotSaves    int64
	SnapshotSaveErrs int64
	SnapshotLoads    int64
	SnapshotLoadErrs int64
}
