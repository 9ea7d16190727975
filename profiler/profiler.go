// Package profiler - Per-stage wall-time tracking for the floor-plan
// pipeline.
package profiler

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// TimeTracker tracks timing statistics for one pipeline stage.
type TimeTracker struct {
	name      string
	totalTime time.Duration
	minTime   time.Duration
	maxTime   time.Duration
	count     int64
}

// StageProfiler aggregates per-stage wall times across a batch run. It is
// safe for concurrent use so a batch driver may process images in
// parallel.
type StageProfiler struct {
	mu     sync.Mutex
	stages map[string]*TimeTracker
}

// NewStageProfiler creates an empty profiler.
func NewStageProfiler() *StageProfiler {
	return &StageProfiler{stages: make(map[string]*TimeTracker)}
}

// StartOperation begins timing a stage.
//
// Arguments:
// - name: The name of the stage to track
//
// Returns:
// - A function to call when the stage completes
func (sp *StageProfiler) StartOperation(name string) func() {
	start := time.Now()
	return func() {
		sp.record(name, time.Since(start))
	}
}

func (sp *StageProfiler) record(name string, duration time.Duration) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	tracker, exists := sp.stages[name]
	if !exists {
		tracker = &TimeTracker{
			name:    name,
			minTime: duration,
			maxTime: duration,
		}
		sp.stages[name] = tracker
	}

	tracker.totalTime += duration
	tracker.count++
	if duration < tracker.minTime {
		tracker.minTime = duration
	}
	if duration > tracker.maxTime {
		tracker.maxTime = duration
	}
}

// Report writes a per-stage timing summary, sorted by total time.
func (sp *StageProfiler) Report(w io.Writer) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	trackers := make([]*TimeTracker, 0, len(sp.stages))
	for _, t := range sp.stages {
		trackers = append(trackers, t)
	}
	sort.Slice(trackers, func(i, j int) bool {
		return trackers[i].totalTime > trackers[j].totalTime
	})

	for _, t := range trackers {
		avg := t.totalTime / time.Duration(t.count)
		fmt.Fprintf(w, "%-12s count=%-4d total=%-12s avg=%-12s min=%-12s max=%s\n",
			t.name, t.count, t.totalTime, avg, t.minTime, t.maxTime)
	}
}
