package services

import (
	"fmt"
	"sync"
	"time"
)

// GenerationStats is a point-in-time view of the metrics sink.
type GenerationStats struct {
	Requests      int64
	CacheHits     int64
	ByStrategy    map[string]int64
	FailedRules   map[string]int64
	TotalDuration time.Duration
}

func (s GenerationStats) AverageDuration() time.Duration {
	if s.Requests == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Requests)
}

// GenerationMetricsSink keeps in-process counters for outfit generation. The
// engine calls Record fire-and-forget; the scheduler task reads Snapshot
// periodically and logs it.
type GenerationMetricsSink struct {
	mu sync.Mutex

	requests      int64
	cacheHits     int64
	byStrategy    map[string]int64
	failedRules   map[string]int64
	totalDuration time.Duration
}

func NewGenerationMetricsSink() *GenerationMetricsSink {
	return &GenerationMetricsSink{
		byStrategy:  make(map[string]int64),
		failedRules: make(map[string]int64),
	}
}

func (m *GenerationMetricsSink) Record(strategy string, duration time.Duration, cacheHit bool, failedRules []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	m.totalDuration += duration
	if cacheHit {
		m.cacheHits++
	}
	if strategy != "" {
		m.byStrategy[strategy]++
	}
	for _, rule := range failedRules {
		m.failedRules[rule]++
	}
}

func (m *GenerationMetricsSink) Snapshot() GenerationStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := GenerationStats{
		Requests:      m.requests,
		CacheHits:     m.cacheHits,
		ByStrategy:    make(map[string]int64, len(m.byStrategy)),
		FailedRules:   make(map[string]int64, len(m.failedRules)),
		TotalDuration: m.totalDuration,
	}
	for k, v := range m.byStrategy {
		stats.ByStrategy[k] = v
	}
	for k, v := range m.failedRules {
		stats.FailedRules[k] = v
	}
	return stats
}

func (m *GenerationMetricsSink) LogStats() {
	stats := m.Snapshot()
	fmt.Printf("[Stats] Generations: %d CacheHits: %d AvgDuration: %v Strategies: %v\n",
		stats.Requests, stats.CacheHits, stats.AverageDuration(), stats.ByStrategy)
	if len(stats.FailedRules) > 0 {
		fmt.Printf("[Stats] Failed rules so far: %v\n", stats.FailedRules)
	}
}
