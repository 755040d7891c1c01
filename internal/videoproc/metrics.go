package videoproc

// metrics.go holds the cumulative service-level metrics accumulator. It is
// an explicit, injectable component rather than package-level state: every
// VideoService owns (or is handed) one, and concurrent ProcessVideo calls
// against the same instance are safe through its mutex.

import (
	"sync"
	"time"
)

// ServiceMetrics accumulates running averages across all videos processed
// by one service instance. Append/merge only; nothing is ever removed.
type ServiceMetrics struct {
	mu sync.Mutex

	videosProcessed     int64
	totalKeyFrames      int64
	totalProcessingTime time.Duration
	avgOverallQuality   float64
	avgSpeedRatio       float64
}

// MetricsSnapshot is a point-in-time copy of the accumulated metrics.
type MetricsSnapshot struct {
	VideosProcessed     int64         `json:"videos_processed"`
	TotalKeyFrames      int64         `json:"total_key_frames"`
	TotalProcessingTime time.Duration `json:"total_processing_time"`
	AvgOverallQuality   float64       `json:"avg_overall_quality"`
	AvgSpeedRatio       float64       `json:"avg_speed_ratio"`
}

// NewServiceMetrics returns an empty accumulator.
func NewServiceMetrics() *ServiceMetrics {
	return &ServiceMetrics{}
}

// Record folds one processing result into the cumulative averages.
func (m *ServiceMetrics) Record(result *VideoProcessingResult) {
	if result == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := float64(m.videosProcessed)
	m.avgOverallQuality = (m.avgOverallQuality*n + result.OverallQuality) / (n + 1)
	m.avgSpeedRatio = (m.avgSpeedRatio*n + result.ProcessingSpeedRatio) / (n + 1)
	m.videosProcessed++
	m.totalKeyFrames += int64(result.TotalKeyFrames)
	m.totalProcessingTime += result.ProcessingTime
}

// Snapshot returns a copy of the current accumulated metrics.
func (m *ServiceMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MetricsSnapshot{
		VideosProcessed:     m.videosProcessed,
		TotalKeyFrames:      m.totalKeyFrames,
		TotalProcessingTime: m.totalProcessingTime,
		AvgOverallQuality:   m.avgOverallQuality,
		AvgSpeedRatio:       m.avgSpeedRatio,
	}
}
