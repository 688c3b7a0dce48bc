package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cityinfo-api/internal/logger"

	"github.com/sirupsen/logrus"
)

const (
	maxResponseTimes = 1000
	maxAnomalies     = 10
)

// UptimeData represents uptime information
type UptimeData struct {
	Uptime        float64
	TotalUptime   time.Duration
	LastDowntime  time.Time
	TotalRequests int
	ErrorCount    int
}

// Anomaly represents a detected anomaly
type Anomaly struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// UptimeService tracks request statistics and flags anomalies.
type UptimeService struct {
	startTime       time.Time
	downtime        time.Duration
	lastDowntime    time.Time
	responseTimes   []time.Duration
	errorCount      int
	totalRequests   int
	anomalies       []Anomaly
	mu              sync.RWMutex
	anomalyDetector *AnomalyDetector
}

func NewUptimeService() *UptimeService {
	return &UptimeService{
		startTime:       time.Now(),
		responseTimes:   make([]time.Duration, 0, maxResponseTimes),
		anomalyDetector: NewAnomalyDetector(),
	}
}

// RecordDowntime records a period of downtime
func (s *UptimeService) RecordDowntime(duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downtime += duration
	s.lastDowntime = time.Now()
}

// RecordRequest records a request's response time and whether it failed.
func (s *UptimeService) RecordRequest(responseTime time.Duration, isError bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responseTimes = append(s.responseTimes, responseTime)
	if len(s.responseTimes) > maxResponseTimes {
		s.responseTimes = s.responseTimes[1:]
	}
	s.totalRequests++
	if isError {
		s.errorCount++
	}
}

func (s *UptimeService) GetUptimeData() UptimeData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	totalTime := time.Since(s.startTime)
	uptime := 100.0
	if totalTime > 0 {
		uptime = float64(totalTime-s.downtime) / float64(totalTime) * 100
	}
	return UptimeData{
		Uptime:        uptime,
		TotalUptime:   totalTime.Round(time.Second),
		LastDowntime:  s.lastDowntime,
		TotalRequests: s.totalRequests,
		ErrorCount:    s.errorCount,
	}
}

func (s *UptimeService) GetAnomalies() []Anomaly {
	s.mu.RLock()
	defer s.mu.RUnlock()
	anomalies := make([]Anomaly, len(s.anomalies))
	copy(anomalies, s.anomalies)
	return anomalies
}

// MonitorAnomalies checks the collected statistics every interval until ctx
// is cancelled.
func (s *UptimeService) MonitorAnomalies(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAnomalies()
		}
	}
}

func (s *UptimeService) checkAnomalies() {
	s.mu.RLock()
	avgResponseTime := s.calculateAvgResponseTime()
	errorRate := 0.0
	if s.totalRequests > 0 {
		errorRate = float64(s.errorCount) / float64(s.totalRequests)
	}
	s.mu.RUnlock()

	anomaly := s.anomalyDetector.DetectAnomaly(avgResponseTime, errorRate)
	if anomaly == nil {
		return
	}

	logger.LogEvent(logrus.WarnLevel, "Anomaly detected", logrus.Fields{
		"description": anomaly.Description,
	})

	s.mu.Lock()
	s.anomalies = append(s.anomalies, *anomaly)
	if len(s.anomalies) > maxAnomalies {
		s.anomalies = s.anomalies[1:]
	}
	s.mu.Unlock()
}

func (s *UptimeService) calculateAvgResponseTime() time.Duration {
	if len(s.responseTimes) == 0 {
		return 0
	}
	var total time.Duration
	for _, rt := range s.responseTimes {
		total += rt
	}
	return total / time.Duration(len(s.responseTimes))
}

// AnomalyDetector detects anomalies in system performance
type AnomalyDetector struct {
	avgResponseTimeThreshold time.Duration
	errorRateThreshold       float64
}

func NewAnomalyDetector() *AnomalyDetector {
	return &AnomalyDetector{
		avgResponseTimeThreshold: 500 * time.Millisecond,
		errorRateThreshold:       0.05, // 5%
	}
}

// DetectAnomaly checks for anomalies based on average response time and error rate
func (ad *AnomalyDetector) DetectAnomaly(avgResponseTime time.Duration, errorRate float64) *Anomaly {
	if avgResponseTime > ad.avgResponseTimeThreshold {
		return &Anomaly{
			Timestamp:   time.Now(),
			Description: fmt.Sprintf("High average response time: %v", avgResponseTime),
		}
	}
	if errorRate > ad.errorRateThreshold {
		return &Anomaly{
			Timestamp:   time.Now(),
			Description: fmt.Sprintf("High error rate: %.2f%%", errorRate*100),
		}
	}
	return nil
}
