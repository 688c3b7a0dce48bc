package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUptimeServiceRecordsRequests(t *testing.T) {
	s := NewUptimeService()

	s.RecordRequest(10*time.Millisecond, false)
	s.RecordRequest(20*time.Millisecond, true)

	data := s.GetUptimeData()
	assert.Equal(t, 2, data.TotalRequests)
	assert.Equal(t, 1, data.ErrorCount)
	assert.InDelta(t, 100.0, data.Uptime, 0.001)
}

func TestUptimeServiceFlagsHighErrorRate(t *testing.T) {
	s := NewUptimeService()
	for i := 0; i < 10; i++ {
		s.RecordRequest(time.Millisecond, i%2 == 0)
	}

	s.checkAnomalies()

	anomalies := s.GetAnomalies()
	if assert.Len(t, anomalies, 1) {
		assert.Contains(t, anomalies[0].Description, "High error rate")
	}
}

func TestUptimeServiceNoAnomalyWithoutTraffic(t *testing.T) {
	s := NewUptimeService()
	s.checkAnomalies()
	assert.Empty(t, s.GetAnomalies())
}

func TestMonitorAnomaliesStopsOnCancel(t *testing.T) {
	s := NewUptimeService()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.MonitorAnomalies(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}

func TestDetectAnomaly(t *testing.T) {
	d := NewAnomalyDetector()

	assert.Nil(t, d.DetectAnomaly(100*time.Millisecond, 0.01))
	assert.Contains(t, d.DetectAnomaly(time.Second, 0).Description, "High average response time")
	assert.Contains(t, d.DetectAnomaly(0, 0.5).Description, "High error rate")
}

func TestRecordDowntimeLowersUptime(t *testing.T) {
	s := NewUptimeService()
	time.Sleep(10 * time.Millisecond)

	s.RecordDowntime(5 * time.Millisecond)

	data := s.GetUptimeData()
	assert.False(t, data.LastDowntime.IsZero())
	assert.Less(t, data.Uptime, 100.0)
	assert.Greater(t, data.Uptime, 0.0)
}
