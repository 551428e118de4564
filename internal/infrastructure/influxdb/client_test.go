package influxdb

import (
	"context"
	"errors"
	"testing"

	"github.com/hearthd/hearth-core/internal/infrastructure/config"
)

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(context.Background(), config.InfluxDB{Enabled: false})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestHealthCheck_NotConnected(t *testing.T) {
	var c Client
	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestWrites_NoopWhenDisconnected(t *testing.T) {
	// Writes on a zero-value client must not panic; they drop silently.
	var c Client
	c.WriteHomeSummary(false, 1, 1, 1, 1, 1)
	c.WriteSessionStats(2, 1)
	c.WritePoint("test", nil, map[string]interface{}{"v": 1})

	if c.IsConnected() {
		t.Error("zero-value client reports connected")
	}
}
