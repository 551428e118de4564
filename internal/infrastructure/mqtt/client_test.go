package mqtt

import (
	"strings"
	"testing"

	"github.com/hearthd/hearth-core/internal/infrastructure/config"
)

func TestTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"system status", topics.SystemStatus(), "hearth/system/status"},
		{"room mapping", topics.RoomMapping(), "hearth/rooms/mapping"},
		{"home summary", topics.HomeSummary(), "hearth/home/summary"},
		{"service status", topics.ServiceStatus("lighting"), "hearth/services/lighting/status"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s topic = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := config.MQTT{
		Broker: config.MQTTBroker{
			Host:     "broker.local",
			Port:     1883,
			ClientID: "hearth-test",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnect{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("expected 1 broker, got %d", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "tcp://broker.local:1883" {
		t.Errorf("broker URL = %q, want tcp://broker.local:1883", got)
	}
	if opts.ClientID != "hearth-test" {
		t.Errorf("client ID = %q", opts.ClientID)
	}
	if !opts.AutoReconnect {
		t.Error("auto-reconnect should be enabled")
	}
}

func TestBuildClientOptions_TLS(t *testing.T) {
	cfg := config.MQTT{
		Broker: config.MQTTBroker{Host: "broker.local", Port: 8883, TLS: true, ClientID: "hearth-test"},
	}

	opts := buildClientOptions(cfg)

	if got := opts.Servers[0].Scheme; got != "ssl" {
		t.Errorf("scheme = %q, want ssl", got)
	}
}

func TestStatusPayloads(t *testing.T) {
	online := buildOnlinePayload("hearth-core")
	if !strings.Contains(online, `"status":"online"`) || !strings.Contains(online, "hearth-core") {
		t.Errorf("online payload malformed: %s", online)
	}

	offline := buildOfflinePayload("hearth-core")
	if !strings.Contains(offline, `"status":"offline"`) || !strings.Contains(offline, "graceful_shutdown") {
		t.Errorf("offline payload malformed: %s", offline)
	}
}

func TestPublish_Validation(t *testing.T) {
	c := &Client{}

	if err := c.Publish("", []byte("x"), 1, false); err != ErrInvalidTopic {
		t.Errorf("empty topic error = %v, want ErrInvalidTopic", err)
	}
	if err := c.Publish("hearth/test", []byte("x"), 3, false); err != ErrInvalidQoS {
		t.Errorf("bad qos error = %v, want ErrInvalidQoS", err)
	}
}
