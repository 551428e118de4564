package demo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hearthd/hearth-core/internal/plugin"
)

func TestLighting_ConnectAndFetch(t *testing.T) {
	s := NewLighting()
	ctx := context.Background()

	if s.IsConnected() {
		t.Fatal("new service reports connected")
	}

	res, err := s.Connect(ctx, plugin.ConnectParams{EndpointID: "192.168.1.100"})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if res.Outcome != plugin.OutcomeSuccess {
		t.Fatalf("Connect() outcome = %q, want success", res.Outcome)
	}
	if res.CredentialRef == "" {
		t.Error("first-time pairing minted no credential")
	}

	rooms, err := s.Rooms(ctx)
	if err != nil {
		t.Fatalf("Rooms() error = %v", err)
	}
	if len(rooms) != 2 {
		t.Errorf("len(Rooms()) = %d, want 2", len(rooms))
	}

	devices, err := s.Devices(ctx)
	if err != nil {
		t.Fatalf("Devices() error = %v", err)
	}
	lights := 0
	for _, d := range devices {
		if d.Type == "light" {
			lights++
		}
	}
	if lights != 5 {
		t.Errorf("lighting fixture has %d lights, want 5", lights)
	}

	status := s.ConnectionStatus()
	if !status.Connected || status.EndpointID != "192.168.1.100" {
		t.Errorf("ConnectionStatus() = %+v", status)
	}
}

func TestService_NotConnectedErrors(t *testing.T) {
	s := NewHeating()
	ctx := context.Background()

	if _, err := s.Status(ctx); !errors.Is(err, plugin.ErrNotConnected) {
		t.Errorf("Status() error = %v, want ErrNotConnected", err)
	}
	if _, err := s.Rooms(ctx); !errors.Is(err, plugin.ErrNotConnected) {
		t.Errorf("Rooms() error = %v, want ErrNotConnected", err)
	}
	if _, err := s.Devices(ctx); !errors.Is(err, plugin.ErrNotConnected) {
		t.Errorf("Devices() error = %v, want ErrNotConnected", err)
	}
}

func TestService_DisconnectRejectsStatus(t *testing.T) {
	s := NewHeating()
	ctx := context.Background()

	if _, err := s.Connect(ctx, plugin.ConnectParams{EndpointID: "10.0.0.5"}); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if _, err := s.Status(ctx); err != nil {
		t.Fatalf("Status() while connected error = %v", err)
	}

	if err := s.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}
	if _, err := s.Status(ctx); !errors.Is(err, plugin.ErrNotConnected) {
		t.Errorf("Status() after disconnect error = %v, want ErrNotConnected", err)
	}
}

func TestDevices_ReturnsCopies(t *testing.T) {
	s := NewLighting()
	ctx := context.Background()
	s.Connect(ctx, plugin.ConnectParams{}) //nolint:errcheck

	first, _ := s.Devices(ctx)
	first[0].State["on"] = false
	first[0].Name = "Vandalized"

	second, _ := s.Devices(ctx)
	if second[0].State["on"] != true {
		t.Error("caller mutation of device state reached the fixtures")
	}
	if second[0].Name == "Vandalized" {
		t.Error("caller mutation of device name reached the fixtures")
	}
}

func TestMusic_TwoFactorFlow(t *testing.T) {
	s := NewMusic()
	ctx := context.Background()

	res, err := s.Connect(ctx, plugin.ConnectParams{EndpointID: "music.local"})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if res.Outcome != plugin.OutcomeRequires2FA {
		t.Fatalf("Connect() outcome = %q, want requires_2fa", res.Outcome)
	}
	if s.IsConnected() {
		t.Fatal("connected before verification")
	}

	// Wrong code is rejected.
	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"code":"999999"}`)
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/verify", body))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong code status = %d, want 401", rec.Code)
	}

	// Correct code completes pairing.
	rec = httptest.NewRecorder()
	body = bytes.NewBufferString(`{"code":"123456"}`)
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/verify", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("verify status = %d, want 200", rec.Code)
	}

	var result plugin.ConnectResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding verify response: %v", err)
	}
	if result.Outcome != plugin.OutcomeSuccess || result.CredentialRef == "" {
		t.Errorf("verify result = %+v, want success with credential", result)
	}
	if !s.IsConnected() {
		t.Error("not connected after successful verification")
	}

	// Verification sticks across reconnects.
	if err := s.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}
	res, err = s.Connect(ctx, plugin.ConnectParams{EndpointID: "music.local", CredentialRef: result.CredentialRef})
	if err != nil {
		t.Fatalf("reconnect error = %v", err)
	}
	if res.Outcome != plugin.OutcomeSuccess {
		t.Errorf("reconnect outcome = %q, want success without repeat 2FA", res.Outcome)
	}
}

func TestMusic_VerifyWithoutPairing(t *testing.T) {
	s := NewMusic()

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"code":"123456"}`)
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/verify", body))
	if rec.Code != http.StatusConflict {
		t.Errorf("verify without pairing status = %d, want 409", rec.Code)
	}
}

func TestRouter_Info(t *testing.T) {
	s := NewLighting()

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/info", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("info status = %d, want 200", rec.Code)
	}

	var meta plugin.Metadata
	if err := json.NewDecoder(rec.Body).Decode(&meta); err != nil {
		t.Fatalf("decoding info response: %v", err)
	}
	if meta.ID != "lighting" {
		t.Errorf("info ID = %q, want lighting", meta.ID)
	}
}
