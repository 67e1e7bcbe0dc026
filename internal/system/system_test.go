package system

import (
	"testing"

	"github.com/Bhavna2020/ippcored/internal/collab"
)

func TestBeginShutdownFlipsIsShutdownPending(t *testing.T) {
	s := New(Config{})
	if s.IsShutdownPending() {
		t.Fatal("new system should not start shutdown-pending")
	}
	s.BeginShutdown()
	if !s.IsShutdownPending() {
		t.Fatal("expected IsShutdownPending to be true after BeginShutdown")
	}
}

func TestSetAuthServiceConfigured(t *testing.T) {
	s := New(Config{})
	if s.AuthServiceConfigured() {
		t.Fatal("new system should not report an auth service by default")
	}
	s.SetAuthServiceConfigured(true)
	if !s.AuthServiceConfigured() {
		t.Fatal("expected AuthServiceConfigured to be true")
	}
}

func TestTLSFlagsAndResourcesComeFromConfig(t *testing.T) {
	res := []collab.Resource{{Language: "en", Path: "/strings/en.strings"}}
	s := New(Config{TLSOnly: true, TLSDisabled: false, Resources: res})
	if !s.TLSOnly() || s.TLSDisabled() {
		t.Fatalf("TLSOnly=%v TLSDisabled=%v, want true/false", s.TLSOnly(), s.TLSDisabled())
	}
	if len(s.Resources()) != 1 || s.Resources()[0].Path != "/strings/en.strings" {
		t.Fatalf("unexpected resources: %+v", s.Resources())
	}
}

func TestConfigChangedInvokesHookWhenSet(t *testing.T) {
	var got int64 = -1
	s := New(Config{})
	s.OnConfigChanged = func(printerID int64) { got = printerID }

	s.ConfigChanged(42)
	if got != 42 {
		t.Fatalf("OnConfigChanged called with %d, want 42", got)
	}
}

func TestConfigChangedNoopWithoutHook(t *testing.T) {
	s := New(Config{})
	s.ConfigChanged(1) // must not panic
}
