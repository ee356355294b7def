package midi

import (
	"errors"
	"testing"
	"time"

	"midigen/sdk/contracts"
)

type stubField struct{}

func (f stubField) Bool(string, bool) contracts.Field      { return f }
func (f stubField) Int(string, int) contracts.Field        { return f }
func (f stubField) String(string, string) contracts.Field  { return f }
func (f stubField) Time(string, time.Time) contracts.Field { return f }
func (f stubField) Error(string, error) contracts.Field    { return f }
func (f stubField) Uint8(string, uint8) contracts.Field    { return f }

type stubLogger struct {
	level contracts.LogLevel
}

func (l *stubLogger) Info(string, ...contracts.Field) {}
func (l *stubLogger) Error(string, ...contracts.Field) {}
func (l *stubLogger) Debug(string, ...contracts.Field) {}
func (l *stubLogger) Warn(string, ...contracts.Field) {}
func (l *stubLogger) Fatal(string, ...contracts.Field) {}
func (l *stubLogger) Field() contracts.Field { return stubField{} }
func (l *stubLogger) SetLevel(level contracts.LogLevel) { l.level = level }

func TestApplyDefaultOptions(t *testing.T) {
	options, err := applyDefaultOptions()
	if err != nil {
		t.Fatalf("applyDefaultOptions: %v", err)
	}
	if options.Logger == nil {
		t.Error("default logger not set")
	}
	if options.Backend != BackendRtmidi {
		t.Errorf("default backend = %q, want %q", options.Backend, BackendRtmidi)
	}
	if options.VirtualPortName != "My virtual output" {
		t.Errorf("default virtual port name = %q, want %q", options.VirtualPortName, "My virtual output")
	}
}

func TestApplyDefaultOptionsRespectsOverrides(t *testing.T) {
	log := &stubLogger{}
	options, err := applyDefaultOptions(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.DebugLevel),
		contracts.WithBackend(BackendWinmm),
		contracts.WithVirtualPortName("Generator out"),
	)
	if err != nil {
		t.Fatalf("applyDefaultOptions: %v", err)
	}
	if options.Logger != contracts.Logger(log) {
		t.Error("provided logger was replaced")
	}
	if log.level != contracts.DebugLevel {
		t.Errorf("logger level = %v, want DebugLevel", log.level)
	}
	if options.Backend != BackendWinmm {
		t.Errorf("backend = %q, want %q", options.Backend, BackendWinmm)
	}
	if options.VirtualPortName != "Generator out" {
		t.Errorf("virtual port name = %q, want %q", options.VirtualPortName, "Generator out")
	}
}

func TestNewClientUnknownBackend(t *testing.T) {
	_, err := NewClient(&contracts.ClientOptions{
		Logger:  &stubLogger{},
		Backend: "coremidi",
	})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("NewClient = %v, want ErrUnknownBackend", err)
	}
}
