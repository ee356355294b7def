package emitter

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"midigen/sdk/contracts"
)

type sentMessage struct {
	data []byte
	at   time.Time
}

// fakeClient records every message sent through it.
type fakeClient struct {
	mu      sync.Mutex
	sent    []sentMessage
	sendErr error
}

func (c *fakeClient) Send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, sentMessage{
		data: append([]byte(nil), msg...),
		at:   time.Now(),
	})
	return nil
}

func (c *fakeClient) messages() []sentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]sentMessage(nil), c.sent...)
}

func (c *fakeClient) ListOutputs() ([]contracts.PortInfo, error) { return nil, nil }
func (c *fakeClient) SelectOutput(int) error                     { return nil }
func (c *fakeClient) OpenVirtualOutput(string) error             { return nil }
func (c *fakeClient) SelectDefaultOutput() (contracts.PortInfo, error) {
	return contracts.PortInfo{}, nil
}
func (c *fakeClient) Stop() error { return nil }

type nopField struct{}

func (f nopField) Bool(string, bool) contracts.Field      { return f }
func (f nopField) Int(string, int) contracts.Field        { return f }
func (f nopField) String(string, string) contracts.Field  { return f }
func (f nopField) Time(string, time.Time) contracts.Field { return f }
func (f nopField) Error(string, error) contracts.Field    { return f }
func (f nopField) Uint8(string, uint8) contracts.Field    { return f }

type nopLogger struct{}

func (nopLogger) Info(string, ...contracts.Field) {}
func (nopLogger) Error(string, ...contracts.Field) {}
func (nopLogger) Debug(string, ...contracts.Field) {}
func (nopLogger) Warn(string, ...contracts.Field) {}
func (nopLogger) Fatal(string, ...contracts.Field) {}
func (nopLogger) Field() contracts.Field           { return nopField{} }
func (nopLogger) SetLevel(contracts.LogLevel) {}

// newTestEmitter shortens the cycle so tests run in milliseconds.
func newTestEmitter(client contracts.ClientMIDI, on, off time.Duration) *Emitter {
	e := New(client, nopLogger{})
	e.onDuration = on
	e.offDuration = off
	return e
}

func TestMessageBytes(t *testing.T) {
	if got := NoteOnMessage(); !bytes.Equal(got, []byte{0x90, 60, 112}) {
		t.Errorf("note-on = %v, want [144 60 112]", got)
	}
	if got := NoteOffMessage(); !bytes.Equal(got, []byte{0x80, 60, 0}) {
		t.Errorf("note-off = %v, want [128 60 0]", got)
	}
}

func TestRunEmitsAlternatingCycle(t *testing.T) {
	client := &fakeClient{}
	e := newTestEmitter(client, 10*time.Millisecond, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := e.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run = %v, want context.DeadlineExceeded", err)
	}

	msgs := client.messages()
	if len(msgs) < 4 {
		t.Fatalf("got %d messages, want at least 4 (two full cycles)", len(msgs))
	}
	for i, msg := range msgs {
		want := NoteOnMessage()
		if i%2 == 1 {
			want = NoteOffMessage()
		}
		if !bytes.Equal(msg.data, want) {
			t.Errorf("message %d = %v, want %v", i, msg.data, want)
		}
	}
}

func TestRunHonorsHoldDuration(t *testing.T) {
	const hold = 30 * time.Millisecond

	client := &fakeClient{}
	e := newTestEmitter(client, hold, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	_ = e.Run(ctx)

	msgs := client.messages()
	if len(msgs) < 2 {
		t.Fatalf("got %d messages, want at least 2", len(msgs))
	}
	if gap := msgs[1].at.Sub(msgs[0].at); gap < hold {
		t.Errorf("note-off followed note-on after %v, want at least %v", gap, hold)
	}
}

func TestCancelDuringHoldReleasesNote(t *testing.T) {
	client := &fakeClient{}
	e := newTestEmitter(client, time.Second, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	time.Sleep(20 * time.Millisecond) // land inside the held phase
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	msgs := client.messages()
	if len(msgs) == 0 {
		t.Fatal("no messages sent")
	}
	if last := msgs[len(msgs)-1]; !bytes.Equal(last.data, NoteOffMessage()) {
		t.Errorf("last message = %v, want note-off", last.data)
	}
}

func TestSendErrorAbortsRun(t *testing.T) {
	sendErr := errors.New("port gone")
	client := &fakeClient{sendErr: sendErr}
	e := newTestEmitter(client, 10*time.Millisecond, 5*time.Millisecond)

	if err := e.Run(context.Background()); !errors.Is(err, sendErr) {
		t.Fatalf("Run = %v, want %v", err, sendErr)
	}
}
