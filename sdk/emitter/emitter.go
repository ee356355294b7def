package emitter

import (
	"context"
	"time"

	"midigen/sdk/contracts"
)

// Fixed note parameters: middle C on channel 1, struck at velocity 112.
const (
	noteNumber      = 60
	noteOnVelocity  = 112
	noteOffVelocity = 0
)

// Cycle timing: the note is held for 500ms and silent for 100ms,
// repeating with a period of 600ms.
const (
	NoteOnDuration  = 500 * time.Millisecond
	NoteOffDuration = 100 * time.Millisecond
)

// NoteOnMessage returns the 3-byte note-on message the emitter sends.
func NoteOnMessage() []byte {
	return []byte{byte(contracts.NoteOn), noteNumber, noteOnVelocity}
}

// NoteOffMessage returns the 3-byte note-off message the emitter sends.
func NoteOffMessage() []byte {
	return []byte{byte(contracts.NoteOff), noteNumber, noteOffVelocity}
}

// Emitter repeatedly sends the fixed note-on/note-off cycle through a MIDI
// output client. It holds no state beyond the client and the two durations.
type Emitter struct {
	client      contracts.ClientMIDI
	logger      contracts.Logger
	onDuration  time.Duration
	offDuration time.Duration
}

// New creates an emitter bound to an output client.
func New(client contracts.ClientMIDI, log contracts.Logger) *Emitter {
	return &Emitter{
		client:      client,
		logger:      log,
		onDuration:  NoteOnDuration,
		offDuration: NoteOffDuration,
	}
}

// Run emits the note cycle until ctx is cancelled or a send fails; it never
// returns nil. When cancellation lands while the note is held, a final
// note-off is sent so the note is not left sounding.
func (e *Emitter) Run(ctx context.Context) error {
	for {
		e.logger.Info("Sending note on")
		if err := e.client.Send(NoteOnMessage()); err != nil {
			return err
		}
		if err := sleep(ctx, e.onDuration); err != nil {
			// Best effort: the port may already be gone.
			_ = e.client.Send(NoteOffMessage())
			return err
		}

		e.logger.Info("Sending note off")
		if err := e.client.Send(NoteOffMessage()); err != nil {
			return err
		}
		if err := sleep(ctx, e.offDuration); err != nil {
			return err
		}
	}
}

// sleep blocks for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
