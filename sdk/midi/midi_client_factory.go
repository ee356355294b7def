package midi

import (
	"errors"
	"fmt"

	"midigen/internal/midi/midirtmidi"
	"midigen/internal/midi/midiwinmm"
	"midigen/sdk/contracts"
)

// Backend names accepted by the factory.
const (
	// BackendRtmidi is the default backend: rtmidi covers ALSA, CoreMIDI
	// and Windows MM, and is the only backend with virtual output ports.
	BackendRtmidi = "rtmidi"
	// BackendWinmm drives the Windows multimedia API directly.
	BackendWinmm = "winmm"
)

// ErrUnknownBackend is returned when no backend matches the configured name.
var ErrUnknownBackend = errors.New("unknown MIDI backend")

// backendInitializers maps backend names to corresponding MIDI client initializers.
var backendInitializers = map[string]func(*contracts.ClientOptions) (contracts.ClientMIDI, error){
	BackendRtmidi: midirtmidi.NewMIDIClient,
	BackendWinmm:  midiwinmm.NewMIDIClient,
}

// NewClient initializes a MIDI output client for the configured backend,
// returning ErrUnknownBackend if the backend name is not recognized.
//
// opts *contracts.ClientOptions: Configuration options for the MIDI client.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI output client.
//   - error: An error if the backend is unknown or if initialization fails.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if initializer, exists := backendInitializers[opts.Backend]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, opts.Backend)
}
