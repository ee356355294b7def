package contracts

// MIDICommand represents the status byte of a channel voice message.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event on channel 1 (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event on channel 1 (0x80).
	NoteOff MIDICommand = 0x80
)

// ClientMIDI defines an interface for MIDI output client operations.
type ClientMIDI interface {
	ListOutputs() ([]PortInfo, error)       // Lists all available MIDI output ports.
	SelectOutput(portID int) error          // Opens an output port by its ID for sending.
	OpenVirtualOutput(name string) error    // Creates a virtual output port under the given name.
	SelectDefaultOutput() (PortInfo, error) // Opens port 0 if any port exists, otherwise a virtual port.
	Send(msg []byte) error                  // Sends a raw MIDI message through the open port.
	Stop() error                            // Closes the open port and releases driver resources.
}
