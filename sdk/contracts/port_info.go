package contracts

// VirtualPortNumber is the port number reported for a virtual output,
// which has no position in the system port list.
const VirtualPortNumber = -1

// PortInfo contains information about a MIDI output port.
type PortInfo struct {
	Name   string // Port name as reported by the MIDI subsystem.
	Number int    // Position in the output port list, or VirtualPortNumber.
}
