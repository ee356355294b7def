//go:build windows
// +build windows

package midiwinmm

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"midigen/sdk/contracts"
)

// HMIDIOUT is a winmm MIDI output device handle.
type HMIDIOUT windows.Handle

// CALLBACK_NULL opens the device without an event callback.
const CALLBACK_NULL = 0x00000000

// Error definitions for the winmm output backend.
var (
	ErrNoOutputDevices = errors.New("no MIDI output devices found")
	ErrInvalidPort     = errors.New("invalid MIDI output port")
	ErrPortNotOpen     = errors.New("no MIDI output port is open")
	ErrNoVirtualPorts  = errors.New("virtual output ports are not supported by the winmm backend")
	ErrShortMessage    = errors.New("winmm backend only sends short messages of up to 3 bytes")
)

// Struct representing winmm MIDI output device capabilities (MIDIOUTCAPSW).
type midiOutCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	wTechnology    uint16
	wVoices        uint16
	wNotes         uint16
	wChannelMask   uint16
	dwSupport      uint32
}

// Load the winmm.dll library and required functions
var (
	winmm                 = windows.NewLazySystemDLL("winmm.dll")
	procMidiOutGetNumDevs = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps = winmm.NewProc("midiOutGetDevCapsW")
	procMidiOutOpen       = winmm.NewProc("midiOutOpen")
	procMidiOutShortMsg   = winmm.NewProc("midiOutShortMsg")
	procMidiOutClose      = winmm.NewProc("midiOutClose")
)

// ClientMid manages MIDI output on Windows through the winmm API.
type ClientMid struct {
	logger          contracts.Logger
	virtualPortName string
	mu              sync.Mutex
	handle          HMIDIOUT
	portOpen        bool
}

// NewMIDIClient creates a MIDI output client for Windows.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("MIDI output client created for Windows")

	return &ClientMid{
		logger:          options.Logger,
		virtualPortName: options.VirtualPortName,
	}, nil
}

// ListOutputs lists the available MIDI output devices.
func (m *ClientMid) ListOutputs() ([]contracts.PortInfo, error) {
	r0, _, _ := procMidiOutGetNumDevs.Call()
	numDevices := uint32(r0)

	ports := make([]contracts.PortInfo, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiOutCaps
		r1, _, _ := procMidiOutGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn(fmt.Sprintf("Failed to get information for MIDI output %d", i))
			continue
		}
		ports = append(ports, contracts.PortInfo{
			Name:   windows.UTF16ToString(caps.szPname[:]),
			Number: int(i),
		})
	}
	return ports, nil
}

// SelectOutput opens a MIDI output device by ID.
func (m *ClientMid) SelectOutput(portID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r0, _, _ := procMidiOutGetNumDevs.Call()
	if portID < 0 || portID >= int(uint32(r0)) {
		m.logger.Error(ErrInvalidPort.Error())
		return ErrInvalidPort
	}

	if m.portOpen {
		if err := m.closeHandle(); err != nil {
			return fmt.Errorf("failed to close previous MIDI output: %w", err)
		}
	}

	r1, _, err := procMidiOutOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(portID),
		0,
		0,
		uintptr(CALLBACK_NULL),
	)
	if r1 != 0 {
		m.logger.Error(fmt.Sprintf("Failed to open MIDI output %d: %v", portID, err))
		return fmt.Errorf("failed to open MIDI output %d: %v", portID, err)
	}

	m.portOpen = true
	m.logger.Info(fmt.Sprintf("MIDI output %d opened", portID))
	return nil
}

// OpenVirtualOutput always fails: the winmm API has no concept of virtual
// ports. The rtmidi backend covers the virtual-port path.
func (m *ClientMid) OpenVirtualOutput(name string) error {
	m.logger.Error(ErrNoVirtualPorts.Error())
	return ErrNoVirtualPorts
}

// SelectDefaultOutput opens output device 0 when the system has any output
// devices and fails otherwise, since this backend cannot create a virtual
// fallback port.
func (m *ClientMid) SelectDefaultOutput() (contracts.PortInfo, error) {
	ports, err := m.ListOutputs()
	if err != nil {
		return contracts.PortInfo{}, err
	}
	if len(ports) == 0 {
		m.logger.Warn(ErrNoOutputDevices.Error())
		return contracts.PortInfo{}, m.OpenVirtualOutput(m.virtualPortName)
	}

	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	m.logger.Info("available MIDI output ports: " + strings.Join(names, ", "))

	if err := m.SelectOutput(0); err != nil {
		return contracts.PortInfo{}, err
	}
	return ports[0], nil
}

// Send sends a short MIDI message through the open output device.
func (m *ClientMid) Send(msg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.portOpen {
		return ErrPortNotOpen
	}
	if len(msg) == 0 || len(msg) > 3 {
		return ErrShortMessage
	}

	var dwMsg uint32
	for i, b := range msg {
		dwMsg |= uint32(b) << (8 * i)
	}

	r1, _, err := procMidiOutShortMsg.Call(uintptr(m.handle), uintptr(dwMsg))
	if r1 != 0 {
		m.logger.Error(fmt.Sprintf("Failed to send MIDI message: %v", err))
		return fmt.Errorf("failed to send MIDI message: %v", err)
	}
	return nil
}

// Stop closes the open output device.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.portOpen {
		return nil
	}
	if err := m.closeHandle(); err != nil {
		return fmt.Errorf("failed to close MIDI output: %w", err)
	}
	m.logger.Info("MIDI output closed")
	return nil
}

// closeHandle closes the device handle. Callers must hold m.mu.
func (m *ClientMid) closeHandle() error {
	r1, _, err := procMidiOutClose.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error(fmt.Sprintf("Failed to close MIDI output: %v", err))
		return err
	}
	m.portOpen = false
	m.handle = 0
	return nil
}
