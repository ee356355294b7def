package midirtmidi

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"midigen/sdk/contracts"
)

// Error definitions for MIDI output connection and handling issues.
var (
	ErrInvalidPort       = errors.New("invalid MIDI output port")
	ErrPortNotOpen       = errors.New("no MIDI output port is open")
	ErrOpenOutputPort    = errors.New("error opening output port")
	ErrCreateVirtualPort = errors.New("error creating virtual output port")
)

// Driver is the surface of the rtmidi driver used by the client.
type Driver interface {
	Outs() ([]drivers.Out, error)
	OpenVirtualOut(name string) (drivers.Out, error)
	Close() error
}

// ClientMid manages MIDI output through the rtmidi driver.
// This struct handles port enumeration and selection, raw message sending,
// and ensures safe concurrency handling.
type ClientMid struct {
	logger          contracts.Logger
	driver          Driver
	virtualPortName string
	mu              sync.Mutex // Mutex for thread safety on the open port.
	out             drivers.Out
	stopOnce        sync.Once // Ensures Stop() is executed only once.
}

// NewMIDIClient initializes a new ClientMid on top of the rtmidi driver.
// The driver itself is cross-platform (ALSA, CoreMIDI, Windows MM).
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("error initializing rtmidi driver: %w", err)
	}
	options.Logger.Info("MIDI output client successfully created")

	return newClient(drv, options), nil
}

func newClient(drv Driver, options *contracts.ClientOptions) *ClientMid {
	return &ClientMid{
		logger:          options.Logger,
		driver:          drv,
		virtualPortName: options.VirtualPortName,
	}
}

// ListOutputs retrieves and returns available MIDI output ports.
// An empty list is not an error; it is the caller's signal to fall back
// to a virtual port.
func (m *ClientMid) ListOutputs() ([]contracts.PortInfo, error) {
	outs, err := m.driver.Outs()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI outputs: %w", err)
	}

	ports := make([]contracts.PortInfo, len(outs))
	for i, out := range outs {
		ports[i] = contracts.PortInfo{
			Name:   out.String(),
			Number: out.Number(),
		}
	}
	return ports, nil
}

// SelectOutput opens a MIDI output port by ID for sending.
// If a port is already open, it is closed first.
func (m *ClientMid) SelectOutput(portID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	outs, err := m.driver.Outs()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI outputs: %w", err)
	}
	if portID < 0 || portID >= len(outs) {
		m.logger.Error(ErrInvalidPort.Error())
		return ErrInvalidPort
	}

	if m.out != nil {
		_ = m.out.Close()
		m.out = nil
	}

	out := outs[portID]
	if err := out.Open(); err != nil {
		m.logger.Error(ErrOpenOutputPort.Error())
		return fmt.Errorf("%w: %v", ErrOpenOutputPort, err)
	}

	m.out = out
	m.logger.Info("MIDI output port opened",
		m.logger.Field().Int("portID", portID),
		m.logger.Field().String("portName", out.String()))
	return nil
}

// OpenVirtualOutput creates a virtual output port advertised under the given
// name, making this process a MIDI source other software can connect to.
// The port returned by the driver is already open.
func (m *ClientMid) OpenVirtualOutput(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.out != nil {
		_ = m.out.Close()
		m.out = nil
	}

	out, err := m.driver.OpenVirtualOut(name)
	if err != nil {
		m.logger.Error(ErrCreateVirtualPort.Error())
		return fmt.Errorf("%w: %v", ErrCreateVirtualPort, err)
	}

	m.out = out
	m.logger.Info("virtual MIDI output port created",
		m.logger.Field().String("portName", name))
	return nil
}

// SelectDefaultOutput opens output port 0 when the system has any output
// ports, and falls back to a virtual port otherwise.
func (m *ClientMid) SelectDefaultOutput() (contracts.PortInfo, error) {
	ports, err := m.ListOutputs()
	if err != nil {
		return contracts.PortInfo{}, err
	}

	if len(ports) == 0 {
		m.logger.Warn("no MIDI output ports found; creating virtual output",
			m.logger.Field().String("portName", m.virtualPortName))
		if err := m.OpenVirtualOutput(m.virtualPortName); err != nil {
			return contracts.PortInfo{}, err
		}
		return contracts.PortInfo{Name: m.virtualPortName, Number: contracts.VirtualPortNumber}, nil
	}

	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Name
	}
	m.logger.Info("available MIDI output ports",
		m.logger.Field().String("ports", strings.Join(names, ", ")))

	if err := m.SelectOutput(0); err != nil {
		return contracts.PortInfo{}, err
	}
	return ports[0], nil
}

// Send sends a raw MIDI message through the open output port.
func (m *ClientMid) Send(msg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.out == nil {
		return ErrPortNotOpen
	}
	if err := m.out.Send(msg); err != nil {
		return fmt.Errorf("error sending MIDI message: %w", err)
	}
	return nil
}

// Stop closes the open output port and shuts down the driver.
// This function ensures it only executes once, even if called multiple times.
func (m *ClientMid) Stop() error {
	var err error
	m.stopOnce.Do(func() {
		m.logger.Info("stopping MIDI output client")
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.out != nil {
			err = m.out.Close()
			m.out = nil
		}
		if closeErr := m.driver.Close(); err == nil {
			err = closeErr
		}
	})
	return err
}
