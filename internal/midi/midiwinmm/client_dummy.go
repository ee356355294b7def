//go:build !windows
// +build !windows

package midiwinmm

import (
	"fmt"

	"midigen/sdk/contracts"
)

type DummyMIDIClient struct {
	logger contracts.Logger
}

func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("Using dummy winmm MIDI client for non-Windows system")
	return &DummyMIDIClient{
		logger: options.Logger,
	}, nil
}

func (m *DummyMIDIClient) ListOutputs() ([]contracts.PortInfo, error) {
	m.logger.Warn("ListOutputs called on dummy winmm MIDI client")
	return nil, fmt.Errorf("the winmm backend is not available on this platform")
}

func (m *DummyMIDIClient) SelectOutput(portID int) error {
	m.logger.Warn("SelectOutput called on dummy winmm MIDI client")
	return fmt.Errorf("the winmm backend is not available on this platform")
}

func (m *DummyMIDIClient) OpenVirtualOutput(name string) error {
	m.logger.Warn("OpenVirtualOutput called on dummy winmm MIDI client")
	return fmt.Errorf("the winmm backend is not available on this platform")
}

func (m *DummyMIDIClient) SelectDefaultOutput() (contracts.PortInfo, error) {
	m.logger.Warn("SelectDefaultOutput called on dummy winmm MIDI client")
	return contracts.PortInfo{}, fmt.Errorf("the winmm backend is not available on this platform")
}

func (m *DummyMIDIClient) Send(msg []byte) error {
	m.logger.Warn("Send called on dummy winmm MIDI client")
	return fmt.Errorf("the winmm backend is not available on this platform")
}

func (m *DummyMIDIClient) Stop() error {
	m.logger.Warn("Stop called on dummy winmm MIDI client")
	return nil
}
