package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// BackendTinyGo scans through tinygo.org/x/bluetooth (BlueZ, CoreBluetooth or WinRT).
	BackendTinyGo = "tinygo"
	// BackendHCI scans through a raw Linux HCI socket.
	BackendHCI = "hci"
)

var (
	// ErrBackendUnsupported is returned when a backend cannot run on this platform.
	ErrBackendUnsupported = errors.New("ble backend not supported on this platform")
	// ErrUnknownBackend is returned by NewScanner for an unrecognised backend name.
	ErrUnknownBackend = errors.New("unknown ble backend")
)

// Device is a single discovered BLE peripheral as reported by the radio.
// Name is empty when the peripheral does not advertise one and RSSI is 0 when
// the stack did not report signal strength.
type Device struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
	RSSI    int    `json:"rssi"`
}

// Scanner discovers nearby BLE devices for an implementation-defined scan duration.
type Scanner interface {
	Discover(ctx context.Context) ([]Device, error)
	Close() error
}

// NewScanner returns the Scanner for the named backend.
func NewScanner(backend string, duration time.Duration) (Scanner, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("scan duration must be positive, got %s", duration)
	}

	switch strings.ToLower(backend) {
	case "", BackendTinyGo:
		return NewTinyGoScanner(duration), nil
	case BackendHCI:
		scanner, err := NewHCIScanner(duration)
		if err != nil {
			return nil, err
		}
		return scanner, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
