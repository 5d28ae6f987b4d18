//go:build linux

package ble

import (
	"context"
	"errors"
	"fmt"
	"time"

	goble "github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"
)

// HCIScanner discovers devices through the first HCI controller using raw sockets.
// The process needs CAP_NET_ADMIN.
type HCIScanner struct {
	device   *linux.Device
	duration time.Duration
}

// NewHCIScanner opens the HCI device.
func NewHCIScanner(duration time.Duration) (*HCIScanner, error) {
	dev, err := linux.NewDevice()
	if err != nil {
		return nil, fmt.Errorf("failed to open HCI device: %w", err)
	}

	return &HCIScanner{
		device:   dev,
		duration: duration,
	}, nil
}

// Discover scans for the configured duration. Duplicate advertisements are
// requested so the latest RSSI of every device is kept.
func (s *HCIScanner) Discover(ctx context.Context) ([]Device, error) {
	scanCtx, cancel := context.WithTimeout(ctx, s.duration)
	defer cancel()

	collector := NewCollector()
	err := s.device.Scan(scanCtx, true, func(a goble.Advertisement) {
		collector.Add(Device{
			Address: a.Addr().String(),
			Name:    a.LocalName(),
			RSSI:    a.RSSI(),
		})
	})
	// The scan ends when its own deadline passes; only the caller's context
	// ending early is a failure.
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return collector.Devices(), nil
}

// Close releases the HCI device.
func (s *HCIScanner) Close() error {
	return s.device.Stop()
}
