//go:build !linux

package ble

import (
	"context"
	"time"
)

// HCIScanner is only available on Linux.
type HCIScanner struct{}

// NewHCIScanner always fails outside Linux.
func NewHCIScanner(_ time.Duration) (*HCIScanner, error) {
	return nil, ErrBackendUnsupported
}

// Discover always fails outside Linux.
func (s *HCIScanner) Discover(_ context.Context) ([]Device, error) {
	return nil, ErrBackendUnsupported
}

// Close has nothing to release.
func (s *HCIScanner) Close() error {
	return nil
}
