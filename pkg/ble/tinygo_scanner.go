package ble

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

// stopRetryInterval paces StopScan retries while the adapter has not started scanning yet.
const stopRetryInterval = 10 * time.Millisecond

// scanAdapter is the part of a Bluetooth adapter the scanner drives.
// Scan blocks until StopScan succeeds; StopScan fails while no scan is running.
type scanAdapter interface {
	Enable() error
	Scan(callback func(Device)) error
	StopScan() error
}

// tinygoAdapter adapts a tinygo bluetooth adapter to scanAdapter.
type tinygoAdapter struct {
	adapter *bluetooth.Adapter
}

func (a tinygoAdapter) Enable() error {
	return a.adapter.Enable()
}

func (a tinygoAdapter) Scan(callback func(Device)) error {
	return a.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		callback(Device{
			Address: result.Address.String(),
			Name:    result.LocalName(),
			RSSI:    int(result.RSSI),
		})
	})
}

func (a tinygoAdapter) StopScan() error {
	return a.adapter.StopScan()
}

// TinyGoScanner discovers devices with the platform's default Bluetooth adapter.
type TinyGoScanner struct {
	adapter  scanAdapter
	duration time.Duration

	enableOnce sync.Once
	enableErr  error
}

// NewTinyGoScanner creates a scanner that listens for the given duration per Discover call.
func NewTinyGoScanner(duration time.Duration) *TinyGoScanner {
	return newTinyGoScanner(tinygoAdapter{adapter: bluetooth.DefaultAdapter}, duration)
}

func newTinyGoScanner(adapter scanAdapter, duration time.Duration) *TinyGoScanner {
	return &TinyGoScanner{
		adapter:  adapter,
		duration: duration,
	}
}

// Discover scans for the configured duration or until ctx is done, whichever comes first.
// A context that is already done returns before the radio is touched.
func (s *TinyGoScanner) Discover(ctx context.Context) ([]Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.enableOnce.Do(func() {
		s.enableErr = s.adapter.Enable()
	})
	if s.enableErr != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", s.enableErr)
	}

	collector := NewCollector()

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		s.stopWhenDue(ctx, done)
	}()

	err := s.adapter.Scan(collector.Add)
	close(done)
	<-stopped

	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return collector.Devices(), nil
}

// stopWhenDue stops the scan once the duration elapses or ctx ends. StopScan is
// retried until it succeeds because the adapter rejects it until Scan is running.
func (s *TinyGoScanner) stopWhenDue(ctx context.Context, done <-chan struct{}) {
	timer := time.NewTimer(s.duration)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	case <-done:
		return
	}

	ticker := time.NewTicker(stopRetryInterval)
	defer ticker.Stop()

	for {
		if err := s.adapter.StopScan(); err == nil {
			return
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// Close is a no-op; the default adapter is shared for the life of the process.
func (s *TinyGoScanner) Close() error {
	return nil
}
