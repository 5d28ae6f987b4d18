package models

import (
	"sort"
	"time"

	"github.com/benmeehan/ble-overlap/pkg/distance"
)

// DeviceReading is one device observed during one scan pass.
// EstimatedDistance is -1 when the distance could not be determined.
type DeviceReading struct {
	Address           string  `json:"address"`
	DisplayName       string  `json:"display_name"`
	RSSI              int     `json:"rssi"`
	EstimatedDistance float64 `json:"estimated_distance"`
}

// HasDistance reports whether EstimatedDistance is a real estimate.
func (r DeviceReading) HasDistance() bool {
	return distance.IsKnown(r.EstimatedDistance)
}

// ScanResult holds the readings of a single scan pass, one per address,
// ordered by ascending estimated distance.
type ScanResult struct {
	Pass        int             `json:"pass"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at"`
	Readings    []DeviceReading `json:"readings"`
}

// Len returns the number of readings.
func (s ScanResult) Len() int {
	return len(s.Readings)
}

// Addresses returns the addresses in reading order.
func (s ScanResult) Addresses() []string {
	addresses := make([]string, len(s.Readings))
	for i, r := range s.Readings {
		addresses[i] = r.Address
	}
	return addresses
}

// Lookup finds the reading for address.
func (s ScanResult) Lookup(address string) (DeviceReading, bool) {
	for _, r := range s.Readings {
		if r.Address == address {
			return r, true
		}
	}
	return DeviceReading{}, false
}

// IsSorted reports whether readings are in ascending distance order.
func (s ScanResult) IsSorted() bool {
	return sort.SliceIsSorted(s.Readings, func(i, j int) bool {
		return s.Readings[i].EstimatedDistance < s.Readings[j].EstimatedDistance
	})
}

// OverlapRecord pairs the two readings of a device seen in both passes.
type OverlapRecord struct {
	Address string        `json:"address"`
	Scan1   DeviceReading `json:"scan1"`
	Scan2   DeviceReading `json:"scan2"`
}

// OverlapReport is the outcome of a correlated scan.
type OverlapReport struct {
	ID             string          `json:"id"`
	Station        *Station        `json:"station,omitempty"`
	InterScanDelay time.Duration   `json:"inter_scan_delay"`
	Scan1          ScanResult      `json:"scan1"`
	Scan2          ScanResult      `json:"scan2"`
	Overlaps       []OverlapRecord `json:"overlaps"`
}

// OverlapAddresses returns the address of every overlap record.
func (r *OverlapReport) OverlapAddresses() []string {
	addresses := make([]string, len(r.Overlaps))
	for i, o := range r.Overlaps {
		addresses[i] = o.Address
	}
	return addresses
}
