package main

import (
	"bytes"
	"testing"

	"github.com/benmeehan/ble-overlap/internal/models"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrintReport(t *testing.T) {
	color.NoColor = true

	b1 := models.DeviceReading{Address: "B", DisplayName: "Unknown", RSSI: -70, EstimatedDistance: 3.55}
	b2 := models.DeviceReading{Address: "B", DisplayName: "Unknown", RSSI: -65, EstimatedDistance: 2.0}
	report := &models.OverlapReport{
		Scan1: models.ScanResult{Pass: 1, Readings: []models.DeviceReading{
			{Address: "A", DisplayName: "phone", RSSI: -50, EstimatedDistance: 0.35}, b1,
		}},
		Scan2:    models.ScanResult{Pass: 2, Readings: []models.DeviceReading{b2}},
		Overlaps: []models.OverlapRecord{{Address: "B", Scan1: b1, Scan2: b2}},
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "Scan 1: found 2 devices:")
	assert.Contains(t, out, "Device: phone - Address: A")
	assert.Contains(t, out, "Estimated Distance: 0.35 meters")
	assert.Contains(t, out, "Devices found in both scans:")
	assert.Contains(t, out, "Scan 1 - Name: Unknown, RSSI: -70 dBm, Estimated Distance: 3.55 meters")
	assert.Contains(t, out, "Scan 2 - Name: Unknown, RSSI: -65 dBm, Estimated Distance: 2.00 meters")
}

func TestPrintReport_NoOverlaps(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printReport(&buf, &models.OverlapReport{
		Scan1: models.ScanResult{Pass: 1},
		Scan2: models.ScanResult{Pass: 2, Readings: []models.DeviceReading{{Address: "C", DisplayName: "Unknown", EstimatedDistance: -1}}},
	})
	out := buf.String()

	assert.Contains(t, out, "Scan 1: no devices found.")
	assert.Contains(t, out, "Estimated Distance: unknown")
	assert.Contains(t, out, "No overlapping devices found between scans.")
}
