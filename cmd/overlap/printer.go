package main

import (
	"fmt"
	"io"

	"github.com/benmeehan/ble-overlap/internal/models"
	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	overlapColor = color.New(color.FgGreen, color.Bold)
	mutedColor   = color.New(color.FgYellow)
)

// printReport renders both scan passes and the overlapping devices.
func printReport(w io.Writer, report *models.OverlapReport) {
	printScan(w, report.Scan1)
	printScan(w, report.Scan2)

	if len(report.Overlaps) == 0 {
		mutedColor.Fprintln(w, "\nNo overlapping devices found between scans.")
		return
	}

	overlapColor.Fprintln(w, "\nDevices found in both scans:")
	for _, o := range report.Overlaps {
		fmt.Fprintf(w, "  Address: %s\n", o.Address)
		fmt.Fprintf(w, "    Scan 1 - %s\n", formatReading(o.Scan1))
		fmt.Fprintf(w, "    Scan 2 - %s\n", formatReading(o.Scan2))
		fmt.Fprintln(w)
	}
}

func printScan(w io.Writer, scan models.ScanResult) {
	if scan.Len() == 0 {
		mutedColor.Fprintf(w, "Scan %d: no devices found.\n", scan.Pass)
		return
	}

	headerColor.Fprintf(w, "Scan %d: found %d devices:\n", scan.Pass, scan.Len())
	for _, r := range scan.Readings {
		fmt.Fprintf(w, "  Device: %s - Address: %s\n", r.DisplayName, r.Address)
		fmt.Fprintf(w, "  RSSI: %d dBm\n", r.RSSI)
		fmt.Fprintf(w, "  Estimated Distance: %s\n", formatDistance(r))
		fmt.Fprintln(w)
	}
}

func formatReading(r models.DeviceReading) string {
	return fmt.Sprintf("Name: %s, RSSI: %d dBm, Estimated Distance: %s", r.DisplayName, r.RSSI, formatDistance(r))
}

func formatDistance(r models.DeviceReading) string {
	if !r.HasDistance() {
		return "unknown"
	}
	return fmt.Sprintf("%.2f meters", r.EstimatedDistance)
}
