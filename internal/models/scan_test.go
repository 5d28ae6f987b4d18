package models_test

import (
	"testing"

	"github.com/benmeehan/ble-overlap/internal/models"
	"github.com/benmeehan/ble-overlap/pkg/distance"
	"github.com/stretchr/testify/assert"
)

func TestDeviceReading_HasDistance(t *testing.T) {
	cases := []struct {
		name     string
		rssi     int
		expected bool
	}{
		{"unreported rssi", 0, false},
		{"one meter", -59, true},
		{"far away", -95, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reading := models.DeviceReading{RSSI: tc.rssi, EstimatedDistance: distance.Estimate(tc.rssi)}

			assert.Equal(t, tc.expected, reading.HasDistance())
			assert.Equal(t, distance.IsKnown(reading.EstimatedDistance), reading.HasDistance())
		})
	}
}
