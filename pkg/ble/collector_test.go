package ble_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/benmeehan/ble-overlap/pkg/ble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_KeepsFirstSeenOrder(t *testing.T) {
	c := ble.NewCollector()

	c.Add(ble.Device{Address: "AA:AA:AA:AA:AA:01", RSSI: -40})
	c.Add(ble.Device{Address: "AA:AA:AA:AA:AA:02", RSSI: -50})
	c.Add(ble.Device{Address: "AA:AA:AA:AA:AA:03", RSSI: -60})

	devices := c.Devices()
	require.Len(t, devices, 3)
	assert.Equal(t, "AA:AA:AA:AA:AA:01", devices[0].Address)
	assert.Equal(t, "AA:AA:AA:AA:AA:02", devices[1].Address)
	assert.Equal(t, "AA:AA:AA:AA:AA:03", devices[2].Address)
}

func TestCollector_LastSeenWins(t *testing.T) {
	c := ble.NewCollector()

	c.Add(ble.Device{Address: "AA:AA:AA:AA:AA:01", RSSI: -40})
	c.Add(ble.Device{Address: "AA:AA:AA:AA:AA:02", RSSI: -50})
	c.Add(ble.Device{Address: "AA:AA:AA:AA:AA:01", Name: "tag", RSSI: -72})

	devices := c.Devices()
	require.Len(t, devices, 2)
	assert.Equal(t, 2, c.Len())

	// Position of the first sighting, values of the last one.
	assert.Equal(t, ble.Device{Address: "AA:AA:AA:AA:AA:01", Name: "tag", RSSI: -72}, devices[0])
	assert.Equal(t, "AA:AA:AA:AA:AA:02", devices[1].Address)
}

func TestCollector_IgnoresEmptyAddress(t *testing.T) {
	c := ble.NewCollector()

	c.Add(ble.Device{Name: "ghost", RSSI: -30})

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Devices())
}

func TestCollector_ConcurrentAdds(t *testing.T) {
	c := ble.NewCollector()

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				c.Add(ble.Device{Address: fmt.Sprintf("dev-%02d", i), RSSI: -40 - worker})
			}
		}(worker)
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
	assert.Len(t, c.Devices(), 50)
}

func TestCollector_Reset(t *testing.T) {
	c := ble.NewCollector()
	c.Add(ble.Device{Address: "AA:AA:AA:AA:AA:01", RSSI: -40})

	c.Reset()

	assert.Equal(t, 0, c.Len())
}

func TestNewScanner_UnknownBackend(t *testing.T) {
	scanner, err := ble.NewScanner("carrier-pigeon", 5*time.Second)

	assert.Nil(t, scanner)
	assert.ErrorIs(t, err, ble.ErrUnknownBackend)
}

func TestNewScanner_RejectsNonPositiveDuration(t *testing.T) {
	scanner, err := ble.NewScanner(ble.BackendTinyGo, 0)

	assert.Nil(t, scanner)
	assert.Error(t, err)
}
