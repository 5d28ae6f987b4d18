package ble

import (
	"sort"
	"sync/atomic"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type sighting struct {
	seq    uint64
	device Device
}

// Collector accumulates advertisements delivered from radio callbacks, which may
// arrive on any goroutine. One entry is kept per address: the latest report wins,
// while the position stays that of the first sighting.
type Collector struct {
	seq  atomic.Uint64
	seen cmap.ConcurrentMap[string, sighting]
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		seen: cmap.New[sighting](),
	}
}

// Add records a sighting. Devices without an address are ignored.
func (c *Collector) Add(d Device) {
	if d.Address == "" {
		return
	}

	next := sighting{seq: c.seq.Add(1), device: d}
	c.seen.Upsert(d.Address, next, func(exist bool, inMap sighting, incoming sighting) sighting {
		if exist {
			incoming.seq = inMap.seq
		}
		return incoming
	})
}

// Len returns the number of distinct addresses seen.
func (c *Collector) Len() int {
	return c.seen.Count()
}

// Devices returns one Device per address in first-seen order.
func (c *Collector) Devices() []Device {
	items := c.seen.Items()

	sightings := make([]sighting, 0, len(items))
	for _, s := range items {
		sightings = append(sightings, s)
	}
	sort.Slice(sightings, func(i, j int) bool {
		return sightings[i].seq < sightings[j].seq
	})

	devices := make([]Device, len(sightings))
	for i, s := range sightings {
		devices[i] = s.device
	}
	return devices
}

// Reset forgets every sighting.
func (c *Collector) Reset() {
	c.seen.Clear()
}
