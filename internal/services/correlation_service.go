package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/benmeehan/ble-overlap/internal/constants"
	"github.com/benmeehan/ble-overlap/internal/models"
	"github.com/benmeehan/ble-overlap/internal/utils"
	"github.com/benmeehan/ble-overlap/pkg/ble"
	"github.com/benmeehan/ble-overlap/pkg/distance"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrReadingNotFound means an address in the overlap set has no reading in one of the passes.
var ErrReadingNotFound = errors.New("reading not found for overlapping address")

// CorrelationService runs two scan passes separated by a delay and reports the
// devices seen in both.
type CorrelationService struct {
	interScanDelay   time.Duration
	referencePower   int
	pathLossExponent float64

	scanner ble.Scanner
	logger  zerolog.Logger
}

// NewCorrelationService creates a CorrelationService.
func NewCorrelationService(
	interScanDelay time.Duration,
	referencePower int,
	pathLossExponent float64,
	scanner ble.Scanner,
	logger zerolog.Logger,
) *CorrelationService {
	return &CorrelationService{
		interScanDelay:   interScanDelay,
		referencePower:   referencePower,
		pathLossExponent: pathLossExponent,
		scanner:          scanner,
		logger:           logger,
	}
}

// RunCorrelatedScan performs pass 1, waits, performs pass 2 and correlates them.
// A scanner failure aborts the run and no report is returned.
func (c *CorrelationService) RunCorrelatedScan(ctx context.Context) (*models.OverlapReport, error) {
	c.logger.Info().
		Dur("inter_scan_delay", c.interScanDelay).
		Int("reference_power", c.referencePower).
		Float64("path_loss_exponent", c.pathLossExponent).
		Msg("Starting correlated scan")

	scan1, err := c.scanPass(ctx, constants.FirstPass)
	if err != nil {
		return nil, err
	}

	c.logger.Info().Dur("delay", c.interScanDelay).Msg("Waiting before second scan")
	c.wait()

	scan2, err := c.scanPass(ctx, constants.SecondPass)
	if err != nil {
		return nil, err
	}

	overlaps, err := Correlate(scan1, scan2)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to correlate scans")
		return nil, err
	}

	report := &models.OverlapReport{
		ID:             uuid.NewString(),
		InterScanDelay: c.interScanDelay,
		Scan1:          scan1,
		Scan2:          scan2,
		Overlaps:       overlaps,
	}

	if len(overlaps) == 0 {
		c.logger.Info().Msg("No overlapping devices found between scans")
	} else {
		c.logger.Info().
			Int("overlaps", len(overlaps)).
			Strs("addresses", report.OverlapAddresses()).
			Msg("Devices found in both scans")
	}

	return report, nil
}

// scanPass runs the scanner once and turns its devices into a ScanResult.
func (c *CorrelationService) scanPass(ctx context.Context, pass int) (models.ScanResult, error) {
	c.logger.Info().Int("pass", pass).Msg("Scanning for BLE devices")

	startedAt := time.Now()
	devices, err := c.scanner.Discover(ctx)
	if err != nil {
		c.logger.Error().Err(err).Int("pass", pass).Msg("BLE scan failed")
		return models.ScanResult{}, fmt.Errorf("scan pass %d: %w", pass, err)
	}

	result := BuildScanResult(devices, c.referencePower, c.pathLossExponent)
	result.Pass = pass
	result.StartedAt = startedAt
	result.CompletedAt = time.Now()

	if result.Len() == 0 {
		c.logger.Info().Int("pass", pass).Msg("No devices found")
		return result, nil
	}

	c.logger.Info().Int("pass", pass).Int("devices", result.Len()).Msg("Scan pass completed")
	for _, r := range result.Readings {
		c.logger.Debug().
			Int("pass", pass).
			Str("address", r.Address).
			Str("name", r.DisplayName).
			Int("rssi", r.RSSI).
			Float64("estimated_distance", r.EstimatedDistance).
			Msg("Device reading")
	}

	return result, nil
}

// wait blocks on a timer for the inter-scan delay. The delay is not cancellable;
// pass 2 starts only once it has fully elapsed.
func (c *CorrelationService) wait() {
	if c.interScanDelay <= 0 {
		return
	}

	timer := time.NewTimer(c.interScanDelay)
	defer timer.Stop()
	<-timer.C
}

// BuildScanResult estimates the distance of every device and returns the readings
// sorted by ascending distance. Repeated addresses keep the last reported values at
// the position of their first appearance; equal distances keep discovery order.
func BuildScanResult(devices []ble.Device, referencePower int, pathLossExponent float64) models.ScanResult {
	index := make(map[string]int, len(devices))
	readings := make([]models.DeviceReading, 0, len(devices))

	for _, d := range devices {
		name := d.Name
		if name == "" {
			name = constants.UnknownDeviceName
		}

		reading := models.DeviceReading{
			Address:           d.Address,
			DisplayName:       name,
			RSSI:              d.RSSI,
			EstimatedDistance: distance.EstimateDistance(d.RSSI, referencePower, pathLossExponent),
		}

		if i, seen := index[d.Address]; seen {
			readings[i] = reading
			continue
		}
		index[d.Address] = len(readings)
		readings = append(readings, reading)
	}

	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].EstimatedDistance < readings[j].EstimatedDistance
	})

	return models.ScanResult{Readings: readings}
}

// Correlate pairs the readings of every address present in both scans, in scan1 order.
func Correlate(scan1, scan2 models.ScanResult) ([]models.OverlapRecord, error) {
	addresses := utils.Intersect(scan1.Addresses(), scan2.Addresses())

	overlaps := make([]models.OverlapRecord, 0, len(addresses))
	for _, address := range addresses {
		first, ok := scan1.Lookup(address)
		if !ok {
			return nil, fmt.Errorf("%w: %s in scan 1", ErrReadingNotFound, address)
		}
		second, ok := scan2.Lookup(address)
		if !ok {
			return nil, fmt.Errorf("%w: %s in scan 2", ErrReadingNotFound, address)
		}

		overlaps = append(overlaps, models.OverlapRecord{
			Address: address,
			Scan1:   first,
			Scan2:   second,
		})
	}

	return overlaps, nil
}
