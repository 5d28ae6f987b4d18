package services

import (
	"context"
	"fmt"
	"time"

	"github.com/benmeehan/ble-overlap/internal/constants"
	"github.com/benmeehan/ble-overlap/internal/models"
	"github.com/benmeehan/ble-overlap/pkg/identity"
	"github.com/benmeehan/ble-overlap/pkg/location"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/host"
)

// HostInfoFunc returns information about the host the station runs on.
type HostInfoFunc func(ctx context.Context) (*host.InfoStat, error)

// StationService describes the scanning station for inclusion in reports.
type StationService struct {
	identity         identity.StationIdentityInterface
	locationProvider location.Provider // nil when no GPS is attached
	locationTimeout  time.Duration
	hostInfo         HostInfoFunc
	logger           zerolog.Logger
}

// NewStationService creates a StationService. locationProvider may be nil.
func NewStationService(stationIdentity identity.StationIdentityInterface, locationProvider location.Provider,
	logger zerolog.Logger) *StationService {
	return &StationService{
		identity:         stationIdentity,
		locationProvider: locationProvider,
		locationTimeout:  constants.DefaultFixTimeout,
		hostInfo:         host.InfoWithContext,
		logger:           logger,
	}
}

// WithHostInfo replaces the host information source.
func (s *StationService) WithHostInfo(fn HostInfoFunc) *StationService {
	s.hostInfo = fn
	return s
}

// WithLocationTimeout bounds how long Describe waits for a GPS fix.
func (s *StationService) WithLocationTimeout(timeout time.Duration) *StationService {
	s.locationTimeout = timeout
	return s
}

// Describe returns the station metadata. Host and GPS lookups are best effort:
// failures are logged and the corresponding fields are left empty.
func (s *StationService) Describe(ctx context.Context) *models.Station {
	id := s.identity.GetIdentity()
	station := &models.Station{
		ID:   id.ID,
		Name: id.Name,
	}

	if info, err := s.hostInfo(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read host information")
	} else {
		station.Hostname = info.Hostname
		station.Platform = fmt.Sprintf("%s/%s %s", info.OS, info.KernelArch, info.PlatformVersion)
	}

	if s.locationProvider != nil {
		fix, err := s.locationFix(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to get station location")
		} else {
			station.Location = &models.StationLocation{
				Latitude:  fix.Latitude,
				Longitude: fix.Longitude,
				Accuracy:  fix.Accuracy,
			}
		}
	}

	s.logger.Debug().
		Str("station_id", station.ID).
		Str("hostname", station.Hostname).
		Bool("has_location", station.Location != nil).
		Msg("Station described")
	return station
}

// locationFix asks the provider for a fix, giving up after locationTimeout. A receiver
// without satellite lock keeps sending sentences and never yields a fix on its own.
func (s *StationService) locationFix(ctx context.Context) (location.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, s.locationTimeout)
	defer cancel()

	return s.locationProvider.GetLocation(ctx)
}
