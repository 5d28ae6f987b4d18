package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benmeehan/ble-overlap/internal/mocks"
	"github.com/benmeehan/ble-overlap/internal/models"
	"github.com/benmeehan/ble-overlap/internal/services"
	"github.com/benmeehan/ble-overlap/pkg/identity"
	"github.com/benmeehan/ble-overlap/pkg/location"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fakeHost(ctx context.Context) (*host.InfoStat, error) {
	return &host.InfoStat{Hostname: "pi-lobby", OS: "linux", KernelArch: "aarch64", PlatformVersion: "12"}, nil
}

func TestStationService_Describe_WithLocation(t *testing.T) {
	mockIdentity := new(mocks.MockStationIdentity)
	mockIdentity.On("GetIdentity").Return(&identity.Identity{ID: "station-1", Name: "lobby"})

	mockLocation := new(mocks.MockLocationProvider)
	mockLocation.On("GetLocation", mock.Anything).Return(location.Location{Latitude: 48.1, Longitude: 11.5, Accuracy: 0.9}, nil)

	s := services.NewStationService(mockIdentity, mockLocation, zerolog.Nop()).WithHostInfo(fakeHost)

	station := s.Describe(context.Background())

	require.NotNil(t, station)
	assert.Equal(t, "station-1", station.ID)
	assert.Equal(t, "lobby", station.Name)
	assert.Equal(t, "pi-lobby", station.Hostname)
	assert.Equal(t, "linux/aarch64 12", station.Platform)
	assert.Equal(t, &models.StationLocation{Latitude: 48.1, Longitude: 11.5, Accuracy: 0.9}, station.Location)
	mockLocation.AssertExpectations(t)
}

func TestStationService_Describe_BestEffort(t *testing.T) {
	mockIdentity := new(mocks.MockStationIdentity)
	mockIdentity.On("GetIdentity").Return(&identity.Identity{ID: "station-1"})

	mockLocation := new(mocks.MockLocationProvider)
	mockLocation.On("GetLocation", mock.Anything).Return(location.Location{}, location.ErrNoFix)

	failingHost := func(ctx context.Context) (*host.InfoStat, error) {
		return nil, errors.New("not implemented yet")
	}
	s := services.NewStationService(mockIdentity, mockLocation, zerolog.Nop()).WithHostInfo(failingHost)

	station := s.Describe(context.Background())

	assert.Equal(t, "station-1", station.ID)
	assert.Empty(t, station.Hostname)
	assert.Nil(t, station.Location)
}

func TestStationService_Describe_WithoutGPS(t *testing.T) {
	mockIdentity := new(mocks.MockStationIdentity)
	mockIdentity.On("GetIdentity").Return(&identity.Identity{ID: "station-1"})

	s := services.NewStationService(mockIdentity, nil, zerolog.Nop()).WithHostInfo(fakeHost)

	station := s.Describe(context.Background())

	assert.Equal(t, "pi-lobby", station.Hostname)
	assert.Nil(t, station.Location)
}

func TestStationService_Describe_GivesUpWaitingForFix(t *testing.T) {
	mockIdentity := new(mocks.MockStationIdentity)
	mockIdentity.On("GetIdentity").Return(&identity.Identity{ID: "station-1"})

	// A receiver without satellite lock: the provider only returns when its context ends.
	mockLocation := new(mocks.MockLocationProvider)
	mockLocation.On("GetLocation", mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			<-ctx.Done()
		}).
		Return(location.Location{}, context.DeadlineExceeded)

	s := services.NewStationService(mockIdentity, mockLocation, zerolog.Nop()).
		WithHostInfo(fakeHost).
		WithLocationTimeout(20 * time.Millisecond)

	described := make(chan *models.Station, 1)
	go func() { described <- s.Describe(context.Background()) }()

	select {
	case station := <-described:
		assert.Equal(t, "station-1", station.ID)
		assert.Equal(t, "pi-lobby", station.Hostname)
		assert.Nil(t, station.Location)
	case <-time.After(2 * time.Second):
		t.Fatal("Describe kept waiting for a GPS fix")
	}
	mockLocation.AssertExpectations(t)
}
