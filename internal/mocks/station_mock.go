package mocks

import (
	"context"

	"github.com/benmeehan/ble-overlap/pkg/identity"
	"github.com/benmeehan/ble-overlap/pkg/location"
	"github.com/stretchr/testify/mock"
)

// MockStationIdentity is a mock implementation of the StationIdentityInterface
type MockStationIdentity struct {
	mock.Mock
}

func (m *MockStationIdentity) Load() error {
	return m.Called().Error(0)
}

func (m *MockStationIdentity) GetStationID() string {
	return m.Called().String(0)
}

func (m *MockStationIdentity) GetIdentity() *identity.Identity {
	return m.Called().Get(0).(*identity.Identity)
}

// MockLocationProvider is a mock implementation of the location.Provider interface
type MockLocationProvider struct {
	mock.Mock
}

func (m *MockLocationProvider) GetLocation(ctx context.Context) (location.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).(location.Location), args.Error(1)
}
