package mocks

import (
	"context"

	"github.com/benmeehan/ble-overlap/pkg/ble"
	"github.com/stretchr/testify/mock"
)

// MockScanner is a mock implementation of the ble.Scanner interface
type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) Discover(ctx context.Context) ([]ble.Device, error) {
	args := m.Called(ctx)
	devices, _ := args.Get(0).([]ble.Device)
	return devices, args.Error(1)
}

func (m *MockScanner) Close() error {
	args := m.Called()
	return args.Error(0)
}
