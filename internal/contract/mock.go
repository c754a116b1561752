package contract

import (
	"context"

	"github.com/averykuo/ghpulse/schema"
	"github.com/stretchr/testify/mock"
)

// MockAnalyticsClient is a testify mock of AnalyticsClient for tests.
type MockAnalyticsClient struct {
	mock.Mock
}

var _ AnalyticsClient = &MockAnalyticsClient{} // Compile-time check

// FetchSnapshots implements the AnalyticsClient interface.
func (m *MockAnalyticsClient) FetchSnapshots(ctx context.Context, start, end schema.CalDate) ([]schema.Snapshot, error) {
	ret := m.Called(ctx, start, end)
	snaps, _ := ret.Get(0).([]schema.Snapshot)
	return snaps, ret.Error(1)
}

// FetchProfile implements the AnalyticsClient interface.
func (m *MockAnalyticsClient) FetchProfile(ctx context.Context) (schema.Profile, error) {
	ret := m.Called(ctx)
	profile, _ := ret.Get(0).(schema.Profile)
	return profile, ret.Error(1)
}

// ExportRange implements the AnalyticsClient interface.
func (m *MockAnalyticsClient) ExportRange(ctx context.Context, format schema.ExportFormat, start, end schema.CalDate) ([]byte, error) {
	ret := m.Called(ctx, format, start, end)
	payload, _ := ret.Get(0).([]byte)
	return payload, ret.Error(1)
}

// MockRenderer is a testify mock of Renderer for tests.
type MockRenderer struct {
	mock.Mock
}

var _ Renderer = &MockRenderer{} // Compile-time check

// RenderSeries implements the Renderer interface.
func (m *MockRenderer) RenderSeries(series schema.ChartSeries, kind schema.ChartKind) (RenderHandle, error) {
	ret := m.Called(series, kind)
	handle, _ := ret.Get(0).(RenderHandle)
	return handle, ret.Error(1)
}
