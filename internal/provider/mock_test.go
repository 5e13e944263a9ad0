package provider

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockProvider struct {
	mock.Mock
	name string
}

func (m *MockProvider) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

func (m *MockProvider) FetchRates(ctx context.Context, base string) (RateQuote, error) {
	args := m.Called(ctx, base)
	return args.Get(0).(RateQuote), args.Error(1)
}
