package factory

import (
	"time"

	"github.com/fourstack/dropfour/internal/analytics"
	"github.com/fourstack/dropfour/internal/dependencies/mocks"
	"github.com/fourstack/dropfour/internal/services/ai"
	"github.com/fourstack/dropfour/internal/services/session"
	"github.com/fourstack/dropfour/internal/storage/memory"
	"github.com/fourstack/dropfour/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The AI plays at a shallow depth to keep tests fast.
func NewTestApp() *TestApp {
	archive := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		session.DefaultConfig(),
		archive,
		analytics.NewNop(),
		ai.NewMinimaxStrategy(2),
		mockClock,
		mockRandom,
		testutil.NopLogger(),
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
