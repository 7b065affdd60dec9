package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceLedger_CountsApprovedByStartYear(t *testing.T) {
	f := newFixture(t, "emp-1")
	ctx := context.Background()

	f.seedApproved(t, "lr-1", "emp-1", d(2025, time.January, 6), d(2025, time.January, 10), 5)
	// Starts in 2024, so it counts against 2024 only.
	f.seedApproved(t, "lr-2", "emp-1", d(2024, time.December, 30), d(2025, time.January, 2), 4)

	taken, err := f.svc.ledger.Taken(ctx, "emp-1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 5, taken)

	taken, err = f.svc.ledger.Taken(ctx, "emp-1", 2024)
	require.NoError(t, err)
	assert.Equal(t, 4, taken)
}

func TestBalanceLedger_RemainingNeverNegative(t *testing.T) {
	f := newFixture(t, "emp-1")
	ctx := context.Background()

	f.seedApproved(t, "lr-1", "emp-1", d(2025, time.February, 3), d(2025, time.March, 7), 30)

	left, err := f.svc.ledger.Remaining(ctx, "emp-1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	balance, err := f.svc.GetLeaveBalance(ctx, "emp-1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 25, balance.Taken)
	assert.Equal(t, 0, balance.Remaining)
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 25, remaining(25, 0))
	assert.Equal(t, 5, remaining(25, 20))
	assert.Equal(t, 0, remaining(25, 25))
	assert.Equal(t, 0, remaining(25, 40))
}
