package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeadsUpTable(t *testing.T, seed int64, sb, bb, stack int) *Table {
	t.Helper()
	seats := []*Seat{
		NewSeat(0, "A", false, Conservative, stack),
		NewSeat(1, "B", false, Aggressive, stack),
	}
	table := NewTable(seats, sb, bb, rand.New(rand.NewSource(seed)), NewEventLog())
	require.NoError(t, table.StartHand())
	return table
}

func newSixMaxTable(t *testing.T, seed int64, sb, bb, stack int) *Table {
	t.Helper()
	seats := make([]*Seat, 6)
	for i := range seats {
		seats[i] = NewSeat(i, string(rune('A'+i)), false, Conservative, stack)
	}
	table := NewTable(seats, sb, bb, rand.New(rand.NewSource(seed)), NewEventLog())
	require.NoError(t, table.StartHand())
	return table
}

func totalStacks(t *Table) int {
	total := 0
	for _, s := range t.Seats {
		total += s.Stack
	}
	return total
}

func TestStartHandPostsBlindsHeadsUp(t *testing.T) {
	table := newHeadsUpTable(t, 1, 5, 10, 1000)

	// heads-up: dealer (seat 0) posts SB and acts first preflop.
	assert.Equal(t, 5, table.Seats[0].CurrentBet)
	assert.Equal(t, 10, table.Seats[1].CurrentBet)
	assert.Equal(t, 10, table.CurrentBet)
	require.NotNil(t, table.CurrentPlayer)
	assert.Equal(t, 0, *table.CurrentPlayer)
}

func TestBigBlindOptionPreflop(t *testing.T) {
	table := newHeadsUpTable(t, 2, 5, 10, 1000)

	// Seat 0 (SB/dealer) calls to match the BB.
	require.NoError(t, table.ApplyAction(0, Call, 0))
	// Betting is not complete yet: BB has not acted since no raise occurred.
	assert.False(t, table.IsBettingRoundComplete())
	require.NotNil(t, table.CurrentPlayer)
	assert.Equal(t, 1, *table.CurrentPlayer)

	require.NoError(t, table.ApplyAction(1, Check, 0))
	assert.True(t, table.IsBettingRoundComplete())
}

func TestChipConservationAfterFoldWin(t *testing.T) {
	table := newHeadsUpTable(t, 3, 5, 10, 1000)
	startTotal := totalStacks(table) + Total(table.Seats)

	require.NoError(t, table.ApplyAction(0, Fold, 0))
	results, err := table.Resolve()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].SeatID)

	assert.Equal(t, startTotal, totalStacks(table))
}

func TestNoReopenOnShortAllIn(t *testing.T) {
	table := newSixMaxTable(t, 4, 5, 10, 1000)
	// Seat 5 acts after the earlier positions; shrink its stack so its
	// eventual all-in is below a full raise increment.
	table.Seats[5].Stack = 4

	// Dealer=0, SB=1, BB=2, first to act is seat 3 (UTG); everyone before
	// seat 5 just calls the big blind.
	for table.CurrentPlayer != nil && table.Seats[*table.CurrentPlayer].ID != 5 {
		seat := table.Seats[*table.CurrentPlayer]
		require.NoError(t, table.ApplyAction(seat.ID, Call, 0))
	}
	require.NotNil(t, table.CurrentPlayer)
	require.Equal(t, 5, table.Seats[*table.CurrentPlayer].ID)

	prevBet := table.CurrentBet
	require.NoError(t, table.ApplyAction(5, AllIn, 0))
	// Short all-in must not raise the table's current bet.
	assert.Equal(t, prevBet, table.CurrentBet)
	assert.True(t, table.Seats[5].AllIn)
}

func TestShortAllInAboveCurrentBetForcesCallOrFold(t *testing.T) {
	seats := []*Seat{
		NewSeat(0, "A", false, Conservative, 1000),
		NewSeat(1, "B", false, Aggressive, 45),
	}
	table := NewTable(seats, 5, 10, rand.New(rand.NewSource(9)), NewEventLog())
	require.NoError(t, table.StartHand())

	// Seat 0 (dealer/SB) opens to 30.
	require.NoError(t, table.ApplyAction(0, Raise, 30))
	require.NotNil(t, table.CurrentPlayer)
	require.Equal(t, 1, table.Seats[*table.CurrentPlayer].ID)

	// Seat 1 shoves for 45 total, above the 30 current bet but short of
	// the 50 a full raise would require, so it doesn't reopen action.
	require.NoError(t, table.ApplyAction(1, AllIn, 0))
	assert.Equal(t, 45, table.CurrentBet)
	assert.True(t, table.Seats[1].AllIn)

	require.NotNil(t, table.CurrentPlayer)
	require.Equal(t, 0, table.Seats[*table.CurrentPlayer].ID)

	legal := table.LegalActions(*table.CurrentPlayer)
	var hasCheck bool
	var callAmount int
	for _, la := range legal {
		if la.Action == Check {
			hasCheck = true
		}
		if la.Action == Call {
			callAmount = la.MinAmount
		}
	}
	assert.False(t, hasCheck, "seat 0 must not be offered a free check after a short all-in raised current_bet")
	assert.Equal(t, 15, callAmount)
}

func TestRaiseReopensAction(t *testing.T) {
	table := newHeadsUpTable(t, 5, 5, 10, 1000)
	require.NoError(t, table.ApplyAction(0, Raise, 40))
	assert.Equal(t, 40, table.CurrentBet)
	assert.False(t, table.Seats[1].HasActed)
}

func TestSidePotConstructionThreeWayAllIn(t *testing.T) {
	seats := []*Seat{
		NewSeat(0, "Short", false, Conservative, 50),
		NewSeat(1, "Mid", false, Conservative, 150),
		NewSeat(2, "Big", false, Conservative, 500),
	}
	table := NewTable(seats, 5, 10, rand.New(rand.NewSource(6)), NewEventLog())
	require.NoError(t, table.StartHand())

	// Drive all three seats all-in preflop regardless of blinds already posted.
	for table.CurrentPlayer != nil {
		seat := table.Seats[*table.CurrentPlayer]
		require.NoError(t, table.ApplyAction(seat.ID, AllIn, 0))
	}

	pots := BuildSidePots(table.seatsFromLeftOfDealer())
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	assert.Equal(t, Total(table.Seats), total)
}

func TestLegalActionsRejectsOutOfTurn(t *testing.T) {
	table := newHeadsUpTable(t, 7, 5, 10, 1000)
	err := table.ApplyAction(1, Call, 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestLegalActionsRejectsBadRaiseAmount(t *testing.T) {
	table := newHeadsUpTable(t, 8, 5, 10, 1000)
	err := table.ApplyAction(0, Raise, 12) // below min raise increment
	assert.ErrorIs(t, err, ErrBadAmount)
}
