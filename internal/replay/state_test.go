package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardsharp/handreplay/internal/handhistory"
)

// testHand builds a two-player hand by hand rather than going through the
// parser, so these tests pin down the fold semantics on their own.
func testHand() *handhistory.HandReplay {
	return &handhistory.HandReplay{
		HandID: "T1",
		Players: []handhistory.PlayerState{
			{Name: "Hero", Seat: 1, Stack: 100, Position: "Button", IsHero: true, HoleCards: []string{"Ah", "Kh"}, CardsVisible: true},
			{Name: "villain", Seat: 2, Stack: 100, Position: "Big Blind"},
		},
		Actions: []handhistory.ActionStep{
			{ActionNumber: 1, Street: handhistory.StreetPreflop, Player: "Hero", Kind: handhistory.ActionPost, Amount: 1, TotalBet: 1, PotBefore: 0, PotAfter: 1},
			{ActionNumber: 2, Street: handhistory.StreetPreflop, Player: "villain", Kind: handhistory.ActionPost, Amount: 2, TotalBet: 2, PotBefore: 1, PotAfter: 3},
			{ActionNumber: 3, Street: handhistory.StreetPreflop, Player: "Hero", Kind: handhistory.ActionRaise, Amount: 5, TotalBet: 6, PotBefore: 3, PotAfter: 8},
			{ActionNumber: 4, Street: handhistory.StreetPreflop, Player: "villain", Kind: handhistory.ActionCall, Amount: 4, TotalBet: 6, PotBefore: 8, PotAfter: 12},
			{ActionNumber: 5, Street: handhistory.StreetFlop, Player: "villain", Kind: handhistory.ActionCheck, BoardCards: []string{"2h", "7d", "Kc"}, PotBefore: 12, PotAfter: 12},
			{ActionNumber: 6, Street: handhistory.StreetFlop, Player: "Hero", Kind: handhistory.ActionBet, Amount: 8, TotalBet: 8, BoardCards: []string{"2h", "7d", "Kc"}, PotBefore: 12, PotAfter: 20},
			{ActionNumber: 7, Street: handhistory.StreetFlop, Player: "villain", Kind: handhistory.ActionFold, BoardCards: []string{"2h", "7d", "Kc"}, PotBefore: 20, PotAfter: 20},
			{ActionNumber: 8, Street: handhistory.StreetFlop, Player: "Hero", Kind: handhistory.ActionReturn, Amount: 8, BoardCards: []string{"2h", "7d", "Kc"}, PotBefore: 20, PotAfter: 12},
			{ActionNumber: 9, Street: handhistory.StreetFlop, Player: "Hero", Kind: handhistory.ActionCollect, Amount: 12, BoardCards: []string{"2h", "7d", "Kc"}, PotBefore: 12, PotAfter: 12},
		},
	}
}

func TestStateAtZero(t *testing.T) {
	hand := testHand()
	state, err := StateAt(hand, 0)
	require.NoError(t, err)

	assert.Equal(t, handhistory.StreetPreflop, state.Street)
	assert.Zero(t, state.Pot)
	assert.Empty(t, state.BoardCards)
	assert.Equal(t, 0, state.ActionIndex)
	assert.Equal(t, 9, state.TotalActions)
	require.NotNil(t, state.CurrentAction)
	assert.Equal(t, 1, state.CurrentAction.ActionNumber)

	require.Len(t, state.Players, 2)
	for _, p := range state.Players {
		assert.InDelta(t, 100.0, p.Stack, 1e-9)
		assert.True(t, p.IsActive)
		assert.Zero(t, p.CurrentBet)
		assert.Zero(t, p.TotalInvested)
	}
}

func TestStateAtOutOfRange(t *testing.T) {
	hand := testHand()

	_, err := StateAt(hand, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = StateAt(hand, len(hand.Actions)+1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = StateAt(hand, len(hand.Actions))
	assert.NoError(t, err)
}

func TestStateAtDeterministic(t *testing.T) {
	hand := testHand()
	for index := 0; index <= len(hand.Actions); index++ {
		first, err := StateAt(hand, index)
		require.NoError(t, err)
		second, err := StateAt(hand, index)
		require.NoError(t, err)
		assert.Equal(t, first, second, "index %d", index)
	}
}

func TestStateAtDoesNotMutateReplay(t *testing.T) {
	hand := testHand()
	_, err := StateAt(hand, len(hand.Actions))
	require.NoError(t, err)

	assert.InDelta(t, 100.0, hand.Players[0].Stack, 1e-9)
	assert.InDelta(t, 100.0, hand.Players[1].Stack, 1e-9)
}

func TestStateAtAppliesWagers(t *testing.T) {
	hand := testHand()

	// After the raise and call, both players have 6 in.
	state, err := StateAt(hand, 4)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, state.Pot, 1e-9)

	hero := findPlayer(t, state, "Hero")
	assert.InDelta(t, 94.0, hero.Stack, 1e-9)
	assert.InDelta(t, 6.0, hero.CurrentBet, 1e-9)
	assert.InDelta(t, 6.0, hero.TotalInvested, 1e-9)

	villain := findPlayer(t, state, "villain")
	assert.InDelta(t, 94.0, villain.Stack, 1e-9)
	assert.InDelta(t, 6.0, villain.CurrentBet, 1e-9)
}

func TestStateAtFoldIsPermanent(t *testing.T) {
	hand := testHand()
	for index := 7; index <= len(hand.Actions); index++ {
		state, err := StateAt(hand, index)
		require.NoError(t, err)
		assert.False(t, findPlayer(t, state, "villain").IsActive, "index %d", index)
	}
}

func TestStateAtCreditsReturnAndCollect(t *testing.T) {
	hand := testHand()
	state, err := StateAt(hand, len(hand.Actions))
	require.NoError(t, err)

	// Hero put in 1+5+8, got back 8+12.
	hero := findPlayer(t, state, "Hero")
	assert.InDelta(t, 100-14+20, hero.Stack, 1e-9)
	assert.Nil(t, state.CurrentAction)
	assert.Equal(t, handhistory.StreetFlop, state.Street)
	assert.Equal(t, []string{"2h", "7d", "Kc"}, state.BoardCards)
}

func TestStateAtStreetTransition(t *testing.T) {
	hand := testHand()

	state, err := StateAt(hand, 4)
	require.NoError(t, err)
	assert.Equal(t, handhistory.StreetPreflop, state.Street)
	assert.Empty(t, state.BoardCards)

	state, err = StateAt(hand, 5)
	require.NoError(t, err)
	assert.Equal(t, handhistory.StreetFlop, state.Street)
	assert.Equal(t, []string{"2h", "7d", "Kc"}, state.BoardCards)
}

func TestStateAtHidesUnrevealedCards(t *testing.T) {
	hand := testHand()
	state, err := StateAt(hand, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ah", "Kh"}, findPlayer(t, state, "Hero").HoleCards)
	assert.Empty(t, findPlayer(t, state, "villain").HoleCards)
}

func TestStateAtCopiesBoardCards(t *testing.T) {
	hand := testHand()
	state, err := StateAt(hand, 5)
	require.NoError(t, err)
	require.Equal(t, []string{"2h", "7d", "Kc"}, state.BoardCards)

	// Mutating the snapshot must not reach back into the replay record.
	state.BoardCards[0] = "Xx"
	assert.Equal(t, []string{"2h", "7d", "Kc"}, hand.Actions[4].BoardCards)

	fresh, err := StateAt(hand, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"2h", "7d", "Kc"}, fresh.BoardCards)
}

func TestCursorMatchesStateAt(t *testing.T) {
	hand := testHand()
	cursor := NewCursor(hand)

	for index := 0; index <= cursor.Len(); index++ {
		fromCursor, err := cursor.Seek(index)
		require.NoError(t, err)
		direct, err := StateAt(hand, index)
		require.NoError(t, err)
		assert.Equal(t, direct, fromCursor, "index %d", index)
	}

	// Second pass hits the cache; results must not drift.
	for index := cursor.Len(); index >= 0; index-- {
		cached, err := cursor.Seek(index)
		require.NoError(t, err)
		direct, err := StateAt(hand, index)
		require.NoError(t, err)
		assert.Equal(t, direct, cached, "cached index %d", index)
	}
}

func TestCursorSteppingClamps(t *testing.T) {
	hand := testHand()
	cursor := NewCursor(hand)

	assert.Equal(t, 0, cursor.Index())
	assert.False(t, cursor.AtEnd())

	_, err := cursor.Prev()
	require.NoError(t, err)
	assert.Equal(t, 0, cursor.Index())

	for i := 0; i < cursor.Len()+5; i++ {
		_, err := cursor.Next()
		require.NoError(t, err)
	}
	assert.Equal(t, cursor.Len(), cursor.Index())
	assert.True(t, cursor.AtEnd())

	_, err = cursor.Prev()
	require.NoError(t, err)
	assert.Equal(t, cursor.Len()-1, cursor.Index())
	assert.False(t, cursor.AtEnd())
}

func TestCursorSeekOutOfRangeKeepsPosition(t *testing.T) {
	hand := testHand()
	cursor := NewCursor(hand)

	_, err := cursor.Seek(3)
	require.NoError(t, err)

	_, err = cursor.Seek(42)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, 3, cursor.Index())
}

func findPlayer(t *testing.T, state GameState, name string) handhistory.PlayerState {
	t.Helper()
	for _, p := range state.Players {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("player %s not in state", name)
	return handhistory.PlayerState{}
}
