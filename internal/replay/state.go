// Package replay reconstructs table state at any point along a parsed
// hand's action timeline. Reconstruction is a pure fold over the action
// list: no caching, no shared state, safe to call from any goroutine.
package replay

import (
	"errors"
	"fmt"

	"github.com/cardsharp/handreplay/internal/handhistory"
)

// ErrIndexOutOfRange is returned for indexes outside [0, len(actions)].
// Clamping is the caller's job, not this package's.
var ErrIndexOutOfRange = errors.New("action index out of range")

// GameState is a derived snapshot of the table after the first index
// actions have been applied. It has no lifecycle of its own: it is
// recomputed on demand and discarded when the index changes.
type GameState struct {
	Players       []handhistory.PlayerState `json:"players"`
	Pot           float64                   `json:"pot"`
	Street        handhistory.Street        `json:"street"`
	BoardCards    []string                  `json:"boardCards,omitempty"`
	CurrentAction *handhistory.ActionStep   `json:"currentAction,omitempty"`
	ActionIndex   int                       `json:"actionIndex"`
	TotalActions  int                       `json:"totalActions"`
}

// StateAt folds replay.Actions[0:index) over fresh copies of the seat
// records and returns the resulting snapshot. The replay itself is never
// mutated. Two calls with the same arguments always return equal states.
func StateAt(replay *handhistory.HandReplay, index int) (GameState, error) {
	if index < 0 || index > len(replay.Actions) {
		return GameState{}, fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, index, len(replay.Actions))
	}

	players := make([]handhistory.PlayerState, len(replay.Players))
	byName := make(map[string]*handhistory.PlayerState, len(replay.Players))
	for i, p := range replay.Players {
		players[i] = handhistory.PlayerState{
			Name:         p.Name,
			Seat:         p.Seat,
			Stack:        p.Stack,
			Position:     p.Position,
			IsHero:       p.IsHero,
			IsActive:     true,
			CardsVisible: p.CardsVisible,
		}
		if p.CardsVisible {
			players[i].HoleCards = append([]string(nil), p.HoleCards...)
		}
		byName[p.Name] = &players[i]
	}

	state := GameState{
		Street:       handhistory.StreetPreflop,
		ActionIndex:  index,
		TotalActions: len(replay.Actions),
	}

	for i := 0; i < index; i++ {
		action := replay.Actions[i]
		state.Street = action.Street
		state.BoardCards = append([]string(nil), action.BoardCards...)
		state.Pot = action.PotAfter

		player, ok := byName[action.Player]
		if !ok {
			continue
		}
		switch action.Kind {
		case handhistory.ActionFold:
			player.IsActive = false
		case handhistory.ActionCall, handhistory.ActionBet, handhistory.ActionRaise, handhistory.ActionPost:
			player.Stack -= action.Amount
			player.CurrentBet = action.TotalBet
			player.TotalInvested += action.Amount
		case handhistory.ActionCollect, handhistory.ActionReturn:
			player.Stack += action.Amount
		}
	}

	state.Players = players
	if index < len(replay.Actions) {
		next := replay.Actions[index]
		state.CurrentAction = &next
	}
	return state, nil
}
