// Package handhistory parses poker-room hand history text into structured
// replay records. Parsing is a one-shot pure transform: the same text always
// yields the same HandReplay, and nothing is cached between calls.
package handhistory

import "time"

// Street identifies a betting phase within a hand.
type Street string

const (
	StreetPreflop  Street = "preflop"
	StreetFlop     Street = "flop"
	StreetTurn     Street = "turn"
	StreetRiver    Street = "river"
	StreetShowdown Street = "showdown"
)

// ActionKind classifies a single parsed event.
//
// Post, bet, call and raise feed the running pot. Return shrinks it (chips
// handed back to an uncalled bettor). Collect is a post-award bookkeeping
// event: by the time collects appear in a log the wagering is over and the
// pot accumulator is final, so collects carry their amount without moving
// PotBefore/PotAfter.
type ActionKind string

const (
	ActionFold    ActionKind = "fold"
	ActionCall    ActionKind = "call"
	ActionRaise   ActionKind = "raise"
	ActionBet     ActionKind = "bet"
	ActionCheck   ActionKind = "check"
	ActionPost    ActionKind = "post"
	ActionCollect ActionKind = "collect"
	ActionReturn  ActionKind = "return"
)

// PlayerState captures one seat at the start of a hand. The parser creates
// these once per hand; replay mutates copies only, never the originals.
type PlayerState struct {
	Name          string   `json:"name"`
	Seat          int      `json:"seat"`
	Stack         float64  `json:"stack"`
	Position      string   `json:"position"`
	HoleCards     []string `json:"holeCards,omitempty"`
	IsHero        bool     `json:"isHero"`
	IsActive      bool     `json:"isActive"`
	IsAllIn       bool     `json:"isAllIn"`
	CurrentBet    float64  `json:"currentBet"`
	TotalInvested float64  `json:"totalInvested"`
	CardsVisible  bool     `json:"cardsVisible"`
}

// ActionStep is one event on the hand's timeline. ActionNumber starts at 1
// and increases by exactly one per step with no gaps.
type ActionStep struct {
	ActionNumber int        `json:"actionNumber"`
	Street       Street     `json:"street"`
	Player       string     `json:"player"`
	Seat         int        `json:"seat"`
	Kind         ActionKind `json:"kind"`
	Amount       float64    `json:"amount"`
	TotalBet     float64    `json:"totalBet"`
	PotBefore    float64    `json:"potBefore"`
	PotAfter     float64    `json:"potAfter"`
	Description  string     `json:"description"`
	BoardCards   []string   `json:"boardCards,omitempty"`
}

// HandReplay is the immutable result of parsing one hand.
type HandReplay struct {
	HandID      string        `json:"handId"`
	Timestamp   time.Time     `json:"timestamp"`
	TableName   string        `json:"tableName"`
	Stakes      string        `json:"stakes"`
	SmallBlind  float64       `json:"smallBlind"`
	BigBlind    float64       `json:"bigBlind"`
	ButtonSeat  int           `json:"buttonSeat"`
	Players     []PlayerState `json:"players"`
	Actions     []ActionStep  `json:"actions"`
	FinalPot    float64       `json:"finalPot"`
	Rake        float64       `json:"rake"`
	Jackpot     float64       `json:"jackpot"`
	Winner      string        `json:"winner"`
	WinningHand string        `json:"winningHand"`
	BoardCards  []string      `json:"boardCards,omitempty"`
	FlopCards   []string      `json:"flopCards,omitempty"`
	TurnCard    string        `json:"turnCard,omitempty"`
	RiverCard   string        `json:"riverCard,omitempty"`
}

// PlayerByName returns the seat record for the named player, or nil.
func (h *HandReplay) PlayerByName(name string) *PlayerState {
	for i := range h.Players {
		if h.Players[i].Name == name {
			return &h.Players[i]
		}
	}
	return nil
}

// Hero returns the hero's seat record, or nil if the hand has no hero.
func (h *HandReplay) Hero() *PlayerState {
	for i := range h.Players {
		if h.Players[i].IsHero {
			return &h.Players[i]
		}
	}
	return nil
}

// HeroProfit reports the hero's net result: chips collected minus chips
// put in across all of the hero's wagering actions.
func (h *HandReplay) HeroProfit() float64 {
	hero := h.Hero()
	if hero == nil {
		return 0
	}
	var invested, collected float64
	for _, a := range h.Actions {
		if a.Player != hero.Name {
			continue
		}
		switch a.Kind {
		case ActionCall, ActionRaise, ActionBet, ActionPost:
			invested += a.Amount
		case ActionCollect, ActionReturn:
			collected += a.Amount
		}
	}
	return collected - invested
}
