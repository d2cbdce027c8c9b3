package handhistory

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ParseError is the failure signal for a whole-hand parse. Individual
// missing fields never produce one; they default silently. A ParseError
// means the extraction pipeline itself gave up.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse hand: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse hand: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

const timestampLayout = "2006/01/02 15:04:05"

var (
	reWinnerHand = regexp.MustCompile(`Seat \d+: ([^(]+).*?(?:with|showed) \[?([^\]]*)\]?.*?won`)
	reWinnerName = regexp.MustCompile(`Seat \d+: ([^(]+).*?won`)
)

// Parser turns raw hand-history text into HandReplay records.
type Parser struct {
	logger *log.Logger
}

// NewParser creates a parser that logs diagnostics to the given logger.
func NewParser(logger *log.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse parses a single hand with a silent logger. See Parser.Parse.
func Parse(text string) (*HandReplay, error) {
	return NewParser(log.New(io.Discard)).Parse(text)
}

// Parse converts one hand's text into a HandReplay. It never panics
// outward: any internal fault collapses into a *ParseError. Missing fields
// default to zero values, and unrecognized lines are skipped.
func (p *Parser) Parse(text string) (replay *HandReplay, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("hand parse panicked", "panic", r)
			replay = nil
			err = &ParseError{Reason: fmt.Sprintf("internal fault: %v", r)}
		}
	}()

	tokens := lex(text)

	replay = &HandReplay{ButtonSeat: 1}
	if err := p.parseHeader(tokens, replay); err != nil {
		return nil, err
	}
	p.parseRoster(tokens, replay)
	p.parseBoard(tokens, replay)
	p.parseActions(tokens, replay)
	p.parseSummary(tokens, replay)
	p.mergeShowdownReveals(tokens, replay)

	p.logger.Debug("parsed hand",
		"hand", replay.HandID,
		"players", len(replay.Players),
		"actions", len(replay.Actions))
	return replay, nil
}

func (p *Parser) parseHeader(tokens []token, replay *HandReplay) error {
	for _, tok := range tokens {
		switch tok.kind {
		case tokHeader:
			if replay.HandID == "" {
				replay.HandID = tok.handID
			}
			if replay.Stakes == "" && tok.stakes != "" {
				replay.Stakes = tok.stakes
				replay.SmallBlind, replay.BigBlind = parseStakes(tok.stakes)
			}
			if replay.Timestamp.IsZero() && tok.timestamp != "" {
				ts, err := time.Parse(timestampLayout, tok.timestamp)
				if err != nil {
					return &ParseError{Reason: "malformed timestamp", Err: err}
				}
				replay.Timestamp = ts
			}
		case tokTable:
			if replay.TableName == "" {
				replay.TableName = tok.tableName
			}
			if tok.seat > 0 {
				replay.ButtonSeat = tok.seat
			}
		}
	}
	return nil
}

// parseStakes splits a "$X/$Y" label into blind amounts.
func parseStakes(stakes string) (small, big float64) {
	parts := strings.Split(strings.ReplaceAll(stakes, "$", ""), "/")
	if len(parts) == 2 {
		small = atof(parts[0])
		big = atof(parts[1])
	}
	return small, big
}

func (p *Parser) parseRoster(tokens []token, replay *HandReplay) {
	for _, tok := range tokens {
		if tok.kind != tokSeat {
			continue
		}
		replay.Players = append(replay.Players, PlayerState{
			Name:     tok.name,
			Seat:     tok.seat,
			Stack:    tok.stack,
			IsHero:   tok.name == "Hero",
			IsActive: true,
		})
	}

	// Position labels come from the full roster so large tables get real
	// labels instead of collapsing onto a trailing entry.
	labels := Positions(len(replay.Players))
	for i := range replay.Players {
		offset := seatOffset(replay.Players[i].Seat, replay.ButtonSeat, len(replay.Players))
		replay.Players[i].Position = labels[offset]
	}

	for _, tok := range tokens {
		if tok.kind != tokDealt {
			continue
		}
		player := replay.PlayerByName(tok.name)
		if player == nil || len(tok.cards) == 0 {
			continue
		}
		player.HoleCards = tok.cards
		if player.IsHero {
			player.CardsVisible = true
		}
	}
}

func (p *Parser) parseBoard(tokens []token, replay *HandReplay) {
	for _, tok := range tokens {
		if tok.kind != tokStreet {
			continue
		}
		switch tok.street {
		case StreetFlop:
			if len(replay.FlopCards) == 0 && len(tok.cards) > 0 {
				replay.FlopCards = tok.cards
				replay.BoardCards = append(replay.BoardCards, tok.cards...)
			}
		case StreetTurn:
			if replay.TurnCard == "" && len(tok.cards) > 0 {
				replay.TurnCard = tok.cards[0]
				replay.BoardCards = append(replay.BoardCards, tok.cards[0])
			}
		case StreetRiver:
			if replay.RiverCard == "" && len(tok.cards) > 0 {
				replay.RiverCard = tok.cards[0]
				replay.BoardCards = append(replay.BoardCards, tok.cards[0])
			}
		}
	}
}

func (p *Parser) parseActions(tokens []token, replay *HandReplay) {
	street := StreetPreflop
	var potSize float64
	var board []string
	streetBets := make(map[string]float64, len(replay.Players))
	actionNumber := 0

	appendStep := func(step ActionStep) {
		actionNumber++
		step.ActionNumber = actionNumber
		step.Street = street
		step.BoardCards = append([]string(nil), board...)
		replay.Actions = append(replay.Actions, step)
	}

scan:
	for _, tok := range tokens {
		switch tok.kind {
		case tokSummary:
			break scan

		case tokStreet:
			street = tok.street
			switch tok.street {
			case StreetFlop:
				board = append([]string(nil), tok.cards...)
			case StreetTurn, StreetRiver:
				board = append(board, tok.cards...)
			}
			streetBets = make(map[string]float64, len(replay.Players))

		case tokAction:
			player := replay.PlayerByName(tok.name)
			if player == nil {
				p.logger.Debug("action for unknown player", "line", tok.raw)
				continue
			}
			step := ActionStep{Player: tok.name, Seat: player.Seat}
			switch tok.verb {
			case "posts":
				blind := ""
				switch {
				case strings.Contains(tok.raw, "small blind"):
					blind = "small blind"
				case strings.Contains(tok.raw, "big blind"):
					blind = "big blind"
				default:
					continue
				}
				step.Kind = ActionPost
				step.Amount = tok.amount
				streetBets[tok.name] = tok.amount
				potSize += tok.amount
				step.Description = fmt.Sprintf("posts %s $%.2f", blind, tok.amount)
			case "folds":
				step.Kind = ActionFold
				step.Description = "folds"
			case "calls":
				step.Kind = ActionCall
				step.Amount = tok.amount
				streetBets[tok.name] += tok.amount
				potSize += tok.amount
				step.Description = fmt.Sprintf("calls $%.2f", tok.amount)
			case "raises":
				step.Kind = ActionRaise
				step.Amount = tok.amount
				streetBets[tok.name] = tok.toAmount
				potSize += tok.amount
				step.Description = fmt.Sprintf("raises to $%.2f", tok.toAmount)
			case "bets":
				step.Kind = ActionBet
				step.Amount = tok.amount
				streetBets[tok.name] = tok.amount
				potSize += tok.amount
				step.Description = fmt.Sprintf("bets $%.2f", tok.amount)
			case "checks":
				step.Kind = ActionCheck
				step.Description = "checks"
			case "collected":
				// Collects appear after wagering is over; the pot
				// accumulator is final and stays untouched.
				step.Kind = ActionCollect
				step.Amount = tok.amount
				step.Description = fmt.Sprintf("collected $%.2f", tok.amount)
			default:
				continue
			}
			step.TotalBet = streetBets[tok.name]
			step.PotAfter = potSize
			if step.Kind != ActionCollect && step.Amount > 0 {
				step.PotBefore = potSize - step.Amount
			} else {
				step.PotBefore = potSize
			}
			appendStep(step)

		case tokUncalled:
			player := replay.PlayerByName(tok.name)
			if player == nil {
				continue
			}
			potSize -= tok.amount
			appendStep(ActionStep{
				Player:      tok.name,
				Seat:        player.Seat,
				Kind:        ActionReturn,
				Amount:      tok.amount,
				PotBefore:   potSize + tok.amount,
				PotAfter:    potSize,
				Description: fmt.Sprintf("uncalled bet $%.2f returned", tok.amount),
			})
		}
	}
}

func (p *Parser) parseSummary(tokens []token, replay *HandReplay) {
	for _, tok := range tokens {
		switch tok.kind {
		case tokTotalPot:
			if tok.pot > 0 {
				replay.FinalPot = tok.pot
			}
			if tok.rake > 0 {
				replay.Rake = tok.rake
			}
			if tok.jackpot > 0 {
				replay.Jackpot = tok.jackpot
			}
		case tokSeatResult:
			if replay.Winner != "" {
				continue
			}
			if m := reWinnerHand.FindStringSubmatch(tok.raw); m != nil {
				replay.Winner = strings.TrimSpace(m[1])
				replay.WinningHand = strings.TrimSpace(m[2])
			} else if m := reWinnerName.FindStringSubmatch(tok.raw); m != nil {
				replay.Winner = strings.TrimSpace(m[1])
			}
		}
	}
}

// mergeShowdownReveals attaches cards shown at showdown back onto the seat
// records, so revealed opponents stay revealed during replay. The hero's
// cards are already visible from the dealt section.
func (p *Parser) mergeShowdownReveals(tokens []token, replay *HandReplay) {
	for _, tok := range tokens {
		if tok.kind != tokShows {
			continue
		}
		player := replay.PlayerByName(tok.name)
		if player == nil || len(tok.cards) == 0 {
			continue
		}
		player.HoleCards = tok.cards
		player.CardsVisible = true
	}
}

func seatOffset(seat, buttonSeat, count int) int {
	if count <= 0 {
		return 0
	}
	return ((seat-buttonSeat)%count + count) % count
}
