package handhistory

import (
	"regexp"
	"strconv"
	"strings"
)

// tokenKind is the fixed vocabulary the lexer reduces every line to.
type tokenKind int

const (
	tokIgnored tokenKind = iota
	tokHeader            // "Poker Hand #..." opener with stakes and timestamp
	tokTable             // table name and button seat
	tokSeat              // roster line with starting stack
	tokDealt             // hole cards dealt to a named player
	tokStreet            // FLOP/TURN/RIVER/SHOWDOWN marker
	tokAction            // "<name>: <verb> ..." body line
	tokUncalled          // uncalled bet returned
	tokShows             // showdown reveal
	tokSummary           // "*** SUMMARY ***" terminator
	tokTotalPot          // pot/rake/jackpot totals
	tokSeatResult        // summary seat line
)

// token is one lexed line. Only the fields relevant to its kind are set;
// raw always carries the trimmed source line for the grammar pass.
type token struct {
	kind      tokenKind
	raw       string
	handID    string
	stakes    string
	timestamp string
	tableName string
	seat      int
	name      string
	verb      string
	amount    float64
	toAmount  float64
	stack     float64
	street    Street
	firstRun  bool
	cards     []string
	pot       float64
	rake      float64
	jackpot   float64
}

var (
	reHandID    = regexp.MustCompile(`Poker Hand #([A-Z0-9-]+)`)
	reStakes    = regexp.MustCompile(`\((\$[\d.]+)/(\$[\d.]+)\)`)
	reTimestamp = regexp.MustCompile(`(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})`)
	reTable     = regexp.MustCompile(`Table '([^']+)'`)
	reButton    = regexp.MustCompile(`Seat #(\d+) is the button`)
	reSeatLine  = regexp.MustCompile(`^Seat (\d+): ([^(]+) \(\$([\d.]+) in chips\)`)
	reDealt     = regexp.MustCompile(`^Dealt to ([^\[]+)\s*\[([^\]]*)\]`)

	reFlop     = regexp.MustCompile(`(?i)^\*\*\* (FIRST )?FLOP \*\*\*\s*\[([^\]]+)\]`)
	reTurn     = regexp.MustCompile(`(?i)^\*\*\* (FIRST )?TURN \*\*\*\s*\[[^\]]+\]\s*\[([^\]]+)\]`)
	reRiver    = regexp.MustCompile(`(?i)^\*\*\* (FIRST )?RIVER \*\*\*\s*\[[^\]]+\]\s*\[([^\]]+)\]`)
	reShowdown = regexp.MustCompile(`(?i)^\*\*\* SHOWDOWN \*\*\*`)
	reSummary  = regexp.MustCompile(`(?i)^\*\*\* SUMMARY \*\*\*`)

	reAction   = regexp.MustCompile(`^([^:]+): (folds|calls|raises|bets|checks|posts|collected)\b(.*)$`)
	reAmount   = regexp.MustCompile(`\$([\d.]+)`)
	reRaiseTo  = regexp.MustCompile(`raises \$([\d.]+) to \$([\d.]+)`)
	reUncalled = regexp.MustCompile(`^Uncalled bet \$([\d.]+) returned to ([^$]+)`)
	reShows    = regexp.MustCompile(`^([^:]+): shows \[([^\]]+)\]`)

	reTotalPot = regexp.MustCompile(`Total pot \$([\d.]+)`)
	reRake     = regexp.MustCompile(`Rake \$([\d.]+)`)
	reJackpot  = regexp.MustCompile(`Jackpot \$([\d.]+)`)

	reSeatWon = regexp.MustCompile(`^Seat \d+:.*won`)
)

// lex splits raw hand text into one token per line. A line that matches no
// pattern lexes to tokIgnored rather than failing; the grammar pass skips
// those silently.
func lex(text string) []token {
	lines := strings.Split(text, "\n")
	tokens := make([]token, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tokens = append(tokens, lexLine(line))
	}
	return tokens
}

func lexLine(line string) token {
	tok := token{kind: tokIgnored, raw: line}

	if m := reHandID.FindStringSubmatch(line); m != nil {
		tok.kind = tokHeader
		tok.handID = m[1]
		if sm := reStakes.FindStringSubmatch(line); sm != nil {
			tok.stakes = sm[1] + "/" + sm[2]
		}
		if tm := reTimestamp.FindStringSubmatch(line); tm != nil {
			tok.timestamp = tm[1]
		}
		return tok
	}

	if m := reTable.FindStringSubmatch(line); m != nil {
		tok.kind = tokTable
		tok.tableName = m[1]
		if bm := reButton.FindStringSubmatch(line); bm != nil {
			tok.seat = atoi(bm[1])
		}
		return tok
	}
	if m := reButton.FindStringSubmatch(line); m != nil {
		// Button marker on its own line, without a table name.
		tok.kind = tokTable
		tok.seat = atoi(m[1])
		return tok
	}

	if m := reSeatWon.FindStringSubmatch(line); m != nil && strings.Contains(line, "$") {
		tok.kind = tokSeatResult
		return tok
	}

	if m := reSeatLine.FindStringSubmatch(line); m != nil {
		tok.kind = tokSeat
		tok.seat = atoi(m[1])
		tok.name = strings.TrimSpace(m[2])
		tok.stack = atof(m[3])
		return tok
	}

	if m := reDealt.FindStringSubmatch(line); m != nil {
		tok.kind = tokDealt
		tok.name = strings.TrimSpace(m[1])
		tok.cards = splitCards(m[2])
		return tok
	}

	if m := reFlop.FindStringSubmatch(line); m != nil {
		tok.kind = tokStreet
		tok.street = StreetFlop
		tok.firstRun = m[1] != ""
		tok.cards = splitCards(m[2])
		return tok
	}
	if m := reTurn.FindStringSubmatch(line); m != nil {
		tok.kind = tokStreet
		tok.street = StreetTurn
		tok.firstRun = m[1] != ""
		tok.cards = splitCards(m[2])
		return tok
	}
	if m := reRiver.FindStringSubmatch(line); m != nil {
		tok.kind = tokStreet
		tok.street = StreetRiver
		tok.firstRun = m[1] != ""
		tok.cards = splitCards(m[2])
		return tok
	}
	if reShowdown.MatchString(line) {
		tok.kind = tokStreet
		tok.street = StreetShowdown
		return tok
	}
	if reSummary.MatchString(line) {
		tok.kind = tokSummary
		return tok
	}

	if m := reUncalled.FindStringSubmatch(line); m != nil {
		tok.kind = tokUncalled
		tok.amount = atof(m[1])
		tok.name = strings.TrimSpace(m[2])
		return tok
	}

	if m := reShows.FindStringSubmatch(line); m != nil {
		tok.kind = tokShows
		tok.name = strings.TrimSpace(m[1])
		tok.cards = splitCards(m[2])
		return tok
	}

	if m := reAction.FindStringSubmatch(line); m != nil {
		tok.kind = tokAction
		tok.name = strings.TrimSpace(m[1])
		tok.verb = m[2]
		rest := m[3]
		switch tok.verb {
		case "raises":
			if rm := reRaiseTo.FindStringSubmatch(line); rm != nil {
				tok.amount = atof(rm[1])
				tok.toAmount = atof(rm[2])
			}
		case "folds", "checks":
			// No amount.
		default:
			if am := reAmount.FindStringSubmatch(rest); am != nil {
				tok.amount = atof(am[1])
			}
		}
		return tok
	}

	if m := reTotalPot.FindStringSubmatch(line); m != nil {
		tok.kind = tokTotalPot
		tok.pot = atof(m[1])
		if rm := reRake.FindStringSubmatch(line); rm != nil {
			tok.rake = atof(rm[1])
		}
		if jm := reJackpot.FindStringSubmatch(line); jm != nil {
			tok.jackpot = atof(jm[1])
		}
		return tok
	}
	if m := reRake.FindStringSubmatch(line); m != nil {
		tok.kind = tokTotalPot
		tok.rake = atof(m[1])
		return tok
	}
	if m := reJackpot.FindStringSubmatch(line); m != nil {
		tok.kind = tokTotalPot
		tok.jackpot = atof(m[1])
		return tok
	}

	return tok
}

func splitCards(s string) []string {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
