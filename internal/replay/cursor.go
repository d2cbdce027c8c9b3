package replay

import "github.com/cardsharp/handreplay/internal/handhistory"

// Cursor steps through one replay's timeline, memoizing each snapshot by
// index so scrubbing back and forth over a long hand stays cheap. A Cursor
// is for a single goroutine; concurrent callers should use StateAt
// directly or hold their own Cursor.
type Cursor struct {
	replay *handhistory.HandReplay
	index  int
	cache  map[int]GameState
}

// NewCursor creates a cursor positioned before the first action.
func NewCursor(replay *handhistory.HandReplay) *Cursor {
	return &Cursor{
		replay: replay,
		cache:  make(map[int]GameState, len(replay.Actions)+1),
	}
}

// Index returns the cursor's current action index.
func (c *Cursor) Index() int { return c.index }

// Len returns the total number of actions in the replay.
func (c *Cursor) Len() int { return len(c.replay.Actions) }

// Seek moves to the given index and returns the state there. Cached
// snapshots are returned as-is; callers must treat them as read-only.
func (c *Cursor) Seek(index int) (GameState, error) {
	if cached, ok := c.cache[index]; ok {
		c.index = index
		return cached, nil
	}
	state, err := StateAt(c.replay, index)
	if err != nil {
		return GameState{}, err
	}
	c.cache[index] = state
	c.index = index
	return state, nil
}

// Next advances one action, clamping at the end of the timeline.
func (c *Cursor) Next() (GameState, error) {
	index := c.index + 1
	if index > c.Len() {
		index = c.Len()
	}
	return c.Seek(index)
}

// Prev steps back one action, clamping at the start.
func (c *Cursor) Prev() (GameState, error) {
	index := c.index - 1
	if index < 0 {
		index = 0
	}
	return c.Seek(index)
}

// AtEnd reports whether the cursor has applied every action.
func (c *Cursor) AtEnd() bool { return c.index >= c.Len() }
