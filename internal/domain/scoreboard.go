package domain

import (
	"encoding/json"
	"fmt"
)

// ScoreBoard holds one counter per category. Every category is always present.
type ScoreBoard [categoryCount]int

// Add increments the count for c by one.
func (s *ScoreBoard) Add(c Category) {
	s[c]++
}

// Get returns the count for c.
func (s ScoreBoard) Get(c Category) int {
	if !c.Valid() {
		return 0
	}
	return s[c]
}

// Total is the sum of all counts.
func (s ScoreBoard) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Leader returns the category with the highest count. Among tied categories the first in
// canonical order wins, so an all-zero board yields Cat.
func (s ScoreBoard) Leader() Category {
	best := Cat
	for _, c := range Categories() {
		if s[c] > s[best] {
			best = c
		}
	}
	return best
}

// MarshalJSON encodes the board as {"cat": n, "dog": n, ...}.
func (s ScoreBoard) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, categoryCount)
	for _, c := range Categories() {
		out[c.String()] = s[c]
	}
	return json.Marshal(out)
}

func (s *ScoreBoard) UnmarshalJSON(data []byte) error {
	var in map[string]int
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var board ScoreBoard
	for token, v := range in {
		c, err := ParseCategory(token)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%w: negative count for %s", ErrCorruptState, token)
		}
		board[c] = v
	}
	*s = board
	return nil
}
