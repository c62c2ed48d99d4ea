// Package replay recomputes round outcomes from a move log and a seed, so scores are
// produced by the server rather than reported by the client.
package replay

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"
)

const (
	MoveTypeMove   = "move"
	MoveTypeRotate = "rotate"
	MoveTypeDrop   = "drop"

	DirectionLeft  = "left"
	DirectionRight = "right"
	DirectionDown  = "down"
)

type Move struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Direction string          `json:"direction,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type Config struct {
	MaxMoves    int
	MaxScore    int64
	BoardWidth  int
	BoardHeight int
}

type Result struct {
	Valid    bool
	Score    int64
	GameData map[string]any
	Errors   []string
}

type Validator interface {
	Validate(moves []Move, seed string, cfg Config) Result
}

// Registry maps a game's validator tag to its implementation. Unknown tags resolve to
// the fallback validator.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
	fallback   Validator
}

func NewRegistry() *Registry {
	r := &Registry{
		validators: make(map[string]Validator),
		fallback:   Generic{},
	}
	r.Register("blocks", Blocks{})
	r.Register("generic", Generic{})
	return r
}

func (r *Registry) Register(tag string, v Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[tag] = v
}

func (r *Registry) Lookup(tag string) Validator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.validators[tag]; ok {
		return v
	}
	return r.fallback
}

// checkSequence enforces the rules shared by every game: a non-empty log within the
// move limit and strictly increasing timestamps.
func checkSequence(moves []Move, cfg Config) []string {
	if len(moves) == 0 {
		return []string{"no moves"}
	}
	if cfg.MaxMoves > 0 && len(moves) > cfg.MaxMoves {
		return []string{"too many moves"}
	}

	var errs []string
	for i := 1; i < len(moves); i++ {
		if moves[i].Timestamp <= moves[i-1].Timestamp {
			errs = append(errs, fmt.Sprintf("move %d: timestamp %d is not after previous timestamp %d",
				i, moves[i].Timestamp, moves[i-1].Timestamp))
		}
	}
	return errs
}

func invalid(errs ...string) Result {
	return Result{Valid: false, Errors: errs}
}

func HashMoves(moves []Move) (string, error) {
	b, err := json.Marshal(moves)
	if err != nil {
		return "", fmt.Errorf("marshal moves: %w", err)
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func HashSeed(seed string) string {
	sum := blake2b.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}
