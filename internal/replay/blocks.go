package replay

import (
	"errors"
	"fmt"
)

const (
	defaultBoardWidth  = 10
	defaultBoardHeight = 20
	pieceKinds         = 7
	rotations          = 4
	linesPerLevel      = 10
)

var lineScores = [...]int64{0, 100, 300, 500, 800}

// clearThresholds turn one generator draw into the number of lines a drop clears.
// Line clearing is abstracted rather than derived from piece geometry.
var clearThresholds = [...]float64{0.55, 0.80, 0.92, 0.98}

var (
	errUnknownMoveType  = errors.New("unknown move type")
	errUnknownDirection = errors.New("unknown direction")
)

// Blocks replays the falling-block puzzle.
type Blocks struct{}

type piece struct {
	kind     int
	x, y     int
	rotation int
}

type blocksState struct {
	rng     Source
	width   int
	height  int
	board   [][]int
	current *piece
	score   int64
	level   int
	lines   int
	dropped int
}

func newBlocksState(rng Source, width, height int) *blocksState {
	if width <= 0 {
		width = defaultBoardWidth
	}
	if height <= 0 {
		height = defaultBoardHeight
	}
	board := make([][]int, height)
	for i := range board {
		board[i] = make([]int, width)
	}
	return &blocksState{rng: rng, width: width, height: height, board: board, level: 1}
}

func (Blocks) Validate(moves []Move, seed string, cfg Config) Result {
	if errs := checkSequence(moves, cfg); len(errs) > 0 {
		return invalid(errs...)
	}

	st := newBlocksState(NewSource(seed), cfg.BoardWidth, cfg.BoardHeight)
	var errs []string
	for i, m := range moves {
		if err := st.apply(m); err != nil {
			errs = append(errs, fmt.Sprintf("move %d: %v", i, err))
		}
	}
	if len(errs) > 0 {
		return invalid(errs...)
	}
	if cfg.MaxScore > 0 && st.score > cfg.MaxScore {
		return invalid("score exceeds limit")
	}

	return Result{
		Valid: true,
		Score: st.score,
		GameData: map[string]any{
			"level":  st.level,
			"lines":  st.lines,
			"pieces": st.dropped,
			"moves":  len(moves),
		},
	}
}

func (s *blocksState) apply(m Move) error {
	if s.current == nil {
		s.spawn()
	}

	switch m.Type {
	case MoveTypeMove:
		return s.shift(m.Direction)
	case MoveTypeRotate:
		s.current.rotation = (s.current.rotation + 1) % rotations
		return nil
	case MoveTypeDrop:
		s.lock()
		return nil
	default:
		return fmt.Errorf("%w %q", errUnknownMoveType, m.Type)
	}
}

func (s *blocksState) spawn() {
	x := s.width/2 - 1
	if x < 0 {
		x = 0
	}
	s.current = &piece{kind: int(s.rng.Next() * pieceKinds), x: x}
}

func (s *blocksState) shift(direction string) error {
	p := s.current
	switch direction {
	case DirectionLeft:
		if p.x > 0 {
			p.x--
		}
	case DirectionRight:
		if p.x < s.width-1 {
			p.x++
		}
	case DirectionDown:
		if p.y < s.height-1 {
			p.y++
		}
	default:
		return fmt.Errorf("%w %q", errUnknownDirection, direction)
	}
	return nil
}

// lock settles the current piece in its column, clears lines and applies scoring.
// A piece whose column is full is not placed; the score still follows the sequence.
func (s *blocksState) lock() {
	p := s.current
	s.current = nil
	s.dropped++

	for r := s.height - 1; r >= 0; r-- {
		if s.board[r][p.x] == 0 {
			s.board[r][p.x] = p.kind + 1
			break
		}
	}

	cleared := linesCleared(s.rng.Next())
	if rows := min(cleared, s.height); rows > 0 {
		kept := s.board[:s.height-rows]
		fresh := make([][]int, rows, s.height)
		for i := range fresh {
			fresh[i] = make([]int, s.width)
		}
		s.board = append(fresh, kept...)
	}

	s.score += lineScores[cleared] * int64(s.level)
	s.lines += cleared
	s.level = s.lines/linesPerLevel + 1
}

func linesCleared(roll float64) int {
	for i, threshold := range clearThresholds {
		if roll < threshold {
			return i
		}
	}
	return len(clearThresholds)
}
