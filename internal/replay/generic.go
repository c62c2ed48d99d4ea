package replay

const (
	genericPointsPerMove = 10
	genericMaxMultiplier = 5
)

// Generic scores games that have no dedicated simulator: every move is worth a fixed
// number of points scaled by a seed-derived multiplier.
type Generic struct{}

func (Generic) Validate(moves []Move, seed string, cfg Config) Result {
	if errs := checkSequence(moves, cfg); len(errs) > 0 {
		return invalid(errs...)
	}

	multiplier := 1 + int64(NewSource(seed).Next()*genericMaxMultiplier)
	score := int64(len(moves)) * genericPointsPerMove * multiplier
	if cfg.MaxScore > 0 && score > cfg.MaxScore {
		return invalid("score exceeds limit")
	}

	return Result{
		Valid: true,
		Score: score,
		GameData: map[string]any{
			"moves":      len(moves),
			"multiplier": multiplier,
		},
	}
}
