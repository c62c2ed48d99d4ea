package replay

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Source is a deterministic float sequence in [0, 1) derived from a seed string.
type Source interface {
	Next() float64
}

type lcg struct {
	state int64
}

// NewSource mixes seed into a 32-bit integer (h = h*31 + c with int32 wrap-around)
// and steps a linear congruential generator from it. Clients replaying rounds locally
// use the same formulas, so neither may change without a protocol bump.
func NewSource(seed string) Source {
	return &lcg{state: mixSeed(seed)}
}

func mixSeed(seed string) int64 {
	var h int32
	for _, c := range seed {
		h = h*31 + int32(c)
	}
	s := int64(h) % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	return s
}

func (g *lcg) Next() float64 {
	g.state = (g.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.state) / lcgModulus
}
