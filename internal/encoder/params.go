package encoder

// Parameter bounds. Speed only affects GIF output.
const (
	MinQuality = 1
	MaxQuality = 100
	MinSpeed   = 1
	MaxSpeed   = 30

	DefaultQuality = 80
	DefaultSpeed   = 1
)

// Params holds the tunables shared by all encoders.
type Params struct {
	Quality int // lossy fidelity, 1 (smallest) to 100 (best)
	Speed   int // effort trade-off, 1 (slowest, best) to 30 (fastest)
}

// DefaultParams returns quality 80, speed 1.
func DefaultParams() Params {
	return Params{Quality: DefaultQuality, Speed: DefaultSpeed}
}

// Clamped returns p with every field forced into its valid range.
func (p Params) Clamped() Params {
	return Params{
		Quality: ClampQuality(p.Quality),
		Speed:   ClampSpeed(p.Speed),
	}
}

// ClampQuality maps any integer into [MinQuality, MaxQuality].
func ClampQuality(q int) int {
	return clamp(q, MinQuality, MaxQuality)
}

// ClampSpeed maps any integer into [MinSpeed, MaxSpeed].
func ClampSpeed(s int) int {
	return clamp(s, MinSpeed, MaxSpeed)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
