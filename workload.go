package aetherlink

// Pattern identifies a synthetic address stream shape. The generators are
// deterministic, so benchmarks and tests replay identical streams, and the
// demo programs exercise the kernel against recognizable access styles.
type Pattern int

const (
	// PatternSequential emits contiguous ascending addresses.
	PatternSequential Pattern = iota

	// PatternRandom emits pseudo-random addresses from a linear
	// congruential generator seeded by base.
	PatternRandom

	// PatternBursty emits short sequential runs separated by large jumps,
	// the shape of interleaved file reads.
	PatternBursty

	// PatternTick emits small sequential bursts with cache-line-sized
	// jumps, the shape of market tick ingestion.
	PatternTick
)

// LCG parameters. Knuth's MMIX multiplier; the generator needs
// deterministic scatter, not statistical quality.
const (
	lcgMultiplier = 6364136223846793005
	lcgIncrement  = 1
	lcgRange      = 100000
)

func (p Pattern) String() string {
	switch p {
	case PatternSequential:
		return "Sequential"
	case PatternRandom:
		return "Random"
	case PatternBursty:
		return "Bursty"
	case PatternTick:
		return "Tick"
	default:
		return "Unknown"
	}
}

// Patterns lists all workload patterns in sweep order.
func Patterns() []Pattern {
	return []Pattern{PatternSequential, PatternRandom, PatternBursty, PatternTick}
}

// Generate produces count addresses starting from base.
func (p Pattern) Generate(base uint64, count int) []uint64 {
	return p.GenerateInto(make([]uint64, 0, count), base, count)
}

// GenerateInto appends count addresses to dst and returns it. Callers on a
// hot loop pass dst[:0] of a reused buffer to avoid per-cycle allocation.
func (p Pattern) GenerateInto(dst []uint64, base uint64, count int) []uint64 {
	switch p {
	case PatternRandom:
		rng := base
		for i := 0; i < count; i++ {
			rng = rng*lcgMultiplier + lcgIncrement
			dst = append(dst, rng%lcgRange)
		}

	case PatternBursty:
		pos := base
		for i := 0; i < count; i++ {
			if i%5 == 0 {
				pos += 1000 // jump to a new region
			}
			dst = append(dst, pos)
			pos++
		}

	case PatternTick:
		pos := base
		for i := 0; i < count; i++ {
			if i%10 == 0 {
				pos += 64 // cache line boundary
			}
			dst = append(dst, pos)
			pos++
		}

	default: // PatternSequential
		for i := 0; i < count; i++ {
			dst = append(dst, base+uint64(i))
		}
	}
	return dst
}
