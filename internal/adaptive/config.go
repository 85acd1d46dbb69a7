package adaptive

// Config fixes the tuning constants for one age bracket.
type Config struct {
	BaseLevel          float64
	MaxLevel           float64
	MinLevel           float64
	IncrementThreshold float64 // weighted score (0-100) to build a streak
	DecrementThreshold float64 // weighted score (0-100) to lose one
	AdaptiveRate       float64
	TimeWeight         float64
	AccuracyWeight     float64
}

// ConfigForAge selects the difficulty tuning for the given age in years.
// Younger brackets move slowly and lean on accuracy; peak-performance ages
// (18-30) get the widest range and the fastest rate.
func ConfigForAge(age int) Config {
	switch {
	case age < 6:
		return Config{
			BaseLevel:          1,
			MaxLevel:           3,
			MinLevel:           1,
			IncrementThreshold: 85,
			DecrementThreshold: 60,
			AdaptiveRate:       0.3,
			TimeWeight:         0.3,
			AccuracyWeight:     0.7,
		}
	case age < 12:
		return Config{
			BaseLevel:          2,
			MaxLevel:           5,
			MinLevel:           1,
			IncrementThreshold: 80,
			DecrementThreshold: 55,
			AdaptiveRate:       0.4,
			TimeWeight:         0.4,
			AccuracyWeight:     0.6,
		}
	case age < 18:
		return Config{
			BaseLevel:          3,
			MaxLevel:           7,
			MinLevel:           2,
			IncrementThreshold: 75,
			DecrementThreshold: 50,
			AdaptiveRate:       0.5,
			TimeWeight:         0.5,
			AccuracyWeight:     0.5,
		}
	case age < 30:
		return Config{
			BaseLevel:          4,
			MaxLevel:           10,
			MinLevel:           2,
			IncrementThreshold: 70,
			DecrementThreshold: 45,
			AdaptiveRate:       0.6,
			TimeWeight:         0.6,
			AccuracyWeight:     0.4,
		}
	case age < 50:
		return Config{
			BaseLevel:          3,
			MaxLevel:           9,
			MinLevel:           2,
			IncrementThreshold: 75,
			DecrementThreshold: 50,
			AdaptiveRate:       0.5,
			TimeWeight:         0.5,
			AccuracyWeight:     0.5,
		}
	default:
		return Config{
			BaseLevel:          2,
			MaxLevel:           8,
			MinLevel:           1,
			IncrementThreshold: 80,
			DecrementThreshold: 55,
			AdaptiveRate:       0.4,
			TimeWeight:         0.4,
			AccuracyWeight:     0.6,
		}
	}
}

// AgeSettings are the presentation-level knobs for one age bracket. This is
// a second, independent table from ConfigForAge — the brackets differ on
// purpose (it collapses everyone 18+ into one tier).
type AgeSettings struct {
	TimeLimit  int // seconds per task
	Complexity float64
	Features   []string
}

func settingsForAge(age int, complexity float64) AgeSettings {
	switch {
	case age < 6:
		return AgeSettings{
			TimeLimit:  60,
			Complexity: complexity,
			Features:   []string{"hints", "visual_feedback", "simple_patterns"},
		}
	case age < 12:
		return AgeSettings{
			TimeLimit:  45,
			Complexity: complexity,
			Features:   []string{"hints", "visual_feedback", "medium_patterns"},
		}
	case age < 18:
		return AgeSettings{
			TimeLimit:  30,
			Complexity: complexity,
			Features:   []string{"visual_feedback", "complex_patterns"},
		}
	default:
		return AgeSettings{
			TimeLimit:  25,
			Complexity: complexity,
			Features:   []string{"complex_patterns", "advanced_metrics"},
		}
	}
}
