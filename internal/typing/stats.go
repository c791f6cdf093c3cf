package typing

import (
	"math"
	"time"
)

// CharsPerWord is the conventional word length used for WPM.
const CharsPerWord = 5.0

// Stats are derived from the typed buffer, the target and the elapsed time.
type Stats struct {
	Typed     int
	Correct   int
	Incorrect int
	// Accuracy is a percentage in [0, 100], unrounded.
	Accuracy float64
	// WPM counts correctly typed characters only.
	WPM     int
	Elapsed time.Duration
}

// ComputeStats derives statistics for a typed buffer against its target.
func ComputeStats(typed, target []rune, elapsed time.Duration) Stats {
	st := Stats{Typed: len(typed)}
	if len(typed) == 0 {
		return st
	}
	if elapsed > 0 {
		st.Elapsed = elapsed
	}
	n := min(len(typed), len(target))
	for i := 0; i < n; i++ {
		if typed[i] == target[i] {
			st.Correct++
		}
	}
	st.Incorrect = len(typed) - st.Correct
	st.Accuracy = 100 * float64(st.Correct) / float64(len(typed))
	st.WPM = wordsPerMinute(st.Correct, elapsed)
	return st
}

func wordsPerMinute(correct int, elapsed time.Duration) int {
	if correct == 0 || elapsed <= 0 {
		return 0
	}
	words := float64(correct) / CharsPerWord
	// words / minutes, ordered to stay exact for whole seconds.
	return int(math.Floor(words * 60 / elapsed.Seconds()))
}
