package formant

const (
	speedOfSound = 35000.0 // cm/s

	// DefaultVocalTractLength is returned when no formant gives a plausible estimate (cm)
	DefaultVocalTractLength = 17.5

	minVocalTractLength = 10.0
	maxVocalTractLength = 25.0
)

// EstimateVocalTractLength estimates vocal tract length in cm from ascending
// formant frequencies, treating the tract as a uniform tube closed at one end:
// Fn = (2n-1)c / 4L. Estimates outside 10-25 cm are ignored.
func EstimateVocalTractLength(frequencies []float64) float64 {
	var sum float64
	var count, n int

	for _, f := range frequencies {
		if f <= 0 {
			continue
		}
		n++
		length := float64(2*n-1) * speedOfSound / (4 * f)
		if length < minVocalTractLength || length > maxVocalTractLength {
			continue
		}
		sum += length
		count++
	}

	if count == 0 {
		return DefaultVocalTractLength
	}
	return sum / float64(count)
}
