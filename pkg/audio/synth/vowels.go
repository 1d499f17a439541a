package synth

import "math"

// Vowel is a reference point in the F1/F2 plane
type Vowel struct {
	Symbol string  `json:"symbol" yaml:"symbol"`
	F1     float64 `json:"f1" yaml:"f1"`
	F2     float64 `json:"f2" yaml:"f2"`
}

// Chart bounds of the F1/F2 plane (Hz)
const (
	F1Min = 200.0
	F1Max = 1200.0
	F2Min = 500.0
	F2Max = 3500.0
)

// Vowels lists cardinal vowel targets in IPA notation
var Vowels = []Vowel{
	{Symbol: "i", F1: 255, F2: 2890},
	{Symbol: "u", F1: 260, F2: 593},
	{Symbol: "a", F1: 1072, F2: 1449},
	{Symbol: "o", F1: 500, F2: 800},
	{Symbol: "ɔ", F1: 664, F2: 907},
	{Symbol: "ɛ", F1: 709, F2: 2105},
	{Symbol: "e", F1: 408, F2: 2253},
	{Symbol: "ə", F1: 600, F2: 1200},
	{Symbol: "ɪ", F1: 347, F2: 2629},
	{Symbol: "ʊ", F1: 434, F2: 1024},
	{Symbol: "ʌ", F1: 731, F2: 1127},
	{Symbol: "ɑ", F1: 970, F2: 984},
	{Symbol: "æ", F1: 902, F2: 1730},
	{Symbol: "y", F1: 252, F2: 2120},
}

// LookupVowel returns the vowel with the given IPA symbol
func LookupVowel(symbol string) (Vowel, bool) {
	for _, v := range Vowels {
		if v.Symbol == symbol {
			return v, true
		}
	}
	return Vowel{}, false
}

// NearestVowel returns the reference vowel closest to (f1, f2), measuring
// distance in chart coordinates so both axes weigh the same
func NearestVowel(f1, f2 float64) Vowel {
	best := Vowels[0]
	bestDist := math.Inf(1)
	for _, v := range Vowels {
		d1 := (f1 - v.F1) / (F1Max - F1Min)
		d2 := (f2 - v.F2) / (F2Max - F2Min)
		if d := d1*d1 + d2*d2; d < bestDist {
			best, bestDist = v, d
		}
	}
	return best
}
