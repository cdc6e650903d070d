package bands

import "math"

// octaveRatio is G = 10^(3/10) per IEC 61260.
var octaveRatio = math.Pow(10, 0.3)

// Band is one fractional-octave band.
type Band struct {
	Center float64 // centre frequency in Hz
	Low    float64 // lower edge in Hz
	High   float64 // upper edge in Hz
}

// Octave returns the 1/fraction-octave bands whose centres lie in
// [lowerHz, upperHz], ordered low to high. fraction <= 0 is treated as 1.
func Octave(fraction int, lowerHz, upperHz float64) []Band {
	if fraction <= 0 {
		fraction = 1
	}
	if lowerHz <= 0 || upperHz <= lowerHz {
		return nil
	}

	n := float64(fraction)
	halfBW := math.Pow(octaveRatio, 1/(2*n))

	kMin := int(math.Ceil(n * math.Log(lowerHz/1000) / math.Log(octaveRatio)))
	kMax := int(math.Floor(n * math.Log(upperHz/1000) / math.Log(octaveRatio)))
	if kMax < kMin {
		return nil
	}

	out := make([]Band, 0, kMax-kMin+1)
	for k := kMin; k <= kMax; k++ {
		fc := 1000 * math.Pow(octaveRatio, float64(k)/n)
		out = append(out, Band{Center: fc, Low: fc / halfBW, High: fc * halfBW})
	}

	return out
}

// Edges returns the contiguous edge sequence of consecutive bands: the lower
// edge of every band followed by the upper edge of the last.
func Edges(bands []Band) []float64 {
	if len(bands) == 0 {
		return nil
	}

	out := make([]float64, 0, len(bands)+1)
	for _, b := range bands {
		out = append(out, b.Low)
	}
	return append(out, bands[len(bands)-1].High)
}
