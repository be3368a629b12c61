package epic

import (
	"math"

	"github.com/nathoo/tink/types"
)

// StabilityTone is the intrinsic tone of each stability.
var StabilityTone = map[types.Stability]string{
	types.Harmony:   "warm",
	types.Resonance: "crystalline",
	types.Tension:   "dissonant",
	types.Paradox:   "dark",
}

// StabilityHue is the intrinsic hue of each stability.
var StabilityHue = map[types.Stability]string{
	types.Harmony:   "#44aa88",
	types.Resonance: "#4488ff",
	types.Tension:   "#ff6600",
	types.Paradox:   "#aa00ff",
}

var naturalIntensity = map[types.Stability]float64{
	types.Harmony:   0.2,
	types.Resonance: 0.4,
	types.Tension:   0.6,
	types.Paradox:   0.9,
}

const (
	intensityTolerance = 0.25
	goldenRatio        = 0.8
)

// NaturalIntensity returns the intrinsic intensity of s, 0.5 when unknown.
func NaturalIntensity(s types.Stability) float64 {
	if v, ok := naturalIntensity[s]; ok {
		return v
	}
	return 0.5
}

// ScoreAxisAlignment compares the mood declared on b with the mood implied
// by m's stability. Only declared axes count. Golden means more than 80%
// of them align.
func ScoreAxisAlignment(b types.Beat, m types.Moment) types.Alignment {
	var a types.Alignment
	if b.Mood == nil {
		return a
	}
	if b.Mood.Tone != "" {
		a.Total++
		if StabilityTone[m.Stability] == b.Mood.Tone {
			a.Aligned++
		}
	}
	if b.Mood.Hue != "" {
		a.Total++
		if StabilityHue[m.Stability] == b.Mood.Hue {
			a.Aligned++
		}
	}
	if b.Mood.Intensity != nil {
		a.Total++
		if math.Abs(NaturalIntensity(m.Stability)-*b.Mood.Intensity) < intensityTolerance {
			a.Aligned++
		}
	}
	if a.Total > 0 {
		a.Ratio = float64(a.Aligned) / float64(a.Total)
	}
	a.Golden = a.Ratio > goldenRatio
	return a
}
