package goaverage

// Preset selects a fixed vector of picture-type weight multipliers for the
// Mean combiner, in the order {intra, predicted, bidirectional}.
//
// The named presets invert common encoder quantizer-ratio conventions so
// that each picture type contributes roughly equally despite differing
// quantization noise. Any other value behaves like PresetBalanced: every
// picture type is combined with the same multiplier, none is excluded.
type Preset int

const (
	// PresetBalanced applies no differential weighting.
	PresetBalanced Preset = 0
	// PresetX264 inverts the x264/x265 default ratios (IP 1.4, PB 1.3).
	PresetX264 Preset = 1
	// PresetX264Grain inverts the x264 --tune grain ratios (IP 1.1, PB 1.1).
	PresetX264Grain Preset = 2
	// PresetX265Grain inverts the x265 --tune grain ratios (IP 1.1, PB 1.0).
	PresetX265Grain Preset = 3
)

// Multipliers returns the per-picture-type weight vector the preset
// applies, in the order {intra, predicted, bidirectional}.
func (p Preset) Multipliers() [3]float64 {
	switch p {
	case PresetX264:
		return [3]float64{1.82, 1.30, 1.00}
	case PresetX264Grain:
		return [3]float64{1.21, 1.10, 1.00}
	case PresetX265Grain:
		return [3]float64{1.10, 1.00, 1.00}
	default:
		return [3]float64{1, 1, 1}
	}
}

// uniform reports whether the preset applies the same multiplier to every
// picture type, in which case the Mean combiner can take its exact
// integer path.
func (p Preset) uniform() bool {
	m := p.Multipliers()
	return m[0] == m[1] && m[1] == m[2]
}

// frameWeights maps each source frame's picture type through the
// multiplier vector. Frames without a recorded picture type weight as
// intra frames.
func frameWeights(srcs []*Frame, mult [3]float64) []float64 {
	weights := make([]float64, len(srcs))
	for i, f := range srcs {
		switch f.PictureType {
		case PictureTypePredicted:
			weights[i] = mult[1]
		case PictureTypeBidirectional:
			weights[i] = mult[2]
		default:
			weights[i] = mult[0]
		}
	}
	return weights
}

// normalizeWeights scales the weight vector in place so it sums to 1,
// keeping the total contribution across the K clips constant regardless
// of how the picture types are distributed among them.
func normalizeWeights(weights []float64) {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	recip := 1.0 / sum
	for i := range weights {
		weights[i] *= recip
	}
}
