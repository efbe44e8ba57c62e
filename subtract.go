package spikeview

import (
	"math"

	"github.com/neurotap/spikeview/model"
)

// SubtractTemplates reconstructs a residual trace: for every spike it
// subtracts the spike's amplitude-scaled template waveform from the trace
// segment, time-aligned at round((spikeTime - startTime) * sampleRate).
//
// waveforms[i] is spike i's template kernel over ALL trace channels
// (length x traces.Cols()). The template length L splits into a left half
// floor(L/2) and right half L - floor(L/2); windows crossing either buffer
// edge are clipped on that side, and spikes falling entirely outside the
// buffer contribute nothing. The input buffer is never mutated.
//
// Subtraction is plain arithmetic, so processing order does not affect the
// result beyond floating-point summation order at overlaps.
func SubtractTemplates(traces *model.Matrix, startTime float64, spikeTimes, amplitudes []float64, waveforms []*model.Matrix, sampleRate float64) (*model.Matrix, error) {
	if len(amplitudes) != len(spikeTimes) {
		return nil, &ErrLengthMismatch{Field: "amplitudes", Want: len(spikeTimes), Got: len(amplitudes)}
	}
	if len(waveforms) != len(spikeTimes) {
		return nil, &ErrLengthMismatch{Field: "waveforms", Want: len(spikeTimes), Got: len(waveforms)}
	}

	out := traces.Clone()
	n := out.Rows()
	for i, st := range spikeTimes {
		w := waveforms[i]
		if w.Cols() != out.Cols() {
			return nil, &ErrLengthMismatch{Field: "waveform channels", Want: out.Cols(), Got: w.Cols()}
		}
		L := w.Rows()
		iLen := L / 2
		jLen := L - iLen

		t := int(math.Round((st - startTime) * sampleRate))
		sa, sb := t-iLen, t+jLen
		wa := 0
		if sa < 0 {
			wa = -sa
			sa = 0
		}
		if sb > n {
			sb = n
		}
		if sa >= sb {
			continue
		}
		amp := float32(amplitudes[i])
		for r := 0; r < sb-sa; r++ {
			dst := out.Row(sa + r)
			src := w.Row(wa + r)
			for col := range dst {
				dst[col] -= src[col] * amp
			}
		}
	}
	return out, nil
}
