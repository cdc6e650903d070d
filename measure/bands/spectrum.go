package bands

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-binavg/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the spectrum and band functions.
var (
	ErrInvalidSampleRate = errors.New("bands: sample rate must be positive")
	ErrEmptySignal       = errors.New("bands: empty signal")
	ErrNoBands           = errors.New("bands: need at least one band")
)

// PowerSpectrum returns the one-sided power spectral density of signal in
// units²/Hz and the bin frequencies f_i = i*sampleRate/nfft, where nfft is
// len(signal) rounded up to a power of two. The density integrates to the
// mean square of the (windowed) signal.
func PowerSpectrum(signal []float64, sampleRate float64, opts ...Option) (freqs, psd []float64, err error) {
	if len(signal) == 0 {
		return nil, nil, ErrEmptySignal
	}
	if !(sampleRate > 0) {
		return nil, nil, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}
	cfg := applyOptions(opts)

	frame := append([]float64(nil), signal...)
	norm := window.Apply(cfg.window, frame)

	nfft := nextPowerOf2(len(frame))
	in := make([]complex128, nfft)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return nil, nil, fmt.Errorf("bands: failed to create FFT plan: %w", err)
	}
	out := make([]complex128, nfft)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("bands: forward FFT: %w", err)
	}

	bins := nfft/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	psd = make([]float64, bins)
	vecmath.Power(psd, re, im)

	freqs = make([]float64, bins)
	scale := 1 / (sampleRate * norm)
	for i := range psd {
		freqs[i] = float64(i) * sampleRate / float64(nfft)
		// DC and Nyquist have no mirrored negative-frequency bin.
		if i == 0 || i == bins-1 {
			psd[i] *= scale
		} else {
			psd[i] *= 2 * scale
		}
	}

	return freqs, psd, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
