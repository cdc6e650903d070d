// Package bands condenses power spectra into fractional-octave bands.
//
// The spectrum is computed with an FFT, then averaged into bands with
// [binavg.Average], which integrates the interpolated density exactly over
// each band instead of summing whole FFT bins. Band data can be moved onto a
// different band layout with [Rebin] without recomputing the spectrum; total
// power is conserved.
//
// Band centres follow the IEC 61260 base-10 system:
//
//	f_m = 1000 * G^(k/N),  G = 10^(3/10)
//
// with edges at f_m * G^(±1/(2N)).
package bands
