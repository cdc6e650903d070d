// Package core holds the shared data model of the binning transforms: a
// row-major N-dimensional [Array], axis normalisation, lane gather/scatter
// onto gonum matrices, and the input validation used by every transform.
package core
