// SPDX-License-Identifier: MIT

package likelihood

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Diagonal returns a diagonal covariance holding one variance per misfit
// component. It returns nil when no variance is given, which Convert rejects.
func Diagonal(variances ...float64) mat.Matrix {
	if len(variances) == 0 {
		return nil
	}

	return mat.NewDiagDense(len(variances), append([]float64(nil), variances...))
}

// Variances extracts the diagonal of cov after checking it is square,
// strictly diagonal and positive with a finite inverse.
// Stage 1: shape. Stage 2: off-diagonal structure. Stage 3: diagonal values.
func Variances(cov mat.Matrix) ([]float64, error) {
	if cov == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidCovariance)
	}
	r, c := cov.Dims()
	if r == 0 || r != c {
		return nil, fmt.Errorf("%w: shape %d×%d", ErrInvalidCovariance, r, c)
	}

	if _, diag := cov.(mat.Diagonal); !diag {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if i != j && cov.At(i, j) != 0 {
					return nil, fmt.Errorf("%w: entry (%d,%d) = %g", ErrUnsupportedCovarianceStructure, i, j, cov.At(i, j))
				}
			}
		}
	}

	out := make([]float64, r)
	for i := range out {
		v := cov.At(i, i)
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return nil, fmt.Errorf("%w: variance %d = %g", ErrInvalidCovariance, i, v)
		}
		if math.IsInf(1/v, 0) {
			return nil, fmt.Errorf("%w: variance %d = %g has no finite inverse", ErrInvalidCovariance, i, v)
		}
		out[i] = v
	}

	return out, nil
}
