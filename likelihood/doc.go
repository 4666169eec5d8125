// Package likelihood converts L2 misfit surfaces into probability-weighted
// likelihood surfaces under a Gaussian noise model with diagonal covariance.
//
// For every point with misfit components m_k and variances σ²_k taken from the
// diagonal of the covariance, the unnormalized weight is
//
//	w = exp(−c · Σ_k m_k / σ²_k)
//
// where c is the kernel scale (default 1/2, i.e. exp(−m/(2σ²)) for a single
// component). Whether a misfit already represents −2·log L or a sum of
// whitened squared residuals differs between reference codes, so c is a
// parameter (WithScale) rather than a hard-coded constant.
//
// Weights are normalized to unit mass: by their sum for irregular clouds
// (a discrete probability mass function) and by their trapezoidal integral for
// regular grids (a discretized density). When the mass is zero or undefined
// (all weights underflowed, single-point grid) normalization is skipped, a
// warning is logged and the result reports Normalized() == false.
//
// Only L2 misfit and diagonal covariance are supported. L1 stores and
// covariances with any non-zero off-diagonal entry are rejected at the
// boundary, never approximated.
package likelihood
