// Package contract checks that a surface exposes the parameters a
// visualization family needs before any likelihood conversion or
// marginalization is attempted for it.
//
// Views are fixed per family:
//
//	FullMomentTensor  rho v w kappa sigma h
//	DoubleCouple      kappa sigma h
//	Lune              v w
//	Force             F0 phi h
//	Depth             depth
//
// A store produced for the wrong parameterization fails with a
// *MissingParameterError listing the absent names, so callers can pick a
// different view or regenerate the store instead of plotting garbage.
package contract
