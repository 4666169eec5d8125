// Package uq runs the uncertainty pipeline over misfit surfaces produced by a
// grid search: the parameter contract of the requested view is checked first,
// then misfits are converted to likelihoods and reduced onto the kept
// parameters. Every derived surface is cached under a content-addressed key.
package uq
