// SPDX-License-Identifier: MIT

package contract_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurinj/mtuq/contract"
	"github.com/thurinj/mtuq/surface"
)

// names is a bare ParameterSource; the contract is structural.
type names []string

func (n names) Parameters() []string { return n }

func TestCheck_Views(t *testing.T) {
	fullMT := names{"rho", "v", "w", "kappa", "sigma", "h"}
	cases := []struct {
		name    string
		view    contract.View
		source  contract.ParameterSource
		missing []string
	}{
		{"FullMTOnFullMT", contract.FullMomentTensor, fullMT, nil},
		{"DCOnFullMT", contract.DoubleCouple, fullMT, nil},
		{"LuneOnFullMT", contract.Lune, fullMT, nil},
		{"FullMTOnDC", contract.FullMomentTensor, names{"kappa", "sigma", "h"}, []string{"rho", "v", "w"}},
		{"DepthOnLune", contract.Depth, names{"v", "w"}, []string{"depth"}},
		{"ForceOnDC", contract.Force, names{"kappa", "sigma", "h"}, []string{"F0", "phi"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.view.Check(tc.source)
			if tc.missing == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, contract.ErrMissingParameter)
			var mpe *contract.MissingParameterError
			require.True(t, errors.As(err, &mpe))
			assert.Equal(t, tc.missing, mpe.Missing)
			assert.Equal(t, tc.view.Name, mpe.View)
		})
	}
}

func TestCheck_Surface(t *testing.T) {
	s, err := surface.New([]surface.Sample{
		{Coordinate: surface.Coordinate{"v": 0, "w": 0}, Misfit: 1},
		{Coordinate: surface.Coordinate{"v": 0, "w": 1}, Misfit: 2},
	}, surface.L2)
	require.NoError(t, err)

	assert.NoError(t, contract.Check(s, []string{"w", "v"}))

	err = contract.Check(s, []string{"v", "depth", "depth"})
	var mpe *contract.MissingParameterError
	require.True(t, errors.As(err, &mpe))
	assert.Equal(t, []string{"depth"}, mpe.Missing)
	assert.Empty(t, mpe.View)
	assert.EqualError(t, err, "contract: missing parameters [depth]")
}

func TestLookup(t *testing.T) {
	v, err := contract.Lookup("double_couple")
	require.NoError(t, err)
	assert.Equal(t, contract.DoubleCouple, v)

	_, err = contract.Lookup("beachball")
	assert.ErrorIs(t, err, contract.ErrUnknownView)
	assert.Len(t, contract.Views(), 5)
}
