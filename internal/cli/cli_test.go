// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurinj/mtuq/contract"
	"github.com/thurinj/mtuq/figure"
	"github.com/thurinj/mtuq/likelihood"
	"github.com/thurinj/mtuq/surface"
	"github.com/thurinj/mtuq/waveform"
)

// planeCSV is v+w+2 over a 3×2 lune grid.
const planeCSV = `v,w,misfit
-0.5,-1,0.5
-0.5,1,2.5
0,-1,1
0,1,3
0.5,-1,1.5
0.5,1,3.5
`

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// run executes the root command and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

//----------------------------------------------------------------------------//
// Root
//----------------------------------------------------------------------------//

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "mtuq", cmd.Use)

	for _, name := range []string{"check", "likelihood", "misfit", "tradeoff", "validate-data"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestRoot_BadConfigFails(t *testing.T) {
	csv := writeTemp(t, "plane.csv", planeCSV)
	_, _, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "check", csv)
	assert.Error(t, err)
}

//----------------------------------------------------------------------------//
// Tables
//----------------------------------------------------------------------------//

func TestReadSamples(t *testing.T) {
	samples, err := readSamples(strings.NewReader("# comment\nmisfit, depth\n1.5, 1000\n2, 2000\n"))
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, surface.Sample{Coordinate: surface.Coordinate{"depth": 1000}, Misfit: 1.5}, samples[0])

	for _, bad := range []string{"", "v,w\n1,2\n", "misfit\n1\n", "v,misfit\nx,1\n", "v,misfit\n1\n"} {
		_, err := readSamples(strings.NewReader(bad))
		assert.ErrorIs(t, err, ErrBadTable, "%q", bad)
	}
}

func TestParseBins(t *testing.T) {
	got, err := parseBins([]string{"v:-0.5:0.5:4", "w:-1:1:2"})
	require.NoError(t, err)
	assert.Equal(t, []surface.BinSpec{
		{Name: "v", Min: -0.5, Max: 0.5, Count: 4},
		{Name: "w", Min: -1, Max: 1, Count: 2},
	}, got)

	for _, bad := range []string{"v", "v:0:1", ":0:1:2", "v:a:1:2", "v:0:1:two"} {
		_, err := parseBins([]string{bad})
		assert.ErrorIs(t, err, surface.ErrInvalidBin, bad)
	}
}

func TestExpandVariances(t *testing.T) {
	got, err := expandVariances(nil, 2, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, got)
	got, err = expandVariances([]float64{1, 2}, 2, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, got)
	_, err = expandVariances([]float64{1, 2, 3}, 2, 0.5)
	assert.Error(t, err)
}

//----------------------------------------------------------------------------//
// Commands
//----------------------------------------------------------------------------//

func TestCheckCommand(t *testing.T) {
	csv := writeTemp(t, "plane.csv", planeCSV)

	out, _, err := run(t, "check", csv)
	require.NoError(t, err)
	assert.Contains(t, out, "lune view ok (regular, 6 points, parameters v,w)")

	_, _, err = run(t, "check", "--view", "depth", csv)
	assert.ErrorIs(t, err, contract.ErrMissingParameter)
	_, _, err = run(t, "check", "--view", "nope", csv)
	assert.ErrorIs(t, err, contract.ErrUnknownView)
}

func TestMisfitCommand_MinimumView(t *testing.T) {
	csv := writeTemp(t, "plane.csv", planeCSV)

	out, stderr, err := run(t, "misfit", "--keep", "v", csv)
	require.NoError(t, err)
	assert.Equal(t, "# v misfit\n-0.5 0.5\n0 1\n0.5 1.5\n", out)
	assert.Contains(t, stderr, "best point")
}

func TestMisfitCommand_VarianceReductionGrid(t *testing.T) {
	csv := writeTemp(t, "plane.csv", planeCSV)

	out, _, err := run(t, "misfit", "--data-norm", "4", "--mode", "maximum", "--grid", csv)
	require.NoError(t, err)
	assert.Equal(t, "v\\w -1 1\n-0.5 87.5 37.5\n0 75 25\n0.5 62.5 12.5\n", out)
}

// scatterCSV is an irregular lune cloud, one or two points per quadrant.
const scatterCSV = `v,w,misfit
-0.3,-0.3,1
-0.1,-0.2,2
-0.2,0.2,3
0.2,-0.1,4
0.1,-0.3,0.5
0.3,0.3,6
`

func TestMisfitCommand_BinsCloudOntoGrid(t *testing.T) {
	csv := writeTemp(t, "scatter.csv", scatterCSV)

	_, _, err := run(t, "misfit", "--grid", csv)
	assert.ErrorIs(t, err, figure.ErrNotGrid2D)

	out, _, err := run(t, "misfit", "--bin", "v:-1:1:2", "--bin", "w:-1:1:2", "--grid", csv)
	require.NoError(t, err)
	assert.Equal(t, "v\\w -0.5 0.5\n-0.5 1 3\n0.5 0.5 6\n", out)

	_, _, err = run(t, "misfit", "--bin", "v:1", csv)
	assert.ErrorIs(t, err, surface.ErrInvalidBin)
}

func TestTradeoffCommand(t *testing.T) {
	csv := writeTemp(t, "plane.csv", planeCSV)

	out, stderr, err := run(t, "tradeoff", "--keep", "v", "--target", "w", csv)
	require.NoError(t, err)
	assert.Equal(t, "# v parameter\n-0.5 -1\n0 -1\n0.5 -1\n", out)
	assert.NotContains(t, stderr, "best point")

	_, _, err = run(t, "tradeoff", "--keep", "v", "--target", "rho", csv)
	assert.ErrorIs(t, err, surface.ErrUnknownParameter)
}

func TestLikelihoodCommand(t *testing.T) {
	csv := writeTemp(t, "plane.csv", planeCSV)
	table := filepath.Join(t.TempDir(), "lune.xyz")

	_, stderr, err := run(t, "likelihood", "--variance", "0.5", "--keep", "w", "--output", table, "--figure", "lune", csv)
	require.NoError(t, err)
	assert.Contains(t, stderr, "file=lune.png")

	raw, err := os.ReadFile(table)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "# w likelihood", lines[0])

	_, _, err = run(t, "likelihood", "--norm", "l1", csv)
	assert.ErrorIs(t, err, likelihood.ErrUnsupportedMisfitKind)
	_, _, err = run(t, "likelihood", "--mode", "median", csv)
	assert.Error(t, err)
}

func TestLikelihoodCommand_SQLiteCache(t *testing.T) {
	csv := writeTemp(t, "plane.csv", planeCSV)
	cfg := writeTemp(t, "mtuq.yaml", "cache_path: "+filepath.Join(t.TempDir(), "cache.db")+"\n")

	first, _, err := run(t, "--config", cfg, "likelihood", "--keep", "v", csv)
	require.NoError(t, err)
	second, logs, err := run(t, "--config", cfg, "-v", "likelihood", "--keep", "v", csv)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, logs, "cache hit")
	assert.NotContains(t, logs, "msg=computed")
}

//----------------------------------------------------------------------------//
// validate-data
//----------------------------------------------------------------------------//

const datasetYAML = `streams:
  - station: BK.CMB
    traces:
      - {station: BK.CMB, channel: BHZ, sampling_rate: 20, start: 2009-04-07T20:12:55Z, end: 2009-04-07T20:12:55.15Z, samples: [1, 2, 3, 4]}
      - {station: BK.CMB, channel: BHR, sampling_rate: 20, start: 2009-04-07T20:12:55Z, end: 2009-04-07T20:12:55.15Z, samples: [4, 3, 2, 1]}
  - station: BK.PKD
    traces:
      - {station: BK.PKD, channel: BHZ, sampling_rate: 20, start: 2009-04-07T20:13:00Z, end: 2009-04-07T20:13:00.15Z, samples: [0, 0, 0, 0]}
`

func TestValidateDataCommand(t *testing.T) {
	good := writeTemp(t, "ds.yaml", datasetYAML)
	out, _, err := run(t, "validate-data", "--demean", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (2 stations, 3 traces)")

	bad := writeTemp(t, "bad.yaml", strings.Replace(datasetYAML, "channel: BHR, sampling_rate: 20", "channel: BHR, sampling_rate: 40", 1))
	_, _, err = run(t, "validate-data", bad)
	assert.ErrorIs(t, err, waveform.ErrSamplingMismatch)
}

func TestDemean(t *testing.T) {
	s := waveform.Stream{Station: "X", Traces: []waveform.Trace{{Samples: []float64{1, 2, 3}}, {}}}
	got, err := Demean(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 1}, got.Traces[0].Samples)
	assert.Equal(t, []float64{1, 2, 3}, s.Traces[0].Samples)
}
