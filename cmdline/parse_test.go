package cmdline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/spatial/r3"
)

func parse(t *testing.T, args ...string) (*Invocation, string, error) {
	t.Helper()
	var out bytes.Buffer
	inv, err := Parse(args, Options{Stdout: &out, Logger: zerolog.Nop()})
	return inv, out.String(), err
}

func TestParsePaths(t *testing.T) {
	inv, _, err := parse(t, "in.obj", "out.obj")
	require.NoError(t, err)
	assert.Equal(t, "in.obj", inv.Input)
	assert.Equal(t, "out.obj", inv.Output)
	assert.Equal(t, 0, inv.Constraints.Len())
	assert.NoError(t, inv.Validate())
}

func TestParseExtraPathReplacesOutput(t *testing.T) {
	inv, _, err := parse(t, "in.obj", "out.obj", "other.obj")
	require.NoError(t, err)
	assert.Equal(t, "in.obj", inv.Input)
	assert.Equal(t, "other.obj", inv.Output)
}

func TestParseMissingOutput(t *testing.T) {
	inv, _, err := parse(t, "in.obj")
	require.NoError(t, err)
	assert.ErrorIs(t, inv.Validate(), ErrMissingOutput)
}

func TestParseFixedPointsKeepOrderAndCap(t *testing.T) {
	inv, _, err := parse(t,
		"--fixedPoint", "1,2,3",
		"in.obj",
		"-p", "4,5,6",
		"--fixedPoint", "7,8,9",
		"out.obj",
	)
	require.NoError(t, err)

	c := inv.Constraints
	assert.Equal(t, 3, c.Len())
	eligible := c.Eligible()
	require.Len(t, eligible, 2)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, eligible[0].Position)
	assert.Equal(t, r3.Vec{X: 4, Y: 5, Z: 6}, eligible[1].Position)
	overflow := c.Overflow()
	require.Len(t, overflow, 1)
	assert.Equal(t, r3.Vec{X: 7, Y: 8, Z: 9}, overflow[0].Position)
	assert.Empty(t, c.Warnings())
	assert.Equal(t, "in.obj", inv.Input)
	assert.Equal(t, "out.obj", inv.Output)
}

func TestParseEligibleLimitOption(t *testing.T) {
	inv, err := Parse([]string{"-p", "1", "-p", "2", "-p", "3", "-c", "0 0 1 0 2 0"},
		Options{EligibleLimit: 3, Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.Len(t, inv.Constraints.Eligible(), 3)
	assert.True(t, inv.Constraints.Eligible()[2].HasTarget)
}

func TestParseTextureIndividualTokens(t *testing.T) {
	inv, out, err := parse(t,
		"-p", "1,2,3", "-p", "4,5,6",
		"--fixedTextureCoords", "0.1", "0.2", "0.3", "0.4",
		"in.obj", "out.obj",
	)
	require.NoError(t, err)

	eligible := inv.Constraints.Eligible()
	require.Len(t, eligible, 2)
	assert.True(t, eligible[0].HasTarget)
	assert.Equal(t, f64.Vec2{0.1, 0.2}, eligible[0].Target)
	assert.Equal(t, f64.Vec2{0.3, 0.4}, eligible[1].Target)
	assert.Equal(t, "in.obj", inv.Input)
	assert.Equal(t, "out.obj", inv.Output)

	assert.Contains(t, out, "given separately in individual arguments")
	assert.Contains(t, out, "Fixed texture coordinates #0: 0.1, 0.2\n")
	assert.Contains(t, out, "Fixed texture coordinates #1: 0.3, 0.4\n")
}

func TestParseTextureCombinedTokenMatchesIndividual(t *testing.T) {
	individual, _, err := parse(t, "-p", "1,2,3", "-p", "4,5,6", "-c", "0.1", "0.2", "0.3", "0.4", "a", "b")
	require.NoError(t, err)
	combined, out, err := parse(t, "-p", "1,2,3", "-p", "4,5,6", "-c", "0.1 0.2 0.3 0.4", "a", "b")
	require.NoError(t, err)

	assert.Equal(t, individual.Constraints.Eligible(), combined.Constraints.Eligible())
	assert.Equal(t, individual.Input, combined.Input)
	assert.Equal(t, individual.Output, combined.Output)
	assert.Contains(t, out, "given together in a single argument")
}

func TestParseTextureCombinedEmptyFieldsCount(t *testing.T) {
	for _, token := range []string{"0.1  0.2", " 0.1 0.2", "0.1 0.2  "} {
		_, _, err := parse(t, "-p", "0", "-c", token, "a", "b")
		assert.ErrorIs(t, err, ErrCoordinateCountMismatch, "%q", token)
	}
}

func TestParseTextureCombinedTrailingSpace(t *testing.T) {
	inv, _, err := parse(t, "-p", "0", "-c", "1 2 ")
	require.NoError(t, err)
	assert.Equal(t, f64.Vec2{1, 2}, inv.Constraints.Eligible()[0].Target)
	assert.Empty(t, inv.Constraints.Warnings())
}

func TestParseTextureCombinedEmptyFieldDefaultsToZero(t *testing.T) {
	// two eligible vertices take four fields, the empty one becomes 0
	inv, _, err := parse(t, "-p", "0", "-p", "1", "-c", "1  2 0")
	require.NoError(t, err)
	eligible := inv.Constraints.Eligible()
	assert.Equal(t, f64.Vec2{1, 0}, eligible[0].Target)
	assert.Equal(t, f64.Vec2{2, 0}, eligible[1].Target)
	warnings := inv.Constraints.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, 1, warnings[0].Field)
	assert.ErrorIs(t, warnings[0], ErrMalformedNumber)
}

func TestParseTextureCountMismatch(t *testing.T) {
	_, _, err := parse(t, "-p", "1,2,3", "-p", "4,5,6", "-c", "0.1 0.2 0.3", "in.obj", "out.obj")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCoordinateCountMismatch)
}

func TestParseTextureOnlyCountsEligible(t *testing.T) {
	// three fixed points but only two eligible: four values are expected
	inv, _, err := parse(t, "-p", "1", "-p", "2", "-p", "3", "-c", "1 2 3 4")
	require.NoError(t, err)
	assert.False(t, inv.Constraints.Overflow()[0].HasTarget)

	_, _, err = parse(t, "-p", "1", "-p", "2", "-p", "3", "-c", "1 2 3 4 5 6")
	assert.ErrorIs(t, err, ErrCoordinateCountMismatch)
}

func TestParseTextureWithoutFixedPoints(t *testing.T) {
	// no eligible vertex: individual mode consumes nothing, the token is a path
	inv, _, err := parse(t, "-c", "in.obj", "out.obj")
	require.NoError(t, err)
	assert.Equal(t, "in.obj", inv.Input)
	assert.Equal(t, "out.obj", inv.Output)
}

func TestParseTruncatedArguments(t *testing.T) {
	cases := map[string][]string{
		"fixed point without value":    {"in.obj", "out.obj", "--fixedPoint"},
		"texture without value":        {"-p", "1,2,3", "-c"},
		"texture with too few tokens":  {"-p", "1,2,3", "-p", "4,5,6", "-c", "0.1", "0.2", "0.3"},
		"preview without value":        {"in.obj", "out.obj", "--preview"},
		"report without value":         {"--report"},
		"texture without any eligible": {"-c"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := parse(t, args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTruncatedArgument)
		})
	}
}

func TestParseMalformedNumbersDefaultToZero(t *testing.T) {
	inv, out, err := parse(t, "-p", "1,abc,3", "-p", "4,5", "-c", "x", "0.5", "0.25", "0.75")
	require.NoError(t, err)

	eligible := inv.Constraints.Eligible()
	assert.Equal(t, r3.Vec{X: 1, Y: 0, Z: 3}, eligible[0].Position)
	assert.Equal(t, r3.Vec{X: 4, Y: 5, Z: 0}, eligible[1].Position)
	assert.Equal(t, f64.Vec2{0, 0.5}, eligible[0].Target)
	assert.True(t, strings.Contains(out, "#0: 0, 0.5"))

	warnings := inv.Constraints.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "-p", warnings[0].Flag)
	assert.Equal(t, 1, warnings[0].Field)
	assert.ErrorIs(t, warnings[0], ErrMalformedNumber)
	assert.Equal(t, "-c", warnings[1].Flag)
	assert.Equal(t, "x", warnings[1].Token)
	assert.ErrorIs(t, warnings[1], ErrMalformedNumber)
}

func TestParseWarnsOnShortPosition(t *testing.T) {
	var logs bytes.Buffer
	inv, err := Parse([]string{"-p", "1,2", "-p", "1,2,3"}, Options{Logger: zerolog.New(&logs)})
	require.NoError(t, err)
	assert.Empty(t, inv.Constraints.Warnings())
	assert.Equal(t, 1, strings.Count(logs.String(), "fewer than three coordinates"))
	assert.Contains(t, logs.String(), `"argument":"1,2"`)
}

func TestVerbose(t *testing.T) {
	assert.True(t, Verbose([]string{"-p", "1", "-v"}))
	assert.True(t, Verbose([]string{"--verbose", "in.obj"}))
	assert.False(t, Verbose([]string{"in.obj", "out.obj"}))
}

func TestParseFlags(t *testing.T) {
	inv, _, err := parse(t, "-v", "in.obj", "--preview", "uv.pdf", "--report", "run.json", "out.obj")
	require.NoError(t, err)
	assert.True(t, inv.Verbose)
	assert.Equal(t, "uv.pdf", inv.Preview)
	assert.Equal(t, "run.json", inv.Report)
	assert.Equal(t, "out.obj", inv.Output)
}
