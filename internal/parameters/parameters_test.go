package parameters

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParse(t *testing.T) {
	name, params := Parse("nn,file=weights.bin,adversarial,depth=2,,expr=a=b")
	assert.Equal(t, "nn", name)
	assert.Equal(t, Params{"file": "weights.bin", "adversarial": "", "depth": "2", "expr": "a=b"}, params)

	name, params = Parse("random")
	assert.Equal(t, "random", name)
	assert.Empty(t, params)
}

func TestGetAndPop(t *testing.T) {
	_, params := Parse("nn,depth=2,adversarial,randomness=0.5,file=w.bin,verbose=false")

	depth, err := PopParamOr(params, "depth", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, depth)
	_, found := params["depth"]
	assert.False(t, found)

	adversarial, err := GetParamOr(params, "adversarial", false)
	require.NoError(t, err)
	assert.True(t, adversarial)
	_, found = params["adversarial"]
	assert.True(t, found, "GetParamOr must not remove the key")

	verbose, err := PopParamOr(params, "verbose", true)
	require.NoError(t, err)
	assert.False(t, verbose)

	randomness, err := PopParamOr(params, "randomness", 0.0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, randomness)

	file, err := PopParamOr(params, "file", "")
	require.NoError(t, err)
	assert.Equal(t, "w.bin", file)

	hidden, err := PopParamOr(params, "hidden", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, hidden)

	err = CheckAllUsed(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adversarial")
	_, _ = PopParamOr(params, "adversarial", false)
	assert.NoError(t, CheckAllUsed(params))
}

func TestParseErrors(t *testing.T) {
	_, params := Parse("nn,depth=two,adversarial=maybe")
	_, err := GetParamOr(params, "depth", 1)
	assert.Error(t, err)
	_, err = GetParamOr(params, "adversarial", false)
	assert.Error(t, err)
}
