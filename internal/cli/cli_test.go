// SPDX-License-Identifier: MIT

package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvspace/internal/cli"
	"github.com/katalvlaran/lvspace/space"
)

const descriptorYAML = `
kind: dict
spaces:
  - key: a
    space: {kind: multi_binary, n: 3}
  - key: b
    space: {kind: multi_binary, n: [2, 2]}
`

func writeDescriptor(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "space.yaml")
	require.NoError(t, os.WriteFile(path, []byte(descriptorYAML), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SPACECTL_SPACE", "")
	t.Setenv("SPACECTL_SEED", "")
	t.Setenv("SPACECTL_COUNT", "")
	os.Unsetenv("SPACECTL_SEED")
	os.Unsetenv("SPACECTL_COUNT")

	cfg, err := cli.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Count)
	assert.Nil(t, cfg.Seed)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SPACECTL_SPACE", "space.yaml")
	t.Setenv("SPACECTL_SEED", "42")
	t.Setenv("SPACECTL_COUNT", "5")

	cfg, err := cli.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "space.yaml", cfg.SpaceFile)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	assert.Equal(t, 5, cfg.Count)
}

func TestLoadConfigBadCount(t *testing.T) {
	t.Setenv("SPACECTL_COUNT", "many")
	_, err := cli.LoadConfig()
	require.Error(t, err)
}

func TestLoadSpace(t *testing.T) {
	sp, err := cli.LoadSpace(writeDescriptor(t))
	require.NoError(t, err)
	assert.Equal(t, `Dict("a": MultiBinary(3), "b": MultiBinary((2, 2)))`, sp.String())

	_, err = cli.LoadSpace("")
	require.Error(t, err)
	_, err = cli.LoadSpace(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSampleDeterministic(t *testing.T) {
	sp, err := cli.LoadSpace(writeDescriptor(t))
	require.NoError(t, err)

	seed := int64(7)
	r1, err := cli.Sample(sp, &seed, 4)
	require.NoError(t, err)
	r2, err := cli.Sample(sp, &seed, 4)
	require.NoError(t, err)

	assert.JSONEq(t, string(r1.Batch), string(r2.Batch))
	assert.Equal(t, r1.Seed, r2.Seed)
	assert.NotEqual(t, r1.ID, r2.ID)
	assert.Len(t, r1.Seed.Children, 2)
}

func TestSampleThenCheck(t *testing.T) {
	sp, err := cli.LoadSpace(writeDescriptor(t))
	require.NoError(t, err)

	rec, err := cli.Sample(sp, nil, 3)
	require.NoError(t, err)
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	got, err := cli.Check(sp, data)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true}, got)

	// a bare batch is accepted as well
	got, err = cli.Check(sp, rec.Batch)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestCheckReportsNonMembers(t *testing.T) {
	sp, err := space.NewMultiBinary(2)
	require.NoError(t, err)

	got, err := cli.Check(sp, []byte(`[[0, 1], [1, 3]]`))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, got)

	_, err = cli.Check(sp, []byte(`{not json`))
	require.Error(t, err)
}

func TestCheckBareBatchWithBatchKey(t *testing.T) {
	sp, err := space.NewDict([]space.Pair{
		{Key: "batch", Space: mustBinary(t, 1)},
		{Key: "x", Space: mustBinary(t, 1)},
	})
	require.NoError(t, err)

	got, err := cli.Check(sp, []byte(`{"batch": [[1], [0]], "x": [[0], [1]]}`))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, got)

	// the same space still accepts its own records
	rec, err := cli.Sample(sp, nil, 2)
	require.NoError(t, err)
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	got, err = cli.Check(sp, data)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, got)
}

func mustBinary(t *testing.T, n any) *space.MultiBinary {
	t.Helper()
	sp, err := space.NewMultiBinary(n)
	require.NoError(t, err)

	return sp
}

func TestSampleNegativeCount(t *testing.T) {
	sp, err := space.NewMultiBinary(2)
	require.NoError(t, err)
	_, err = cli.Sample(sp, nil, -1)
	require.Error(t, err)
}
