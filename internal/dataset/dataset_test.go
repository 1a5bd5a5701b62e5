package dataset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {

	type test struct {
		ds  Dataset
		err error
	}

	tests := map[string]test{
		"ok": {
			ds: Dataset{Examples: []Example{{Features: FeatureVector{1, 2}, Target: 1}, {Features: FeatureVector{3, 4}}}},
		},
		"empty": {
			ds:  Dataset{},
			err: ErrEmptyDataset,
		},
		"no features": {
			ds:  Dataset{Examples: []Example{{Target: 1}}},
			err: ErrLengthMismatch,
		},
		"ragged": {
			ds:  Dataset{Examples: []Example{{Features: FeatureVector{1, 2}}, {Features: FeatureVector{3}}}},
			err: ErrLengthMismatch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.ds.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewCopiesFeatures(t *testing.T) {
	rows := [][]float64{{1, 2}}
	ds, err := New("copy", rows, []float64{3})
	require.NoError(t, err)
	rows[0][0] = 99
	assert.Equal(t, 1.0, ds.Examples[0].Features[0])

	_, err = New("short", rows, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestBuiltin(t *testing.T) {
	for name, f := range map[string]int{"linear": 1, "study-sleep": 2, "multi": 2, "or": 2} {
		ds, ok := Builtin(name)
		require.True(t, ok, name)
		assert.Equal(t, 4, ds.Len())
		assert.Equal(t, f, ds.Features())
		assert.NoError(t, ds.Validate())
	}
	_, ok := Builtin("xor")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "or.yaml")
	mustWrite(t, path, `
examples:
  - features: [0, 0]
    target: 0
  - features: [1, 1]
    target: 1
`)
	ds, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "or.yaml", ds.Name)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, FeatureVector{1, 1}, ds.Examples[1].Features)
	assert.Equal(t, 1.0, ds.Examples[1].Target)
}

func TestLoadFileRejects(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	mustWrite(t, empty, "")
	_, err := LoadFile(empty)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	ragged := filepath.Join(dir, "ragged.yaml")
	mustWrite(t, ragged, "examples:\n  - features: [1]\n  - features: [1, 2]\n")
	_, err = LoadFile(ragged)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	unknown := filepath.Join(dir, "unknown.yaml")
	mustWrite(t, unknown, "rows: []\n")
	_, err = LoadFile(unknown)
	assert.Error(t, err)
}

func TestLoadDirectoryConcatenatesShards(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "b.yaml"), "examples:\n  - features: [3]\n    target: 6\n")
	mustWrite(t, filepath.Join(dir, "a.yaml"), "examples:\n  - features: [1]\n    target: 2\n  - features: [2]\n    target: 4\n")

	ds, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, []float64{2, 4, 6}, []float64{ds.Examples[0].Target, ds.Examples[1].Target, ds.Examples[2].Target})

	mustWrite(t, filepath.Join(dir, "c.yaml"), "examples:\n  - features: [1, 2]\n    target: 0\n")
	_, err = Load(dir)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Load(t.TempDir())
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, StudySleep()))
	assert.True(t, strings.Contains(buf.String(), "study-sleep"))

	ds, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, StudySleep(), ds)
}

func TestOpen(t *testing.T) {
	ds, err := Open("builtin:or")
	require.NoError(t, err)
	assert.Equal(t, OR(), ds)

	_, err = Open("builtin:xor")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "one.yaml")
	mustWrite(t, path, "examples:\n  - features: [1]\n    target: 2\n")
	ds, err = Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}
