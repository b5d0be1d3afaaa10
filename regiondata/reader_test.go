package regiondata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	records := []RegionRecord{
		{Name: "Metro City", Population: 150000, Density: 0.8},
		{
			Name:       "Suburbs",
			Population: 55000,
			Density:    0.4,
			Boundary:   [][]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
		},
	}

	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, SaveRegions(path, records))

	loaded, err := LoadRegions(path)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestLoadRejectsBadRecords(t *testing.T) {
	dir := t.TempDir()

	writeFile := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("density out of range", func(t *testing.T) {
		path := writeFile("density.json", `[{"name":"A","population":100,"density":1.5}]`)
		_, err := LoadRegions(path)
		assert.Error(t, err)
	})

	t.Run("non-positive population", func(t *testing.T) {
		path := writeFile("population.json", `[{"name":"A","population":0,"density":0.5}]`)
		_, err := LoadRegions(path)
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		path := writeFile("name.json", `[{"name":"","population":100,"density":0.5}]`)
		_, err := LoadRegions(path)
		assert.Error(t, err)
	})

	t.Run("duplicate names", func(t *testing.T) {
		path := writeFile("dup.json", `[{"name":"A","population":100,"density":0.5},{"name":"A","population":200,"density":0.2}]`)
		_, err := LoadRegions(path)
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeFile("broken.json", `{"not":"a list"`)
		_, err := LoadRegions(path)
		assert.Error(t, err)
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadRegions(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestSaveEmptyPath(t *testing.T) {
	assert.Error(t, SaveRegions("", nil))
}
