package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/csvlab/csvlab/pkg/quality"
	"github.com/stretchr/testify/assert"
)

func TestDatasetName(t *testing.T) {
	assert.Equal(t, "people", DatasetName("/data/people.csv"))
	assert.Equal(t, "orders", DatasetName("orders.csv"))
}

func TestLoadDatasetFromFile(t *testing.T) {
	dataset, err := LoadDatasetFromFile("../../test/assets/data/csv/people.csv", quality.DefaultThresholds())
	assert.NoError(t, err)

	assert.Equal(t, "people", dataset.Name)
	assert.NotEmpty(t, dataset.ID)
	assert.NotEmpty(t, dataset.Hash())
	assert.Equal(t, 4, dataset.Profile.Summary.NRows)
	assert.True(t, dataset.Profile.Quality.TooFewRows)
}

func TestLoadDatasetFromFileMissing(t *testing.T) {
	_, err := LoadDatasetFromFile("../../test/assets/data/csv/nope.csv", quality.DefaultThresholds())
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	t.Cleanup(func() {
		RemoveDataset("people")
		RemoveDataset("orders")
	})

	people, err := LoadDatasetFromFile("../../test/assets/data/csv/people.csv", quality.DefaultThresholds())
	assert.NoError(t, err)
	orders, err := LoadDatasetFromFile("../../test/assets/data/csv/orders.csv", quality.DefaultThresholds())
	assert.NoError(t, err)

	CreateOrUpdateDataset(orders)
	CreateOrUpdateDataset(people)

	assert.Equal(t, people, GetDataset("people"))

	all := Datasets()
	assert.Equal(t, 2, len(all))
	// Sorted by name
	assert.Equal(t, "orders", all[0].Name)
	assert.Equal(t, "people", all[1].Name)

	RemoveDatasetByPath(people.Path)
	assert.Nil(t, GetDataset("people"))

	RemoveDataset("orders")
	assert.Nil(t, GetDataset("orders"))
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.csv", "b.csv"} {
		content, err := os.ReadFile("../../test/assets/data/csv/people.csv")
		assert.NoError(t, err)
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0666))
	}
	// Non-CSV files are ignored
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0666))

	t.Cleanup(func() {
		RemoveDataset("a")
		RemoveDataset("b")
	})

	err := ScanDir(dir, quality.DefaultThresholds())
	assert.NoError(t, err)

	assert.NotNil(t, GetDataset("a"))
	assert.NotNil(t, GetDataset("b"))
	assert.Nil(t, GetDataset("notes"))
}

func TestScanDirMissingDirectory(t *testing.T) {
	err := ScanDir(filepath.Join(t.TempDir(), "nope"), quality.DefaultThresholds())
	assert.NoError(t, err)
}
