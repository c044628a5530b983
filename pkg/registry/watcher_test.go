package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/csvlab/csvlab/pkg/quality"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func TestProcessNotifyEvent(t *testing.T) {
	th := quality.DefaultThresholds()

	dir := t.TempDir()
	path := filepath.Join(dir, "watched.csv")

	content, err := os.ReadFile("../../test/assets/data/csv/people.csv")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0666); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		RemoveDataset("watched")
	})

	t.Run("create registers the dataset", func(t *testing.T) {
		err := processNotifyEvent(fsnotify.Event{Name: path, Op: fsnotify.Create}, th)
		assert.NoError(t, err)

		registered := GetDataset("watched")
		assert.NotNil(t, registered)
		assert.Equal(t, 4, registered.Profile.Summary.NRows)
	})

	t.Run("write with unchanged content keeps the registration", func(t *testing.T) {
		before := GetDataset("watched")

		err := processNotifyEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}, th)
		assert.NoError(t, err)

		after := GetDataset("watched")
		assert.Equal(t, before.ID, after.ID)
		assert.Equal(t, before.Hash(), after.Hash())
	})

	t.Run("write with changed content reloads the profile", func(t *testing.T) {
		before := GetDataset("watched")

		changed := append(append([]byte{}, content...), []byte("40,180,C\n")...)
		if err := os.WriteFile(path, changed, 0666); err != nil {
			t.Fatal(err)
		}

		err := processNotifyEvent(fsnotify.Event{Name: path, Op: fsnotify.Write}, th)
		assert.NoError(t, err)

		after := GetDataset("watched")
		assert.NotEqual(t, before.ID, after.ID)
		assert.NotEqual(t, before.Hash(), after.Hash())
		assert.Equal(t, 5, after.Profile.Summary.NRows)
	})

	t.Run("remove drops the dataset", func(t *testing.T) {
		err := processNotifyEvent(fsnotify.Event{Name: path, Op: fsnotify.Remove}, th)
		assert.NoError(t, err)

		assert.Nil(t, GetDataset("watched"))
	})

	t.Run("non-csv files are ignored", func(t *testing.T) {
		err := processNotifyEvent(fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Create}, th)
		assert.NoError(t, err)
	})
}
