package registry

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/csvlab/csvlab/pkg/quality"
	"github.com/fsnotify/fsnotify"
)

func ensureDatasetsPathExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0766)
		if err != nil {
			return err
		}
	}
	return nil
}

// WatchDatasets reloads dataset profiles as CSV files in dir change.
func WatchDatasets(dir string, th quality.Thresholds) error {
	if err := ensureDatasetsPathExists(dir); err != nil {
		// Ignore this error, just don't watch
		return nil
	}

	go func() {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Println(fmt.Errorf("error starting '%s' watcher: %w", dir, err))
		}
		defer watcher.Close()

		if err := watcher.Add(dir); err != nil {
			log.Println(fmt.Errorf("error starting '%s' watcher: %w", dir, err))
		}
		for {
			select {
			case event := <-watcher.Events:
				err := processNotifyEvent(event, th)
				if err != nil {
					log.Println(err)
				}
			case err := <-watcher.Errors:
				log.Println(fmt.Errorf("error from '%s' watcher: %w", dir, err))
			}
		}
	}()

	return nil
}

func processNotifyEvent(event fsnotify.Event, th quality.Thresholds) error {
	path := event.Name
	if filepath.Ext(path) != ".csv" {
		// Ignore non-CSV files
		return nil
	}

	switch event.Op {
	case fsnotify.Create:
		dataset, err := LoadDatasetFromFile(path, th)
		if err != nil {
			return err
		}
		CreateOrUpdateDataset(dataset)
	case fsnotify.Write:
		newDataset, err := LoadDatasetFromFile(path, th)
		if err != nil {
			return err
		}
		existingDataset := GetDataset(newDataset.Name)
		if existingDataset != nil && newDataset.Hash() == existingDataset.Hash() {
			// Nothing changed, ignore
			break
		}
		CreateOrUpdateDataset(newDataset)
	case fsnotify.Remove:
		RemoveDatasetByPath(path)
		return nil
	}

	return nil
}
