package registry

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/csvlab/csvlab/pkg/csv"
	"github.com/csvlab/csvlab/pkg/profile"
	"github.com/csvlab/csvlab/pkg/quality"
	"github.com/csvlab/csvlab/pkg/util"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Dataset is a registered CSV file with its computed quality profile.
type Dataset struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Path    string           `json:"path"`
	Profile *profile.Profile `json:"profile"`

	hash string
}

func (d *Dataset) Hash() string {
	return d.hash
}

var (
	datasets      = make(map[string]*Dataset)
	datasetsMutex sync.RWMutex
)

// Datasets returns the registered datasets sorted by name.
func Datasets() []*Dataset {
	datasetsMutex.RLock()
	defer datasetsMutex.RUnlock()

	all := make([]*Dataset, 0, len(datasets))
	for _, d := range datasets {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})

	return all
}

func GetDataset(name string) *Dataset {
	datasetsMutex.RLock()
	defer datasetsMutex.RUnlock()

	return datasets[name]
}

func CreateOrUpdateDataset(dataset *Dataset) {
	datasetsMutex.Lock()
	defer datasetsMutex.Unlock()

	datasets[dataset.Name] = dataset
}

func RemoveDataset(name string) {
	datasetsMutex.Lock()
	defer datasetsMutex.Unlock()

	delete(datasets, name)
}

func RemoveDatasetByPath(path string) {
	datasetsMutex.Lock()
	defer datasetsMutex.Unlock()

	for name, dataset := range datasets {
		if dataset.Path == path {
			delete(datasets, name)
			return
		}
	}
}

// DatasetName derives the registry name of a CSV file from its path.
func DatasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadDatasetFromFile reads and profiles a CSV file.
func LoadDatasetFromFile(path string, th quality.Thresholds) (*Dataset, error) {
	fileHash, err := util.MD5Hash(path)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for dataset '%s': %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset '%s': %w", path, err)
	}
	defer file.Close()

	table, err := csv.ReadTable(file, ',')
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset '%s': %w", path, err)
	}

	return &Dataset{
		ID:      uuid.NewString(),
		Name:    DatasetName(path),
		Path:    path,
		Profile: profile.Build(table, th),
		hash:    fileHash,
	}, nil
}

// ScanDir profiles every CSV file in dir and registers it. A missing
// directory means no datasets.
func ScanDir(dir string, th quality.Thresholds) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	g := new(errgroup.Group)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		g.Go(func() error {
			dataset, err := LoadDatasetFromFile(path, th)
			if err != nil {
				// A bad file should not block the rest of the scan
				log.Println(err)
				return nil
			}
			CreateOrUpdateDataset(dataset)
			return nil
		})
	}

	return g.Wait()
}
