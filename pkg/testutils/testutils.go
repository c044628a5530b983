package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const dotCsvLab = ".csvlab"

func EnsureTestCsvLabDirectory(t *testing.T) {
	// Ensure test config directory doesn't exist already so we don't hose it on cleanup
	_, err := os.Stat(dotCsvLab)
	if err == nil {
		t.Errorf(".csvlab directory already exists")
		return
	}

	datasetsPath := filepath.Join(dotCsvLab, "datasets")
	err = os.MkdirAll(datasetsPath, 0766)
	if err != nil {
		t.Error(err)
		return
	}
}

func CleanupTestCsvLabDirectory() {
	err := os.RemoveAll(dotCsvLab)
	if err != nil {
		fmt.Println(err)
	}
}
