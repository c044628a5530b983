package util

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
)

// MD5Hash returns the hex-encoded MD5 digest of a file's contents.
// Used for change detection, not integrity.
func MD5Hash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
