package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Save writes qs to path, choosing the format from the extension:
// .csv or .xlsx.
func Save(path string, qs []Question) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteCSV(f, qs); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		return WriteXLSX(path, qs)
	default:
		return fmt.Errorf("unsupported dataset extension: %s", filepath.Ext(path))
	}
}

// Load reads a dataset written by Save.
func Load(path string) ([]Question, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset extension: %s", filepath.Ext(path))
	}
}
