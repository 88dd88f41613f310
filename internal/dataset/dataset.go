package dataset

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-tspc/tspc/internal/tensor"
)

// Load reads a windowed dataset from a JSON file holding nested
// (windows, steps, columns) float arrays. Files ending in .gz are
// transparently gunzipped.
func Load(path string) (*tensor.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("dataset: gunzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	var windows [][][]float64
	if err := json.NewDecoder(r).Decode(&windows); err != nil {
		return nil, fmt.Errorf("dataset: decode %s: %w", path, err)
	}

	data, err := tensor.FromSlice(windows)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}

	return data, nil
}
