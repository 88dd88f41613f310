package dataset

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	windows := [][][]float64{
		{{1, 0, 0.5}, {1, 1, 0.7}},
		{{2, 0, 0.1}, {2, 1, 0.2}},
	}

	path := filepath.Join(t.TempDir(), "train.json")
	bytes, err := json.Marshal(windows)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := os.WriteFile(path, bytes, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	data, err := Load(path)
	if err != nil {
		t.Fatalf("the error should not be returned, got %v", err)
	}
	n, tt, d := data.Dims()
	if n != 2 || tt != 2 || d != 3 {
		t.Errorf("dims got (%d, %d, %d), expected (2, 2, 3)", n, tt, d)
	}
	if got := data.At(1, 1, 2); got != 0.2 {
		t.Errorf("At(1, 1, 2) got %v, expected 0.2", got)
	}
}

func TestLoadGzip(t *testing.T) {
	windows := [][][]float64{
		{{1, 0, 0.5}},
	}

	path := filepath.Join(t.TempDir(), "train.json.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	gz := gzip.NewWriter(f)
	if err := json.NewEncoder(gz).Encode(windows); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}

	data, err := Load(path)
	if err != nil {
		t.Fatalf("the error should not be returned, got %v", err)
	}
	if n, _, _ := data.Dims(); n != 1 {
		t.Errorf("got %d windows, expected 1", n)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed_json", content: `[[[1, 2`},
		{name: "ragged", content: `[[[1, 2], [1]]]`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(path, []byte(test.content), 0o600); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("an error must be returned for invalid input")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Errorf("an error must be returned for a missing file")
	}
}
