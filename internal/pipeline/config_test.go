package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tspc.toml")
	content := `
schema = "./schema.json"
train = "./train.json"
paddingValue = -1.0

[hyperparameters]
c = 0.5
encodeLen = 12
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fc, err := Config{ConfigPath: path}.LoadFile()
	if err != nil {
		t.Fatalf("the error should not be returned, got %v", err)
	}
	if fc.SchemaPath != "./schema.json" || fc.TrainPath != "./train.json" {
		t.Errorf("paths got (%q, %q), expected configured values", fc.SchemaPath, fc.TrainPath)
	}
	if fc.PaddingValue != -1.0 {
		t.Errorf("padding got %v, expected -1", fc.PaddingValue)
	}
	if fc.Hyperparameters.C != 0.5 || fc.Hyperparameters.EncodeLen != 12 {
		t.Errorf("hyperparameters got %+v, expected overridden c and encodeLen", fc.Hyperparameters)
	}
	// keys absent from the file keep their defaults
	if fc.Hyperparameters.MaxIter != 100 || !fc.Hyperparameters.Shuffle {
		t.Errorf("hyperparameter defaults lost: %+v", fc.Hyperparameters)
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("missing_schema", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tspc.toml")
		if err := os.WriteFile(path, []byte(`train = "./train.json"`), 0o600); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		if _, err := (Config{ConfigPath: path}).LoadFile(); err == nil {
			t.Errorf("an error must be returned when the schema path is missing")
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		if _, err := (Config{ConfigPath: filepath.Join(t.TempDir(), "absent.toml")}).LoadFile(); err == nil {
			t.Errorf("an error must be returned for a missing config file")
		}
	})
}
