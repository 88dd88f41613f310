package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimeStepClassificationSchema describes the classification task: which
// entity/time columns identify a step and the ordered set of target classes.
// The order of TargetClasses fixes the column order of every probability
// matrix produced by the classifier.
type TimeStepClassificationSchema struct {
	Title         string   `json:"title"`
	IDField       string   `json:"idField"`
	TimeField     string   `json:"timeField"`
	TargetField   string   `json:"targetField"`
	TargetClasses []string `json:"targetClasses"`
}

// NumClasses returns the width of the probability vectors.
func (s *TimeStepClassificationSchema) NumClasses() int {
	return len(s.TargetClasses)
}

// ClassName returns the label name for a class index.
func (s *TimeStepClassificationSchema) ClassName(idx int) (string, error) {
	if idx < 0 || idx >= len(s.TargetClasses) {
		return "", fmt.Errorf("schema: class index %d out of range, have %d classes", idx, len(s.TargetClasses))
	}
	return s.TargetClasses[idx], nil
}

func (s *TimeStepClassificationSchema) validate() error {
	if len(s.TargetClasses) < 2 {
		return fmt.Errorf("schema: at least 2 target classes required, found %d", len(s.TargetClasses))
	}
	return nil
}

// Load reads a schema definition from a JSON file.
func Load(path string) (*TimeStepClassificationSchema, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}

	var s TimeStepClassificationSchema
	if err := json.Unmarshal(bytes, &s); err != nil {
		return nil, fmt.Errorf("schema: decode %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	return &s, nil
}
