package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/sortstep/internal/step"
)

// marshalArray converts an int array to canonical JSON TEXT for storage.
// Uses RFC 8785 canonical JSON for deterministic serialization.
func marshalArray(arr []int) (string, error) {
	if arr == nil {
		arr = []int{}
	}
	data, err := step.MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("marshal array: %w", err)
	}
	return string(data), nil
}

// unmarshalArray parses canonical JSON TEXT back into an int array.
// Returns an empty (non-nil) slice for "[]".
func unmarshalArray(data string) ([]int, error) {
	arr := []int{}
	if data == "" {
		return arr, nil
	}
	if err := json.Unmarshal([]byte(data), &arr); err != nil {
		return nil, fmt.Errorf("unmarshal array: %w", err)
	}
	return arr, nil
}
