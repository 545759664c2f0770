// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package projection

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("error encoding projection file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("error encoding projection file: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(path string, data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedFile, path, err)
	}
	return nil
}
