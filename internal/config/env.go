// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads the configuration from the process environment following
// the env and envPrefix tags of [StructuredConfig], e.g. REMOTE_TOKEN or
// WORKERS_AUTO_PUSH_INTERVAL. Unset variables leave zero values.
func parseEnv() (*StructuredConfig, error) {
	cfg, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
