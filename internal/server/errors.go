// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("control API address is not configured")
	errNoServersToRun      = errors.New("no servers to run")
)
