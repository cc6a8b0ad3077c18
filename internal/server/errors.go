// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package server

import "errors"

var (
	errNoAddressConfigured = errors.New("no listen address configured")
)
