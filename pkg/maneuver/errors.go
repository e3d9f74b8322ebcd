// pkg/maneuver/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package maneuver

import "errors"

var (
	ErrNodeNotBuilt = errors.New("maneuver: tree has no root; build the tree before calling ProgressTo")
)
