// pkg/util/generic_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"slices"
	"testing"
)

func TestSortedMapKeys(t *testing.T) {
	m := map[int]string{
		3: "three",
		1: "one",
		2: "two",
		4: "four",
	}

	keys := SortedMapKeys(m)
	expected := []int{1, 2, 3, 4}

	if !slices.Equal(keys, expected) {
		t.Errorf("SortedMapKeys returned %v, expected %v", keys, expected)
	}
}

func TestDuplicateSlice(t *testing.T) {
	original := []int{1, 2, 3}
	dup := DuplicateSlice(original)

	if !slices.Equal(original, dup) {
		t.Errorf("DuplicateSlice should produce an identical slice")
	}

	dup[0] = 99
	if original[0] == 99 {
		t.Errorf("modifying the duplicate should not affect the original")
	}
}
