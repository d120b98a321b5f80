// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package set

import (
	"cmp"
	"slices"
)

// SortedSet is an array of elements kept in sorted order, without duplicates.
type SortedSet[T cmp.Ordered] []T

// NewSortedSet returns an empty sorted set.
func NewSortedSet[T cmp.Ordered]() *SortedSet[T] {
	return &SortedSet[T]{}
}

// Contains returns true if a given element is in the set.
//
//nolint:revive
func (p *SortedSet[T]) Contains(element T) bool {
	_, found := slices.BinarySearch(*p, element)
	return found
}

// Insert an element into this sorted set.  This returns false if the element
// was already present.
//
//nolint:revive
func (p *SortedSet[T]) Insert(element T) bool {
	// Find index where element either does occur, or should occur.
	i, found := slices.BinarySearch(*p, element)
	//
	if !found {
		*p = slices.Insert(*p, i, element)
	}
	//
	return !found
}

// Remove an element from this sorted set.  This returns false if the element
// was not present.
//
//nolint:revive
func (p *SortedSet[T]) Remove(element T) bool {
	i, found := slices.BinarySearch(*p, element)
	//
	if found {
		*p = slices.Delete(*p, i, i+1)
	}
	//
	return found
}

// Len returns the number of elements in this set.
func (p *SortedSet[T]) Len() int {
	return len(*p)
}

// ToArray returns the elements of this set, in sorted order.
func (p *SortedSet[T]) ToArray() []T {
	return slices.Clone(*p)
}
