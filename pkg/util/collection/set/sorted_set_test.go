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
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SortedSet_01(t *testing.T) {
	set := NewSortedSet[string]()
	//
	assert.True(t, set.Insert("y"))
	assert.True(t, set.Insert("x"))
	assert.False(t, set.Insert("y"))
	assert.Equal(t, []string{"x", "y"}, set.ToArray())
	assert.Equal(t, 2, set.Len())
}

func Test_SortedSet_02(t *testing.T) {
	set := NewSortedSet[string]()
	set.Insert("a")
	//
	assert.False(t, set.Remove("b"))
	assert.True(t, set.Remove("a"))
	assert.False(t, set.Contains("a"))
	assert.Equal(t, 0, set.Len())
}

// Returned arrays are not affected by later updates.
func Test_SortedSet_03(t *testing.T) {
	set := NewSortedSet[uint]()
	set.Insert(1)
	//
	items := set.ToArray()
	set.Insert(0)
	//
	assert.Equal(t, []uint{1}, items)
}

// Compare against a reference model over random operations.
func Test_SortedSet_04(t *testing.T) {
	var (
		rng   = rand.New(rand.NewSource(1))
		set   = NewSortedSet[int]()
		model = make(map[int]bool)
	)
	//
	for range 5000 {
		v := rng.Intn(64)
		//
		if rng.Intn(3) == 0 {
			assert.Equal(t, model[v], set.Remove(v))
			delete(model, v)
		} else {
			assert.Equal(t, !model[v], set.Insert(v))
			model[v] = true
		}
	}
	//
	items := set.ToArray()
	//
	assert.True(t, slices.IsSorted(items))
	assert.Equal(t, len(model), len(items))
	//
	for _, v := range items {
		assert.True(t, model[v], "unexpected item %d", v)
	}
}
