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
package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Prime_01(t *testing.T) {
	var expected big.Int
	//
	expected.SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)
	//
	prime := GetPrime("bn254")
	require.NotNil(t, prime)
	assert.Equal(t, 0, prime.Modulus.Cmp(&expected))
	assert.Equal(t, uint(254), prime.BitWidth())
}

func Test_Prime_02(t *testing.T) {
	var expected big.Int
	// 2^64 - 2^32 + 1
	expected.Lsh(big.NewInt(1), 64)
	expected.Sub(&expected, new(big.Int).Lsh(big.NewInt(1), 32))
	expected.Add(&expected, big.NewInt(1))
	//
	prime := GetPrime("GOLDILOCKS")
	require.NotNil(t, prime)
	assert.Equal(t, 0, prime.Modulus.Cmp(&expected))
}

func Test_Prime_03(t *testing.T) {
	assert.Nil(t, GetPrime("GF_251"))
}

func Test_Prime_04(t *testing.T) {
	var half = BN254.Half()
	// 2 * half + 1 == p
	half.Lsh(half, 1)
	half.Add(half, big.NewInt(1))
	//
	assert.Equal(t, 0, half.Cmp(BN254.Modulus))
}
