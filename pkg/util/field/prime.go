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
	"strings"

	bls12_377 "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	bls12_381 "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	bn254 "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// BN254 is the scalar field of the BN254 (a.k.a. alt_bn128) curve.  This is the
// defacto default field for circuits.
var BN254 = Prime{"BN254", bn254.Modulus()}

// BLS12_377 is the scalar field of the BLS12-377 curve.
var BLS12_377 = Prime{"BLS12_377", bls12_377.Modulus()}

// BLS12_381 is the scalar field of the BLS12-381 curve.
var BLS12_381 = Prime{"BLS12_381", bls12_381.Modulus()}

// GOLDILOCKS is the 64bit prime field 2^64 - 2^32 + 1.
var GOLDILOCKS = Prime{"GOLDILOCKS", goldilocks.Modulus()}

// PRIMES determines the set of supported prime fields.
var PRIMES = []Prime{
	BN254,
	BLS12_377,
	BLS12_381,
	GOLDILOCKS,
}

// Prime identifies a prime field by name, along with its modulus.  All
// arithmetic performed when evaluating constant expressions is carried out
// modulo this prime.
type Prime struct {
	// Name suitable for identifying the field.  This is only really used for
	// improving error reporting, etc.
	Name string
	// Modulus of the field.
	Modulus *big.Int
}

// Half returns (p-1)/2, which is the largest value considered positive when
// interpreting field elements as signed integers.
func (p Prime) Half() *big.Int {
	var half big.Int
	//
	half.Sub(p.Modulus, big.NewInt(1))
	//
	return half.Rsh(&half, 1)
}

// BitWidth returns the number of bits required to represent the modulus.
func (p Prime) BitWidth() uint {
	return uint(p.Modulus.BitLen())
}

// GetPrime returns the prime field corresponding with the given name (matched
// case insensitively), or nil if no such field exists.
func GetPrime(name string) *Prime {
	for i := range PRIMES {
		if strings.EqualFold(PRIMES[i].Name, name) {
			return &PRIMES[i]
		}
	}
	//
	return nil
}
