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
package termio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_AnsiEscape_01(t *testing.T) {
	escape := NewAnsiEscape()
	//
	assert.Equal(t, "", escape.Build())
	assert.Equal(t, "text", escape.Apply("text"))
}

func Test_AnsiEscape_02(t *testing.T) {
	escape := NewAnsiEscape().Bold().FgColour(TERM_RED)
	//
	assert.Equal(t, "\033[1;31m", escape.Build())
	assert.Equal(t, "\033[1;31mtext\033[0m", escape.Apply("text"))
}

// Escapes derived from a common base are independent.
func Test_AnsiEscape_03(t *testing.T) {
	var (
		base  = NewAnsiEscape().Bold()
		red   = base.FgColour(TERM_RED)
		green = base.Underline().FgColour(TERM_GREEN)
	)
	//
	assert.Equal(t, "\033[1m", base.Build())
	assert.Equal(t, "\033[1;31m", red.Build())
	assert.Equal(t, "\033[1;4;32m", green.Build())
}
