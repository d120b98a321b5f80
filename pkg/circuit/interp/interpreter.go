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
package interp

import (
	"fmt"
	"math/big"

	"github.com/consensys/go-circuit/pkg/circuit/ast"
	"github.com/consensys/go-circuit/pkg/circuit/report"
	"github.com/consensys/go-circuit/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// Flags controls the behaviour of the interpreter.
type Flags struct {
	// Verbose enables logging of each evaluated expression.
	Verbose bool
	// Inspect enables additional sanity checking of evaluated values.
	Inspect bool
}

// Interpreter evaluates expressions which must yield a compile-time constant,
// such as array dimensions.  All arithmetic is performed modulo a given prime,
// and the result is a field element in the range [0,p).  Expressions can refer
// to variables bound in the environment, but cannot call functions or access
// components.
type Interpreter struct{}

// Execute evaluates a given expression with respect to a given environment.
// If evaluation fails, then nil is returned along with one or more reports
// explaining why.
func (p Interpreter) Execute(expr ast.Expression, program *ast.Program, env *Environment, flags Flags,
	prime field.Prime) (*big.Int, report.Collection) {
	//
	var (
		e       = evaluator{program, env, flags, prime, nil}
		val, ok = e.evaluate(expr)
	)
	//
	if !ok {
		return nil, e.reports
	} else if flags.Verbose {
		log.Debugf("constant expression %s evaluated to %s", expr.Lisp().String(false), val.String())
	}
	//
	if flags.Inspect && (val.Sign() < 0 || val.Cmp(prime.Modulus) >= 0) {
		panic(fmt.Sprintf("constant %s outside of field %s", val.String(), prime.Name))
	}
	//
	return val, nil
}

// evaluator holds the state for a single execution.
type evaluator struct {
	program *ast.Program
	env     *Environment
	flags   Flags
	prime   field.Prime
	reports report.Collection
}

func (p *evaluator) evaluate(expr ast.Expression) (*big.Int, bool) {
	switch e := expr.(type) {
	case *ast.Number:
		var val big.Int
		return val.Mod(&e.Value, p.prime.Modulus), true
	case *ast.Variable:
		return p.evaluateVariable(e)
	case *ast.InfixOp:
		return p.evaluateInfix(e)
	case *ast.PrefixOp:
		return p.evaluatePrefix(e)
	case *ast.InlineSwitch:
		cond, ok := p.evaluate(e.Cond)
		//
		if !ok {
			return nil, false
		} else if cond.Sign() != 0 {
			return p.evaluate(e.IfTrue)
		}
		//
		return p.evaluate(e.IfFalse)
	case *ast.Call:
		if p.program != nil && p.program.Function(e.ID) == nil {
			return p.fail(e, report.UNKNOWN_VARIABLE, fmt.Sprintf("unknown function %s", e.ID))
		}
		//
		return p.fail(e, report.NON_CONSTANT_EXPRESSION, fmt.Sprintf("call to %s is not a constant expression", e.ID))
	case *ast.BusCall:
		return p.fail(e, report.NON_CONSTANT_EXPRESSION, "bus construction is not a constant expression")
	case *ast.ArrayInLine, *ast.UniformArray:
		return p.fail(e, report.NON_CONSTANT_EXPRESSION, "expected a scalar, found an array")
	default:
		panic("unknown expression encountered")
	}
}

func (p *evaluator) evaluateVariable(e *ast.Variable) (*big.Int, bool) {
	slice, ok := p.env.Lookup(e.Name)
	//
	if !ok {
		return p.fail(e, report.UNKNOWN_VARIABLE, fmt.Sprintf("unknown variable %s", e.Name))
	}
	//
	for _, access := range e.Access {
		if !access.IsArrayAccess() {
			return p.fail(e, report.NON_CONSTANT_EXPRESSION, fmt.Sprintf("field access %s.%s is not a constant expression",
				e.Name, access.Field))
		}
		//
		index, ok := p.evaluate(access.Index)
		//
		if !ok {
			return nil, false
		} else if !index.IsUint64() {
			return p.fail(access.Index, report.INVALID_ACCESS, fmt.Sprintf("invalid index %s", index.String()))
		}
		//
		var err error
		//
		if slice, err = slice.Index(uint(index.Uint64())); err != nil {
			return p.fail(access.Index, report.INVALID_ACCESS, err.Error())
		}
	}
	//
	if !slice.IsScalar() {
		return p.fail(e, report.INVALID_ACCESS, fmt.Sprintf("variable %s is not a scalar", e.Name))
	}
	//
	var val big.Int
	//
	return val.Set(slice.Scalar()), true
}

func (p *evaluator) evaluatePrefix(e *ast.PrefixOp) (*big.Int, bool) {
	var (
		result  big.Int
		rhs, ok = p.evaluate(e.Rhe)
		modulus = p.prime.Modulus
	)
	//
	if !ok {
		return nil, false
	}
	//
	switch e.Op {
	case ast.NEG:
		result.Neg(rhs)
	case ast.BOOL_NOT:
		result.SetUint64(boolToUint(rhs.Sign() == 0))
	case ast.COMPLEMENT:
		result.Xor(rhs, p.mask())
	default:
		panic("unreachable")
	}
	//
	return result.Mod(&result, modulus), true
}

func (p *evaluator) evaluateInfix(e *ast.InfixOp) (*big.Int, bool) {
	var (
		result  big.Int
		modulus = p.prime.Modulus
	)
	//
	lhs, lok := p.evaluate(e.Lhe)
	rhs, rok := p.evaluate(e.Rhe)
	//
	if !lok || !rok {
		return nil, false
	}
	//
	switch e.Op {
	case ast.ADD:
		result.Add(lhs, rhs)
	case ast.SUB:
		result.Sub(lhs, rhs)
	case ast.MUL:
		result.Mul(lhs, rhs)
	case ast.DIV:
		if rhs.Sign() == 0 {
			return p.fail(e, report.DIVISION_BY_ZERO, "division by zero")
		}
		//
		result.Mul(lhs, new(big.Int).ModInverse(rhs, modulus))
	case ast.INT_DIV:
		if rhs.Sign() == 0 {
			return p.fail(e, report.DIVISION_BY_ZERO, "division by zero")
		}
		//
		result.Quo(lhs, rhs)
	case ast.MOD:
		if rhs.Sign() == 0 {
			return p.fail(e, report.DIVISION_BY_ZERO, "division by zero")
		}
		//
		result.Rem(lhs, rhs)
	case ast.POW:
		result.Exp(lhs, rhs, modulus)
	case ast.SHIFT_L:
		p.shift(&result, lhs, rhs, true)
	case ast.SHIFT_R:
		p.shift(&result, lhs, rhs, false)
	case ast.LESSER_EQ:
		result.SetUint64(boolToUint(p.compare(lhs, rhs) <= 0))
	case ast.GREATER_EQ:
		result.SetUint64(boolToUint(p.compare(lhs, rhs) >= 0))
	case ast.LESSER:
		result.SetUint64(boolToUint(p.compare(lhs, rhs) < 0))
	case ast.GREATER:
		result.SetUint64(boolToUint(p.compare(lhs, rhs) > 0))
	case ast.EQ:
		result.SetUint64(boolToUint(lhs.Cmp(rhs) == 0))
	case ast.NOT_EQ:
		result.SetUint64(boolToUint(lhs.Cmp(rhs) != 0))
	case ast.BOOL_OR:
		result.SetUint64(boolToUint(lhs.Sign() != 0 || rhs.Sign() != 0))
	case ast.BOOL_AND:
		result.SetUint64(boolToUint(lhs.Sign() != 0 && rhs.Sign() != 0))
	case ast.BIT_OR:
		result.Or(lhs, rhs)
	case ast.BIT_AND:
		result.And(lhs, rhs)
	case ast.BIT_XOR:
		result.Xor(lhs, rhs)
	default:
		panic("unreachable")
	}
	//
	return result.Mod(&result, modulus), true
}

// Shift a given value by a given amount.  A shift amount in the upper half of
// the field is interpreted as a negative shift in the opposite direction.
func (p *evaluator) shift(result *big.Int, val *big.Int, amount *big.Int, left bool) {
	if amount.Cmp(p.prime.Half()) > 0 {
		amount = new(big.Int).Sub(p.prime.Modulus, amount)
		left = !left
	}
	//
	switch {
	case left:
		// val * 2^amount, which avoids materialising huge intermediates.
		pow := new(big.Int).Exp(big.NewInt(2), amount, p.prime.Modulus)
		result.Mul(val, pow)
	case !amount.IsUint64() || amount.Uint64() >= uint64(p.prime.BitWidth()):
		result.SetUint64(0)
	default:
		result.Rsh(val, uint(amount.Uint64()))
	}
}

// Compare two field elements as signed integers, where elements in the upper
// half of the field are considered negative.
func (p *evaluator) compare(lhs *big.Int, rhs *big.Int) int {
	return p.signed(lhs).Cmp(p.signed(rhs))
}

func (p *evaluator) signed(val *big.Int) *big.Int {
	if val.Cmp(p.prime.Half()) > 0 {
		return new(big.Int).Sub(val, p.prime.Modulus)
	}
	//
	return val
}

// Mask covering all bits of the field.
func (p *evaluator) mask() *big.Int {
	var mask big.Int
	//
	mask.Lsh(big.NewInt(1), p.prime.BitWidth())
	//
	return mask.Sub(&mask, big.NewInt(1))
}

func (p *evaluator) fail(e ast.Expression, code report.Code, msg string) (*big.Int, bool) {
	var (
		meta = e.Metadata()
		r    = report.Error(code, msg)
	)
	//
	r.AddPrimary(meta.File, meta.Span, "found here")
	p.reports.Append(r)
	//
	return nil, false
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	//
	return 0
}
