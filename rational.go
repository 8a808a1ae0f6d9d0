/*
 * rational.go, part of gomag.
 *
 * Copyright 2026 The gomag authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package mag

import (
	"math"
	"math/big"

	"github.com/gomaglab/gomag/v3"
)

//A bunch of small arithmetic helpers for the automatic supercell
//sizing: rational approximation of propagation vector components and
//least common multiples of the resulting denominators.

//approxDenominator returns the smallest positive integer q, bounded by
//1/tol, such that q*x is within tol of an integer. The search walks
//the continued fraction convergents of x in exact big.Rat arithmetic;
//the first convergent meeting the tolerance has the smallest such
//denominator. If no convergent within the bound meets the tolerance
//(x is incommensurate at this tolerance) the denominator of the last
//convergent inside the bound is returned, as a best effort.
func approxDenominator(x, tol float64) int {
	if tol <= 0 {
		tol = defaultEpsilon
	}
	qmax := int(1 / tol)
	if qmax < 1 {
		qmax = 1
	}
	meets := func(q int) bool {
		f := float64(q) * x
		return math.Abs(f-math.Round(f)) <= tol
	}
	if meets(1) {
		return 1
	}
	r := new(big.Rat).SetFloat64(math.Abs(x))
	if r == nil { //NaN or Inf
		return 1
	}
	a := new(big.Int)
	rem := new(big.Rat).Set(r)
	//peel off the integer part: the zeroth convergent has denominator 1,
	//which was already tested above
	a.Quo(rem.Num(), rem.Denom())
	rem.Sub(rem, new(big.Rat).SetInt(a))
	if rem.Sign() == 0 {
		return 1
	}
	rem.Inv(rem)
	//convergent recurrence q_n = a_n*q_{n-1} + q_{n-2}
	qprev := big.NewInt(0)
	qcur := big.NewInt(1)
	best := 1
	for i := 0; i < 64; i++ {
		a.Quo(rem.Num(), rem.Denom())
		qnext := new(big.Int).Mul(a, qcur)
		qnext.Add(qnext, qprev)
		qprev, qcur = qcur, qnext
		if !qcur.IsInt64() || qcur.Int64() > int64(qmax) {
			return best
		}
		q := int(qcur.Int64())
		if meets(q) {
			return q
		}
		best = q
		//next continued fraction term
		rem.Sub(rem, new(big.Rat).SetInt(a))
		if rem.Sign() == 0 {
			return best
		}
		rem.Inv(rem)
	}
	return best
}

//gcd returns the greatest common divisor of a and b.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

//lcm returns the least common multiple of a and b.
func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}

//nExtFromEps determines the supercell multiplicity that makes every
//propagation vector in K commensurate within eps: for each axis, the
//least common multiple over all vectors of the smallest denominator
//approximating that component.
func nExtFromEps(K *v3.Matrix, eps float64) [3]int {
	nExt := [3]int{1, 1, 1}
	for c := 0; c < 3; c++ {
		for i := 0; i < K.NVecs(); i++ {
			nExt[c] = lcm(nExt[c], approxDenominator(K.At(i, c), eps))
		}
	}
	return nExt
}

//kIsIntegral reports whether every component of kExt is within eps of
//an integer, i.e. whether the structure with propagation vector
//k = kExt./nExt repeats exactly on the supercell.
func kIsIntegral(kExt [3]float64, eps float64) bool {
	for _, f := range kExt {
		if math.Abs(f-math.Round(f)) > eps {
			return false
		}
	}
	return true
}
