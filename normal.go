/*
 * normal.go, part of gomag.
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
	"github.com/gomaglab/gomag/v3"
	"gonum.org/v1/gonum/mat"
)

//NormalVector returns a unit row vector normal to the plane that best
//contains the moments given as the rows of S: the left singular vector
//of the smallest singular value of the moment matrix. For a planar
//(e.g. helical) structure this is the axis the moments rotate around.
//It returns an error for an empty or rank-zero moment set, for which
//no plane is defined.
func NormalVector(S *v3.Matrix) (*v3.Matrix, error) {
	if S == nil || S.NVecs() == 0 {
		return nil, newError(KindBadSpinMatrix, "No moments to take the normal of")
	}
	var svd mat.SVD
	if ok := svd.Factorize(S.Dense.T(), mat.SVDFull); !ok {
		return nil, newError(KindBadSpinMatrix, "SVD of the moment matrix failed")
	}
	vals := svd.Values(nil)
	if vals[0] <= appzero {
		return nil, newError(KindBadSpinMatrix, "All moments are zero: the structure has no plane")
	}
	var u mat.Dense
	svd.UTo(&u)
	normal := v3.Zeros(1)
	for c := 0; c < 3; c++ {
		normal.Set(0, c, u.At(c, 2))
	}
	normal.Unit(normal)
	return normal, nil
}
