/*
 * lattice.go, part of gomag.
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
	"fmt"

	"github.com/gomaglab/gomag/v3"
	"gonum.org/v1/gonum/mat"
)

//Lattice holds the basis vectors of a crystal lattice, as the columns
//of a 3x3 matrix in cartesian coordinates, together with the inverse
//basis used to go back from cartesian to lattice units.
type Lattice struct {
	basis *mat.Dense
	inv   *mat.Dense
}

//NewLattice builds a Lattice from the 9 values of the basis matrix, in
//row-major order, each column being one lattice vector in cartesian
//coordinates. It returns an error if the matrix is singular.
func NewLattice(basis []float64) (*Lattice, error) {
	if len(basis) != 9 {
		return nil, newError(KindBadParameters, fmt.Sprintf("A basis matrix needs 9 values, got %d", len(basis)))
	}
	b := mat.NewDense(3, 3, basis)
	var inv mat.Dense
	if err := inv.Inverse(b); err != nil {
		return nil, newError(KindBadParameters, fmt.Sprintf("Singular basis matrix: %s", err.Error()))
	}
	return &Lattice{basis: b, inv: &inv}, nil
}

//CubicLattice returns the lattice of a cubic cell with parameter a.
func CubicLattice(a float64) *Lattice {
	l, err := NewLattice([]float64{a, 0, 0, 0, a, 0, 0, 0, a})
	if err != nil {
		panic("cant happen")
	}
	return l
}

//Basis returns a copy of the basis matrix.
func (L *Lattice) Basis() *mat.Dense {
	b := mat.NewDense(3, 3, nil)
	b.Copy(L.basis)
	return b
}

//CartesianFromLU returns the vectors of A, given in lattice units (one
//row per vector), expressed in cartesian coordinates.
func (L *Lattice) CartesianFromLU(A *v3.Matrix) *v3.Matrix {
	out := v3.Zeros(A.NVecs())
	out.Mul(A, L.basis.T())
	return out
}

//LUFromCartesian returns the vectors of A, given in cartesian
//coordinates (one row per vector), expressed in lattice units.
func (L *Lattice) LUFromCartesian(A *v3.Matrix) *v3.Matrix {
	out := v3.Zeros(A.NVecs())
	out.Mul(A, L.inv.T())
	return out
}

//Copy returns a copy of the lattice.
func (L *Lattice) Copy() *Lattice {
	n := new(Lattice)
	n.basis = mat.NewDense(3, 3, nil)
	n.basis.Copy(L.basis)
	n.inv = mat.NewDense(3, 3, nil)
	n.inv.Copy(L.inv)
	return n
}
