/*
 * magstr.go, part of gomag.
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
	"math"

	"github.com/gomaglab/gomag/v3"
	"gonum.org/v1/gonum/mat"
)

//MagStr is the stored representation of a magnetic structure: the
//supercell multiplicity, the propagation vectors (one row per vector,
//in reciprocal lattice units of the original cell) and the complex
//Fourier components, one 3 x nMagExt block per propagation vector.
//The propagation phase of every atom copy within the supercell is
//baked into its component column at generation time, so the real-space
//moment of copy i is the real part of the sum over k of F_k(:,i).
//Tiling beyond the stored supercell multiplies each block by
//exp(-2i*pi*k dot l), with l the cell translation of the tile.
//Reality is enforced by implicitly pairing each stored k with -k via
//conjugation.
type MagStr struct {
	NExt [3]int
	K    *v3.Matrix
	F    []*mat.CDense
	//Warnings carries the non-fatal conditions met while generating
	//the structure, such as a supercell too small to make the
	//structure commensurate.
	Warnings []string
}

//NCells returns the number of unit cells in the supercell.
func (M *MagStr) NCells() int {
	return M.NExt[0] * M.NExt[1] * M.NExt[2]
}

//NK returns the number of propagation vectors.
func (M *MagStr) NK() int {
	if M.K == nil {
		return 0
	}
	return M.K.NVecs()
}

//NMagExt returns the number of magnetic atom copies covered by the
//Fourier components, or 0 for an empty structure.
func (M *MagStr) NMagExt() int {
	if len(M.F) == 0 {
		return 0
	}
	_, c := M.F[0].Dims()
	return c
}

//Copy returns a deep copy of the structure.
func (M *MagStr) Copy() *MagStr {
	n := new(MagStr)
	n.NExt = M.NExt
	if M.K != nil {
		n.K = v3.Zeros(M.K.NVecs())
		n.K.Copy(M.K.Dense)
	}
	n.F = make([]*mat.CDense, 0, len(M.F))
	for _, f := range M.F {
		n.F = append(n.F, cloneCDense(f))
	}
	n.Warnings = append([]string{}, M.Warnings...)
	return n
}

//Validate checks the internal consistency of the structure against the
//number nMag of magnetic atoms in the unit cell: positive supercell
//multiplicities, one Fourier block per propagation vector, and
//3 x nMag*NCells() Fourier blocks.
func (M *MagStr) Validate(nMag int) error {
	for _, n := range M.NExt {
		if n < 1 {
			return newError(KindBadParameters, fmt.Sprintf("Supercell multiplicities must be positive: %v", M.NExt))
		}
	}
	if M.NK() != len(M.F) {
		return newError(KindCountMismatch, fmt.Sprintf("%d propagation vectors for %d Fourier blocks", M.NK(), len(M.F)))
	}
	want := nMag * M.NCells()
	for i, f := range M.F {
		r, c := f.Dims()
		if r != 3 || c != want {
			return newError(KindBadSpinMatrix, fmt.Sprintf("Fourier block %d is %dx%d, expected 3x%d", i, r, c, want))
		}
	}
	return nil
}

//Moments realizes the real-space magnetic moments of the structure on
//the supercell described by tab, one row per atom copy. Since the
//propagation phases are baked into the stored components, the moment
//of each copy is the real part of its component column summed over the
//propagation vectors. The second return value is the largest imaginary
//magnitude left in that sum: the out-of-phase (rotating frame)
//amplitude, which vanishes for structures collapsed to a single real
//k = 0 component.
func (M *MagStr) Moments(tab *MagTable) (*v3.Matrix, float64, error) {
	if tab == nil {
		return nil, 0, newError(KindBadParameters, NilData)
	}
	nExtAt := tab.Len()
	if nExtAt != M.NMagExt() {
		return nil, 0, newError(KindBadSpinMatrix, fmt.Sprintf("Magnetic table with %d atom copies for Fourier blocks of %d", nExtAt, M.NMagExt()))
	}
	out := v3.Zeros(nExtAt)
	var residual float64
	for i := 0; i < nExtAt; i++ {
		for c := 0; c < 3; c++ {
			var m complex128
			for _, f := range M.F {
				m += f.At(c, i)
			}
			out.Set(i, c, real(m))
			if im := math.Abs(imag(m)); im > residual {
				residual = im
			}
		}
	}
	return out, residual, nil
}

//cloneCDense returns a copy of the complex matrix a.
func cloneCDense(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	n := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			n.Set(i, j, a.At(i, j))
		}
	}
	return n
}
