/*
 * atoms.go, part of gomag.
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
)

/**Note: several functions here panic instead of returning errors. This is because they are
 * "fundamental" functions: if something goes wrong here, the program is way-most likely wrong
 * and should crash. The panics are related to accessing out-of-bounds atoms.**/

//Atom contains one atom of the unit cell: its fractional position, its
//spin quantum number (zero for a non-magnetic atom) and a name.
type Atom struct {
	Name string
	Pos  [3]float64 //fractional coordinates of the unit cell
	Spin float64    //spin quantum number, 0 for non-magnetic atoms
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	newat := new(Atom)
	newat.Name = A.Name
	newat.Pos = A.Pos
	newat.Spin = A.Spin
	return newat
}

//AtomTable contains the atoms of one unit cell.
type AtomTable struct {
	atoms []*Atom
}

//NewAtomTable makes an atom table from ats, and returns it. It returns
//an error if the slice is nil.
func NewAtomTable(ats []*Atom) (*AtomTable, error) {
	if ats == nil {
		return nil, newError(KindBadParameters, NilData)
	}
	t := new(AtomTable)
	t.atoms = ats
	return t, nil
}

//Len returns the number of atoms in the table.
func (T *AtomTable) Len() int {
	return len(T.atoms)
}

//Atom returns the Atom corresponding to the index i. Panics if out of
//range.
func (T *AtomTable) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("AtomTable: Requested Atom out of bounds")
	}
	return T.atoms[i]
}

//AddAtom appends an atom at the end of the table.
func (T *AtomTable) AddAtom(at *Atom) {
	T.atoms = append(T.atoms, at)
}

//Copy returns a copy of the table, including the atoms.
func (T *AtomTable) Copy() *AtomTable {
	n := new(AtomTable)
	n.atoms = make([]*Atom, T.Len())
	for key, val := range T.atoms {
		n.atoms[key] = val.Copy()
	}
	return n
}

//Magnetic returns the indexes of the magnetic atoms in the table, i.e.
//those with a spin quantum number greater than zero.
func (T *AtomTable) Magnetic() []int {
	var ret []int
	for i, at := range T.atoms {
		if at.Spin > 0 {
			ret = append(ret, i)
		}
	}
	return ret
}

//NMag returns the number of magnetic atoms in the unit cell.
func (T *AtomTable) NMag() int {
	return len(T.Magnetic())
}

//MagTable contains the magnetic atoms of a crystal replicated over a
//supercell: positions in supercell fractional units, the integer cell
//translation of each copy (in original-cell units) and the spin
//quantum number of each copy. The copy with extended index
//cell*nMag + j is atom j of the unit cell in the given cell, with
//cells enumerated first axis fastest.
type MagTable struct {
	NExt [3]int
	Pos  *v3.Matrix //supercell fractional positions, one row per atom copy
	Cell *v3.Matrix //integer cell translations, one row per atom copy
	Spin []float64
	nMag int
}

//NMag returns the number of magnetic atoms in one unit cell.
func (M *MagTable) NMag() int {
	return M.nMag
}

//Len returns the total number of magnetic atom copies in the supercell.
func (M *MagTable) Len() int {
	return len(M.Spin)
}

//MagTable replicates the magnetic atoms of the table over a supercell
//of nExt[0] x nExt[1] x nExt[2] unit cells. It panics on non-positive
//multiplicities; callers validate those before getting here.
func (T *AtomTable) MagTable(nExt [3]int) *MagTable {
	for _, n := range nExt {
		if n < 1 {
			panic("AtomTable: non-positive supercell multiplicity")
		}
	}
	mag := T.Magnetic()
	nMag := len(mag)
	nCell := nExt[0] * nExt[1] * nExt[2]
	ret := new(MagTable)
	ret.NExt = nExt
	ret.nMag = nMag
	ret.Pos = v3.Zeros(nMag * nCell)
	ret.Cell = v3.Zeros(nMag * nCell)
	ret.Spin = make([]float64, nMag*nCell)
	i := 0
	for c3 := 0; c3 < nExt[2]; c3++ {
		for c2 := 0; c2 < nExt[1]; c2++ {
			for c1 := 0; c1 < nExt[0]; c1++ {
				cell := [3]float64{float64(c1), float64(c2), float64(c3)}
				for _, j := range mag {
					at := T.atoms[j]
					for c := 0; c < 3; c++ {
						ret.Pos.Set(i, c, (at.Pos[c]+cell[c])/float64(nExt[c]))
						ret.Cell.Set(i, c, cell[c])
					}
					ret.Spin[i] = at.Spin
					i++
				}
			}
		}
	}
	return ret
}
