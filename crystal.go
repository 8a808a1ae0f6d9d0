/*
 * crystal.go, part of gomag.
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

//Crystal ties together the lattice geometry, the atom table and the
//currently stored magnetic structure of a crystal model. The stored
//structure is only ever replaced wholesale: callers that generate
//structures concurrently on the same Crystal need external
//serialization, as the read-modify-write of the stored record is not
//atomic across a whole generation call.
type Crystal struct {
	lattice *Lattice
	atoms   *AtomTable
	magStr  *MagStr
}

//NewCrystal makes a crystal model from a lattice and an atom table.
//It returns an error if either is nil.
func NewCrystal(lattice *Lattice, atoms *AtomTable) (*Crystal, error) {
	if lattice == nil || atoms == nil {
		return nil, newError(KindBadParameters, NilData)
	}
	c := new(Crystal)
	c.lattice = lattice
	c.atoms = atoms
	return c, nil
}

//Lattice returns the lattice of the crystal.
func (C *Crystal) Lattice() *Lattice {
	return C.lattice
}

//Atoms returns the atom table of the crystal.
func (C *Crystal) Atoms() *AtomTable {
	return C.atoms
}

//MagStr returns the currently stored magnetic structure, or nil if no
//structure has been generated yet.
func (C *Crystal) MagStr() *MagStr {
	return C.magStr
}

//SetMagStr validates m against the crystal and, on success, replaces
//the stored magnetic structure with it. On failure the previously
//stored structure is left untouched.
func (C *Crystal) SetMagStr(m *MagStr) error {
	if m == nil {
		return newError(KindBadParameters, NilData)
	}
	if err := m.Validate(C.atoms.NMag()); err != nil {
		return errDecorate(err, "SetMagStr")
	}
	C.magStr = m
	return nil
}

//GenMagStr generates a magnetic structure from the given parameters
//and swaps it into the crystal, returning it. A failed call leaves the
//stored structure unchanged.
func (C *Crystal) GenMagStr(par *Params) (*MagStr, error) {
	m, err := Generate(C, par)
	if err != nil {
		return nil, errDecorate(err, "GenMagStr")
	}
	if err := C.SetMagStr(m); err != nil {
		return nil, errDecorate(err, "GenMagStr")
	}
	return m, nil
}
