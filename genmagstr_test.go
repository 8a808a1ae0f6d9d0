/*
 * genmagstr_test.go, part of gomag.
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
	"testing"

	"github.com/gomaglab/gomag/v3"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

//testCrystal returns a cubic crystal with two magnetic atoms (spins 1
//and 2) and one non-magnetic atom.
func testCrystal(Te *testing.T) *Crystal {
	ats, err := NewAtomTable([]*Atom{
		{Name: "Cr1", Pos: [3]float64{0, 0, 0}, Spin: 1},
		{Name: "Cr2", Pos: [3]float64{0.5, 0.5, 0.5}, Spin: 2},
		{Name: "O", Pos: [3]float64{0.5, 0, 0}, Spin: 0},
	})
	if err != nil {
		Te.Fatal(err)
	}
	cr, err := NewCrystal(CubicLattice(3.0), ats)
	if err != nil {
		Te.Fatal(err)
	}
	return cr
}

//oneAtomCrystal returns a cubic crystal with a single magnetic atom at
//the origin.
func oneAtomCrystal(Te *testing.T, spin float64) *Crystal {
	ats, err := NewAtomTable([]*Atom{{Name: "Mn", Pos: [3]float64{0, 0, 0}, Spin: spin}})
	if err != nil {
		Te.Fatal(err)
	}
	cr, err := NewCrystal(CubicLattice(4.0), ats)
	if err != nil {
		Te.Fatal(err)
	}
	return cr
}

//realized gives the real-space moments of the stored structure.
func realized(Te *testing.T, cr *Crystal) *v3.Matrix {
	m := cr.MagStr()
	if m == nil {
		Te.Fatal("No stored structure")
	}
	mom, _, err := m.Moments(cr.Atoms().MagTable(m.NExt))
	if err != nil {
		Te.Fatal(err)
	}
	return mom
}

//TestNoMagneticAtom checks that generation on a crystal without
//magnetic atoms fails with the right kind and stores nothing.
func TestNoMagneticAtom(Te *testing.T) {
	ats, _ := NewAtomTable([]*Atom{{Name: "O", Pos: [3]float64{0, 0, 0}, Spin: 0}})
	cr, _ := NewCrystal(CubicLattice(3.0), ats)
	_, err := cr.GenMagStr(DefaultParams())
	if err == nil {
		Te.Fatal("Expected an error on a non-magnetic crystal")
	}
	if Kind(err) != KindNoMagneticAtom {
		Te.Errorf("Wrong error kind: %v (%s)", Kind(err), err.Error())
	}
	if cr.MagStr() != nil {
		Te.Error("A failed call should not store a structure")
	}
}

//TestFailureLeavesStored checks that a failing call does not disturb
//the structure stored by a previous successful one.
func TestFailureLeavesStored(Te *testing.T) {
	cr := testCrystal(Te)
	S, _ := v3.NewMatrix([]float64{1, 0, 0, 0, 2, 0})
	p := DefaultParams()
	p.Mode = ModeDirect
	p.S = S
	if _, err := cr.GenMagStr(p); err != nil {
		Te.Fatal(err)
	}
	before := cr.MagStr()
	bad := DefaultParams()
	bad.Mode = ModeDirect
	bad.S, _ = v3.NewMatrix([]float64{1, 0, 0, 0, 2, 0, 3, 0, 0}) //3 moments, 2 magnetic atoms
	_, err := cr.GenMagStr(bad)
	if err == nil {
		Te.Fatal("Expected a count mismatch")
	}
	if Kind(err) != KindCountMismatch {
		Te.Errorf("Wrong error kind: %v (%s)", Kind(err), err.Error())
	}
	if cr.MagStr() != before {
		Te.Error("A failed call replaced the stored structure")
	}
}

//TestDirectResetsNExt checks that a unit cell's worth of moments
//collapses the requested supercell back to 1x1x1.
func TestDirectResetsNExt(Te *testing.T) {
	cr := testCrystal(Te)
	p := DefaultParams()
	p.Mode = ModeDirect
	p.NExt = [3]int{2, 2, 2}
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0, 0, 2, 0})
	m, err := cr.GenMagStr(p)
	if err != nil {
		Te.Fatal(err)
	}
	if m.NExt != [3]int{1, 1, 1} {
		Te.Errorf("Direct mode with unit cell moments should reset nExt, got %v", m.NExt)
	}
	mom := realized(Te, cr)
	want, _ := v3.NewMatrix([]float64{1, 0, 0, 0, 2, 0})
	if !mat.EqualApprox(mom.Dense, want.Dense, 1e-12) {
		Te.Errorf("Wrong realized moments:\n%v", mat.Formatted(mom.Dense))
	}
}

//TestRandomMode checks that random moments have the spin quantum
//number as length and that the propagation vector is exactly zero.
func TestRandomMode(Te *testing.T) {
	cr := testCrystal(Te)
	p := DefaultParams()
	p.Mode = ModeRandom
	p.NExt = [3]int{2, 1, 1}
	p.Src = rand.NewSource(42)
	m, err := cr.GenMagStr(p)
	if err != nil {
		Te.Fatal(err)
	}
	if m.NK() != 1 || m.K.At(0, 0) != 0 || m.K.At(0, 1) != 0 || m.K.At(0, 2) != 0 {
		Te.Errorf("Random mode should give a single k = [0 0 0], got %v", mat.Formatted(m.K.Dense))
	}
	tab := cr.Atoms().MagTable(m.NExt)
	mom := realized(Te, cr)
	for i := 0; i < mom.NVecs(); i++ {
		norm := mom.VecView(i).Norm()
		if !scalar.EqualWithinAbs(norm, tab.Spin[i], 1e-12) {
			Te.Errorf("Moment %d has length %v, want %v", i, norm, tab.Spin[i])
		}
	}
	//a different seed has to give a different structure
	p2 := DefaultParams()
	p2.Mode = ModeRandom
	p2.NExt = [3]int{2, 1, 1}
	p2.Src = rand.NewSource(1234)
	m2, err := Generate(cr, p2)
	if err != nil {
		Te.Fatal(err)
	}
	if mat.CEqual(m.F[0], m2.F[0]) {
		Te.Error("Different seeds gave the same structure")
	}
}

//TestTileIdentity checks that re-tiling the stored structure on the
//same supercell with the same moment count changes nothing.
func TestTileIdentity(Te *testing.T) {
	cr := testCrystal(Te)
	p := DefaultParams()
	p.Mode = ModeDirect
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0, 0, 2, 0})
	if _, err := cr.GenMagStr(p); err != nil {
		Te.Fatal(err)
	}
	before := realized(Te, cr)
	pt := DefaultParams()
	pt.Mode = ModeTile //no moments: reuse the stored components
	if _, err := cr.GenMagStr(pt); err != nil {
		Te.Fatal(err)
	}
	after := realized(Te, cr)
	if !mat.EqualApprox(before.Dense, after.Dense, 1e-12) {
		Te.Errorf("Tiling in place changed the moments:\n%v\n%v", mat.Formatted(before.Dense), mat.Formatted(after.Dense))
	}
}

//TestTileToLargerSupercell tiles a unit cell pattern onto a 2x1x1
//supercell and checks the copies.
func TestTileToLargerSupercell(Te *testing.T) {
	cr := testCrystal(Te)
	p := DefaultParams()
	p.Mode = ModeTile
	p.NExt = [3]int{2, 1, 1}
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0, 0, 2, 0})
	m, err := cr.GenMagStr(p)
	if err != nil {
		Te.Fatal(err)
	}
	if m.NMagExt() != 4 {
		Te.Fatalf("Expected 4 atom copies, got %d", m.NMagExt())
	}
	mom := realized(Te, cr)
	want, _ := v3.NewMatrix([]float64{1, 0, 0, 0, 2, 0, 1, 0, 0, 0, 2, 0})
	if !mat.EqualApprox(mom.Dense, want.Dense, 1e-12) {
		Te.Errorf("Wrong tiled moments:\n%v", mat.Formatted(mom.Dense))
	}
}

//TestTileFallsBackToRandom checks the self-healing default: tiling
//with less than a unit cell of moments generates randomly instead.
func TestTileFallsBackToRandom(Te *testing.T) {
	cr := testCrystal(Te)
	p := DefaultParams()
	p.Mode = ModeTile
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0}) //1 moment, 2 magnetic atoms
	m, err := cr.GenMagStr(p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(m.Warnings) == 0 {
		Te.Error("The fallback to random generation should warn")
	}
	mom := realized(Te, cr)
	tab := cr.Atoms().MagTable(m.NExt)
	for i := 0; i < mom.NVecs(); i++ {
		if !scalar.EqualWithinAbs(mom.VecView(i).Norm(), tab.Spin[i], 1e-12) {
			Te.Error("Fallback moments should be scaled to the spin")
		}
	}
}

//TestHelicalIdentity checks that a helix with k = 0 on a single cell
//reduces to the input moments.
func TestHelicalIdentity(Te *testing.T) {
	cr := testCrystal(Te)
	p := DefaultParams()
	p.Mode = ModeHelical
	p.NExt = [3]int{1, 1, 1}
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0, 0, 2, 0})
	if _, err := cr.GenMagStr(p); err != nil {
		Te.Fatal(err)
	}
	mom := realized(Te, cr)
	if !mat.EqualApprox(mom.Dense, p.S.Dense, 1e-12) {
		Te.Errorf("A k = 0 helix should not touch the moments:\n%v", mat.Formatted(mom.Dense))
	}
}

//TestHelicalRotation builds a pi-per-cell helix on a doubled cell and
//checks the rotated copy.
func TestHelicalRotation(Te *testing.T) {
	cr := oneAtomCrystal(Te, 1)
	p := DefaultParams()
	p.Mode = ModeHelical
	p.NExt = [3]int{2, 1, 1}
	p.K, _ = v3.NewMatrix([]float64{0.5, 0, 0})
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0})
	m, err := cr.GenMagStr(p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(m.Warnings) != 0 {
		Te.Errorf("A commensurate helix should not warn: %v", m.Warnings)
	}
	mom := realized(Te, cr)
	want, _ := v3.NewMatrix([]float64{1, 0, 0, -1, 0, 0})
	if !mat.EqualApprox(mom.Dense, want.Dense, 1e-12) {
		Te.Errorf("Wrong helix:\n%v", mat.Formatted(mom.Dense))
	}
}

//TestHelicalIncommensurateWarns checks the non-fatal warning for a
//supercell too small for the propagation vector.
func TestHelicalIncommensurateWarns(Te *testing.T) {
	cr := oneAtomCrystal(Te, 1)
	p := DefaultParams()
	p.Mode = ModeHelical
	p.NExt = [3]int{2, 1, 1}
	p.K, _ = v3.NewMatrix([]float64{1.0 / 3.0, 0, 0})
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0})
	m, err := cr.GenMagStr(p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(m.Warnings) == 0 {
		Te.Error("An incommensurate supercell should warn")
	}
	fmt.Println("Expected warning:", m.Warnings)
}

//TestHelicalCountError checks the moment count validation of the
//helical mode.
func TestHelicalCountError(Te *testing.T) {
	cr := testCrystal(Te)
	p := DefaultParams()
	p.Mode = ModeHelical
	p.NExt = [3]int{2, 1, 1}
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}) //3 is neither 1 nor 2
	_, err := cr.GenMagStr(p)
	if err == nil {
		Te.Fatal("Expected a count mismatch")
	}
	if Kind(err) != KindCountMismatch {
		Te.Errorf("Wrong error kind: %v (%s)", Kind(err), err.Error())
	}
}

//TestAutoSupercell checks the automatic supercell sizing from the
//commensurability tolerance.
func TestAutoSupercell(Te *testing.T) {
	cr := oneAtomCrystal(Te, 1)
	p := DefaultParams()
	p.Mode = ModeHelical
	p.NExtEps = 0.01
	p.K, _ = v3.NewMatrix([]float64{1.0 / 3.0, 0.25, 0})
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0})
	m, err := cr.GenMagStr(p)
	if err != nil {
		Te.Fatal(err)
	}
	if m.NExt != [3]int{3, 4, 1} {
		Te.Errorf("Wrong automatic supercell: %v", m.NExt)
	}
	if len(m.Warnings) != 0 {
		Te.Errorf("The automatic supercell should be commensurate: %v", m.Warnings)
	}
}

//TestRotateMode rigidly rotates a stored structure a quarter turn
//around z.
func TestRotateMode(Te *testing.T) {
	cr := oneAtomCrystal(Te, 1)
	p := DefaultParams()
	p.Mode = ModeDirect
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0})
	if _, err := cr.GenMagStr(p); err != nil {
		Te.Fatal(err)
	}
	pr := DefaultParams()
	pr.Mode = ModeRotate
	pr.Phi = math.Pi / 2
	if _, err := cr.GenMagStr(pr); err != nil {
		Te.Fatal(err)
	}
	mom := realized(Te, cr)
	want, _ := v3.NewMatrix([]float64{0, 1, 0})
	if !mat.EqualApprox(mom.Dense, want.Dense, 1e-12) {
		Te.Errorf("Wrong rotated moment:\n%v", mat.Formatted(mom.Dense))
	}
}

//TestRotateAutoAlign checks the zero-angle branch: the structure
//normal is brought onto the requested vector.
func TestRotateAutoAlign(Te *testing.T) {
	cr := testCrystal(Te)
	p := DefaultParams()
	p.Mode = ModeDirect
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0, 0, 2, 0}) //a structure in the xy plane
	if _, err := cr.GenMagStr(p); err != nil {
		Te.Fatal(err)
	}
	pr := DefaultParams()
	pr.Mode = ModeRotate
	pr.N, _ = v3.NewMatrix([]float64{1, 0, 0})
	if _, err := cr.GenMagStr(pr); err != nil {
		Te.Fatal(err)
	}
	mom := realized(Te, cr)
	normal, err := NormalVector(mom)
	if err != nil {
		Te.Fatal(err)
	}
	x, _ := v3.NewMatrix([]float64{1, 0, 0})
	if !scalar.EqualWithinAbs(math.Abs(normal.Dot(x)), 1, 1e-9) {
		Te.Errorf("The structure normal should be along x, got %v", mat.Formatted(normal.Dense))
	}
}

//TestRotatePhiAuto checks the align-first-moment-to-x branch.
func TestRotatePhiAuto(Te *testing.T) {
	cr := oneAtomCrystal(Te, 1)
	p := DefaultParams()
	p.Mode = ModeDirect
	p.S, _ = v3.NewMatrix([]float64{0, 1, 0})
	if _, err := cr.GenMagStr(p); err != nil {
		Te.Fatal(err)
	}
	pr := DefaultParams()
	pr.Mode = ModeRotate
	pr.PhiAuto = true
	if _, err := cr.GenMagStr(pr); err != nil {
		Te.Fatal(err)
	}
	mom := realized(Te, cr)
	want, _ := v3.NewMatrix([]float64{1, 0, 0})
	if !mat.EqualApprox(mom.Dense, want.Dense, 1e-12) {
		Te.Errorf("The first moment should end along x, got:\n%v", mat.Formatted(mom.Dense))
	}
}

//TestFuncMode drives the generator through a trivial parametrization
//function.
func TestFuncMode(Te *testing.T) {
	cr := testCrystal(Te)
	p := DefaultParams()
	p.Mode = ModeFunc
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0, 0, 2, 0})
	p.X0 = []float64{3}
	p.Func = func(S *mat.CDense, x0 []float64) (*mat.CDense, [3]float64, [3]float64, error) {
		r, c := S.Dims()
		out := mat.NewCDense(r, c, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				out.Set(i, j, S.At(i, j)*complex(x0[0], 0))
			}
		}
		return out, [3]float64{0.5, 0, 0}, [3]float64{0, 0, 1}, nil
	}
	m, err := cr.GenMagStr(p)
	if err != nil {
		Te.Fatal(err)
	}
	if m.K.At(0, 0) != 0.5 {
		Te.Errorf("The function's k should be kept, got %v", mat.Formatted(m.K.Dense))
	}
	mom := realized(Te, cr)
	if !scalar.EqualWithinAbs(mom.At(0, 0), 3, 1e-12) {
		Te.Errorf("Wrong scaled moment: %v", mom.At(0, 0))
	}
	//a missing function is a parameter error
	p.Func = nil
	_, err = Generate(cr, p)
	if Kind(err) != KindBadParameters {
		Te.Errorf("Wrong error kind: %v", Kind(err))
	}
}

//TestFourierRoundTrip generates from an explicit +-k pair and checks
//the realized moments against the analytic sum, with a vanishing
//imaginary residual.
func TestFourierRoundTrip(Te *testing.T) {
	cr := oneAtomCrystal(Te, 1)
	f1 := mat.NewCDense(3, 1, nil)
	f1.Set(0, 0, complex(1, 0))
	f1.Set(1, 0, complex(0, 1))
	f2 := mat.NewCDense(3, 1, nil)
	f2.Set(0, 0, complex(1, 0))
	f2.Set(1, 0, complex(0, -1)) //the conjugate pair
	p := DefaultParams()
	p.Mode = ModeFourier
	p.NExt = [3]int{3, 1, 1}
	p.K, _ = v3.NewMatrix([]float64{1.0 / 3.0, 0, 0, -1.0 / 3.0, 0, 0})
	p.FComplex = []*mat.CDense{f1, f2}
	m, err := cr.GenMagStr(p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(m.Warnings) == 0 {
		Te.Error("Fourier mode should warn about the supercell approximation")
	}
	if m.NK() != 1 || m.K.At(0, 0) != 0 {
		Te.Errorf("Fourier mode should collapse to k = [0 0 0], got %v", mat.Formatted(m.K.Dense))
	}
	tab := cr.Atoms().MagTable(m.NExt)
	mom, residual, err := m.Moments(tab)
	if err != nil {
		Te.Fatal(err)
	}
	if residual > 1e-12 {
		Te.Errorf("Non-vanishing imaginary part: %v", residual)
	}
	//analytic sum over the explicit pair: M(l) = sum_k F exp(-2i pi k l)
	for l := 0; l < 3; l++ {
		theta := 2 * math.Pi * float64(l) / 3
		if !scalar.EqualWithinAbs(mom.At(l, 0), 2*math.Cos(theta), 1e-12) {
			Te.Errorf("Cell %d: x moment %v, want %v", l, mom.At(l, 0), 2*math.Cos(theta))
		}
		if !scalar.EqualWithinAbs(mom.At(l, 1), 2*math.Sin(theta), 1e-12) {
			Te.Errorf("Cell %d: y moment %v, want %v", l, mom.At(l, 1), 2*math.Sin(theta))
		}
	}
}

//TestLatticeUnitMoments supplies moments in lattice units and checks
//the conversion through the basis matrix, with and without
//renormalization to the spin.
func TestLatticeUnitMoments(Te *testing.T) {
	cr := oneAtomCrystal(Te, 1) //cubic, a = 4
	p := DefaultParams()
	p.Mode = ModeDirect
	p.Unit = "lu"
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0})
	if _, err := cr.GenMagStr(p); err != nil {
		Te.Fatal(err)
	}
	mom := realized(Te, cr)
	if !scalar.EqualWithinAbs(mom.At(0, 0), 4, 1e-12) {
		Te.Errorf("1 lu along a should be 4 in cartesian, got %v", mom.At(0, 0))
	}
	p.Norm = true
	if _, err := cr.GenMagStr(p); err != nil {
		Te.Fatal(err)
	}
	mom = realized(Te, cr)
	if !scalar.EqualWithinAbs(mom.VecView(0).Norm(), 1, 1e-12) {
		Te.Errorf("Renormalized moment should have the spin as length, got %v", mom.VecView(0).Norm())
	}
	p.Unit = "parsec"
	_, err := Generate(cr, p)
	if Kind(err) != KindBadParameters {
		Te.Errorf("Wrong error kind for a bad unit: %v", Kind(err))
	}
}

//TestParseMode checks the keyword round trip and the unknown-mode
//error kind.
func TestParseMode(Te *testing.T) {
	for _, m := range []Mode{ModeRandom, ModeDirect, ModeHelical, ModeRotate, ModeFunc, ModeTile, ModeFourier} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			Te.Errorf("Mode %v does not round trip", m)
		}
	}
	_, err := ParseMode("spiral")
	if Kind(err) != KindUnknownMode {
		Te.Errorf("Wrong error kind: %v", Kind(err))
	}
}

//TestNormalCountMismatch checks that normals and propagation vectors
//must come in equal numbers.
func TestNormalCountMismatch(Te *testing.T) {
	cr := oneAtomCrystal(Te, 1)
	p := DefaultParams()
	p.Mode = ModeHelical
	p.K, _ = v3.NewMatrix([]float64{0.5, 0, 0})
	p.N, _ = v3.NewMatrix([]float64{0, 0, 1, 0, 1, 0}) //2 normals, 1 k
	p.S, _ = v3.NewMatrix([]float64{1, 0, 0})
	_, err := Generate(cr, p)
	if Kind(err) != KindCountMismatch {
		Te.Errorf("Wrong error kind: %v", Kind(err))
	}
}
