/*
 * genmagstr.go, part of gomag.
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
	"log"
	"math"
	"math/cmplx"
	"strings"

	"github.com/gomaglab/gomag/v3"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const defaultEpsilon = 1e-5

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Mode selects how a magnetic structure is generated.
type Mode int

const (
	//ModeRandom generates random unit moments scaled to each atom's spin.
	ModeRandom Mode = iota
	//ModeDirect uses the supplied moments verbatim.
	ModeDirect
	//ModeHelical rotates the supplied unit cell pattern across the
	//supercell following the propagation vector.
	ModeHelical
	//ModeRotate rigidly rotates the supplied (or stored) moments.
	ModeRotate
	//ModeFunc generates moments through a user supplied
	//parametrization function.
	ModeFunc
	//ModeTile replicates the unit cell moments over the supercell.
	ModeTile
	//ModeFourier realizes an explicit list of Fourier components on
	//the supercell.
	ModeFourier
)

func (m Mode) String() string {
	switch m {
	case ModeRandom:
		return "random"
	case ModeDirect:
		return "direct"
	case ModeHelical:
		return "helical"
	case ModeRotate:
		return "rotate"
	case ModeFunc:
		return "func"
	case ModeTile:
		return "tile"
	case ModeFourier:
		return "fourier"
	}
	return "unknown"
}

//ParseMode returns the Mode corresponding to the given keyword.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "random":
		return ModeRandom, nil
	case "direct":
		return ModeDirect, nil
	case "helical":
		return ModeHelical, nil
	case "rotate":
		return ModeRotate, nil
	case "func":
		return ModeFunc, nil
	case "tile":
		return ModeTile, nil
	case "fourier":
		return ModeFourier, nil
	}
	return 0, newError(KindUnknownMode, fmt.Sprintf("Unrecognized magnetic structure mode: %q", s))
}

//MomentFunc parametrizes a magnetic structure: it receives the moment
//template replicated over the supercell (3 rows, one column per atom
//copy) and a parameter vector, and returns the new moments, the new
//propagation vector and the rotation plane normal. The normal is
//ignored by the generator.
type MomentFunc func(S *mat.CDense, x0 []float64) (*mat.CDense, [3]float64, [3]float64, error)

//Params holds the input parameters of one structure generation call.
//They are constructed fresh per call, validated eagerly by Generate,
//and never stored.
type Params struct {
	Mode Mode
	//Phi is the rotation angle in radians for ModeRotate. PhiDeg may
	//be given instead, in degrees; it is used when Phi is zero. If
	//PhiAuto is set the angle is solved for so that the first moment,
	//projected on the rotation plane, ends up along [1 0 0].
	Phi     float64
	PhiDeg  float64
	PhiAuto bool
	//NExt is the supercell multiplicity along each lattice axis. The
	//zero value means "keep the stored supercell, or 1x1x1 if none".
	//If NExtEps is positive it overrides NExt: the multiplicity is
	//then found automatically as the smallest supercell making every
	//propagation vector commensurate within NExtEps.
	NExt    [3]int
	NExtEps float64
	//K holds the propagation vectors, one row per vector, in
	//reciprocal lattice units. Nil means a single [0 0 0] vector
	//(or the stored vectors, when the stored structure is reused).
	K *v3.Matrix
	//N holds the rotation plane normals, one row per propagation
	//vector. Nil means [0 0 1] for every vector. The normals are
	//always normalized to unit length.
	N *v3.Matrix
	//S holds real moments, one row per atom copy (or per unit cell
	//atom, or a single row, depending on the mode). FComplex holds
	//already embedded complex Fourier components instead, one 3xn
	//block per propagation vector. If both are nil the components of
	//the structure currently stored on the crystal are reused.
	S        *v3.Matrix
	FComplex []*mat.CDense
	//Unit is the unit system of S: "xyz" (cartesian, the default) or
	//"lu" (lattice units, converted through the basis matrix).
	Unit string
	//Func and X0 parametrize ModeFunc.
	Func MomentFunc
	X0   []float64
	//Norm rescales every output moment so its length equals the
	//atom's spin quantum number.
	Norm bool
	//PhaseOrigin selects the phase convention for single-moment
	//helical structures: phases from the absolute atom positions
	//(true, the default) or from the positions relative to the first
	//atom (false).
	PhaseOrigin bool
	//Epsilon is the incommensurability tolerance. Zero means 1e-5.
	Epsilon float64
	//Src is the random source for ModeRandom. Nil means a fixed-seed
	//source; inject one for reproducible or properly seeded runs.
	Src rand.Source
}

//DefaultParams returns the parameters of a single-k helical structure
//in cartesian units with the default tolerance and phase convention.
func DefaultParams() *Params {
	p := new(Params)
	p.Mode = ModeHelical
	p.Unit = "xyz"
	p.Epsilon = defaultEpsilon
	p.PhaseOrigin = true
	return p
}

//Generate computes a magnetic structure for the crystal from the given
//parameters. It is a pure function of its inputs: the crystal's stored
//structure is read (for defaults and for the moment-reuse convention)
//but never written; swapping the returned record in is left to the
//caller (see Crystal.GenMagStr). All parameter validation happens
//before any mode-specific work, so a failed call has no side effects.
func Generate(cr *Crystal, par *Params) (*MagStr, error) {
	if cr == nil {
		return nil, newError(KindBadParameters, NilData)
	}
	if par == nil {
		par = DefaultParams()
	}
	nMag := cr.Atoms().NMag()
	if nMag == 0 {
		return nil, newError(KindNoMagneticAtom, NoMagneticAtoms)
	}
	if par.Mode < ModeRandom || par.Mode > ModeFourier {
		return nil, newError(KindUnknownMode, fmt.Sprintf("Unrecognized magnetic structure mode: %d", int(par.Mode)))
	}
	eps := par.Epsilon
	if eps <= 0 {
		eps = defaultEpsilon
	}
	var warns []string
	stored := cr.MagStr()

	//Resolve the moment input: explicit complex blocks, real moments
	//to be embedded later, or the components stored on the crystal.
	var fin []*mat.CDense
	var sreal *v3.Matrix
	fromStored := false
	switch {
	case par.FComplex != nil:
		for _, f := range par.FComplex {
			r, _ := f.Dims()
			if r != 3 {
				return nil, newError(KindBadSpinMatrix, fmt.Sprintf("Fourier components need 3 rows, got %d", r))
			}
			fin = append(fin, cloneCDense(f))
		}
	case par.S != nil:
		if _, c := par.S.Dims(); c != 3 {
			return nil, newError(KindBadSpinMatrix, "Moments need one 3-component row per atom")
		}
		switch par.Unit {
		case "", "xyz":
			sreal = par.S
		case "lu":
			sreal = cr.Lattice().CartesianFromLU(par.S)
		default:
			return nil, newError(KindBadParameters, fmt.Sprintf("Unrecognized moment unit %q: want \"xyz\" or \"lu\"", par.Unit))
		}
	default:
		if par.Mode != ModeRandom {
			if stored == nil || len(stored.F) == 0 {
				return nil, newError(KindBadParameters, "No moments supplied and no stored magnetic structure to reuse")
			}
			for _, f := range stored.F {
				fin = append(fin, cloneCDense(f))
			}
			fromStored = true
		}
	}

	//Propagation vectors and rotation plane normals.
	K := par.K
	if K == nil {
		if fromStored && stored.K != nil {
			K = copyVecs(stored.K)
		} else {
			K = v3.Zeros(1)
		}
	} else {
		K = copyVecs(K)
	}
	nK := K.NVecs()
	if fin != nil && len(fin) != nK {
		return nil, newError(KindCountMismatch, fmt.Sprintf("%d Fourier blocks for %d propagation vectors", len(fin), nK))
	}
	var N *v3.Matrix
	if par.N == nil {
		N = v3.Zeros(nK)
		for i := 0; i < nK; i++ {
			N.Set(i, 2, 1)
		}
	} else {
		if par.N.NVecs() != nK {
			return nil, newError(KindCountMismatch, fmt.Sprintf("Exactly one rotation plane normal per propagation vector is needed: %d normals, %d vectors", par.N.NVecs(), nK))
		}
		N = v3.Zeros(nK)
		for i := 0; i < nK; i++ {
			row := par.N.VecView(i)
			if row.Norm() <= appzero {
				return nil, newError(KindBadParameters, fmt.Sprintf("Rotation plane normal %d is the zero vector", i))
			}
			nu := N.VecView(i)
			nu.Unit(row)
		}
	}

	//Supercell multiplicity.
	var nExt [3]int
	switch {
	case par.NExtEps > 0:
		nExt = nExtFromEps(K, par.NExtEps)
	case par.NExt != [3]int{}:
		nExt = par.NExt
		for _, n := range nExt {
			if n < 1 {
				return nil, newError(KindBadParameters, fmt.Sprintf("Supercell multiplicities must be positive: %v", nExt))
			}
		}
	case stored != nil:
		nExt = stored.NExt
	default:
		nExt = [3]int{1, 1, 1}
	}
	nMagExt := nMag * nExt[0] * nExt[1] * nExt[2]

	//Number of supplied moments, before any tiling.
	nS := 0
	if sreal != nil {
		nS = sreal.NVecs()
	} else if fin != nil {
		_, nS = fin[0].Dims()
	}

	//Tiling with less than a unit cell's worth of moments falls back
	//to random generation.
	mode := par.Mode
	if mode == ModeTile && nS < nMag {
		warns = append(warns, fmt.Sprintf("Not enough moments to tile (%d of %d): falling back to random generation", nS, nMag))
		mode = ModeRandom
	}
	if mode != ModeRandom && mode != ModeFourier && nS == 0 {
		return nil, newError(KindBadParameters, "No moments supplied")
	}

	//Real moments become complex through the canonical rotating frame
	//embedding S + i*(n x S), one block per propagation vector.
	if sreal != nil {
		fin = make([]*mat.CDense, nK)
		for ik := 0; ik < nK; ik++ {
			fin[ik] = embedMoments(sreal, N.VecView(ik))
		}
	}
	if mode != ModeFourier {
		for _, f := range fin {
			if _, c := f.Dims(); c != nS {
				return nil, newError(KindBadSpinMatrix, "All Fourier blocks must have the same number of columns")
			}
		}
	}

	tab := cr.Atoms().MagTable(nExt)

	var outK *v3.Matrix
	var outF []*mat.CDense
	var err error
	switch mode {
	case ModeRandom:
		outK, outF = genRandom(tab, par.Src)
	case ModeTile:
		outK, outF = genTile(fin, stored, nExt, nMag, nMagExt, nS)
	case ModeHelical:
		outK, outF, warns, err = genHelical(fin, tab, K, par.PhaseOrigin, eps, nS, warns)
	case ModeDirect:
		//A unit cell's worth of moments means no replication was
		//intended: the supercell collapses back to a single cell.
		if nS == nMag {
			nExt = [3]int{1, 1, 1}
			nMagExt = nMag
			tab = cr.Atoms().MagTable(nExt)
		}
		if nS != nMagExt {
			return nil, newError(KindCountMismatch, fmt.Sprintf("Direct mode needs one moment per supercell atom: %d moments for %d atoms", nS, nMagExt))
		}
		outK = copyVecs(K)
		outF = fin
	case ModeRotate:
		outK, outF, err = genRotate(fin, tab, K, N, stored, nExt, par, nS, nMagExt)
	case ModeFunc:
		outK, outF, err = genFunc(fin, par, nMag, nMagExt, nS)
	case ModeFourier:
		outK, outF, warns, err = genFourier(par.FComplex, tab, K, nExt, nMag, warns)
	}
	if err != nil {
		return nil, errDecorate(err, "Generate")
	}

	//Optional renormalization of every atom's moment to the spin
	//quantum number. Atoms whose realized moment vanishes are left
	//unscaled.
	if par.Norm {
		normalizeToSpin(outF, tab)
	}

	ret := new(MagStr)
	ret.NExt = nExt
	ret.K = outK
	ret.F = outF
	ret.Warnings = warns
	for _, w := range warns {
		log.Printf("gomag: %s", w)
	}
	return ret, nil
}

//genRandom makes one random unit moment per supercell atom, scaled to
//the atom's spin, with a single k = [0 0 0].
func genRandom(tab *MagTable, src rand.Source) (*v3.Matrix, []*mat.CDense) {
	if src == nil {
		src = rand.NewSource(1)
	}
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	f := mat.NewCDense(3, tab.Len(), nil)
	for i := 0; i < tab.Len(); i++ {
		var v [3]float64
		norm := 0.0
		for norm <= appzero {
			for c := 0; c < 3; c++ {
				v[c] = normal.Rand()
			}
			norm = math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		}
		for c := 0; c < 3; c++ {
			f.Set(c, i, complex(v[c]/norm*tab.Spin[i], 0))
		}
	}
	return v3.Zeros(1), []*mat.CDense{f}
}

//genTile replicates the first unit cell's worth of moments over the
//supercell, unless the supplied moments already cover it and the
//supercell matches the stored one. Contributions are summed over the
//propagation vectors and only the real part is kept: the result is a
//real-space, non-rotating structure with a single k = [0 0 0].
func genTile(fin []*mat.CDense, stored *MagStr, nExt [3]int, nMag, nMagExt, nS int) (*v3.Matrix, []*mat.CDense) {
	needTile := nS != nMagExt
	if stored != nil && stored.NExt != nExt {
		needTile = true
	}
	f := mat.NewCDense(3, nMagExt, nil)
	for i := 0; i < nMagExt; i++ {
		src := i
		if needTile {
			src = i % nMag
		}
		for c := 0; c < 3; c++ {
			var sum float64
			for _, blk := range fin {
				sum += real(blk.At(c, src))
			}
			f.Set(c, i, complex(sum, 0))
		}
	}
	return v3.Zeros(1), []*mat.CDense{f}
}

//genHelical rotates the supplied pattern across the supercell by the
//phase 2*pi*(k.*nExt) dot r. A single supplied moment is broadcast to
//every atom copy, with r the supercell fractional position (or the
//position relative to the first atom, depending on the phase origin
//convention); a full unit cell pattern is phased by the cell
//translation only.
func genHelical(fin []*mat.CDense, tab *MagTable, K *v3.Matrix, phaseOrigin bool, eps float64, nS int, warns []string) (*v3.Matrix, []*mat.CDense, []string, error) {
	if K.NVecs() != 1 {
		return nil, nil, warns, newError(KindCountMismatch, fmt.Sprintf("Helical mode takes a single propagation vector, got %d", K.NVecs()))
	}
	nMag := tab.NMag()
	if nS != 1 && nS != nMag {
		return nil, nil, warns, newError(KindCountMismatch, fmt.Sprintf("Helical mode needs moments for 1 or %d atoms, got %d", nMag, nS))
	}
	var kExt [3]float64
	for c := 0; c < 3; c++ {
		kExt[c] = K.At(0, c) * float64(tab.NExt[c])
	}
	nCell := tab.Len() / nMag
	if nCell > 1 && !kIsIntegral(kExt, eps) {
		warns = append(warns, fmt.Sprintf("The supercell %v is too small for the structure to be commensurate with k = [%g %g %g]", tab.NExt, K.At(0, 0), K.At(0, 1), K.At(0, 2)))
	}
	f := mat.NewCDense(3, tab.Len(), nil)
	for i := 0; i < tab.Len(); i++ {
		var r [3]float64
		src := 0
		if nS == 1 {
			for c := 0; c < 3; c++ {
				r[c] = tab.Pos.At(i, c)
				if !phaseOrigin {
					r[c] -= tab.Pos.At(0, c)
				}
			}
		} else {
			src = i % nMag
			//only the cell translation phases a full unit cell
			//pattern; the intra-cell arrangement is already encoded
			//in the supplied moments
			for c := 0; c < 3; c++ {
				r[c] = tab.Cell.At(i, c) / float64(tab.NExt[c])
			}
		}
		phase := cmplx.Exp(complex(0, -2*math.Pi*(kExt[0]*r[0]+kExt[1]*r[1]+kExt[2]*r[2])))
		for c := 0; c < 3; c++ {
			f.Set(c, i, fin[0].At(c, src)*phase)
		}
	}
	return copyVecs(K), []*mat.CDense{f}, warns, nil
}

//genRotate rigidly rotates all moments by phi around the first normal
//vector. A zero angle requests the automatic alignment of the
//structure normal onto the normal vector instead. The output k is the
//one currently stored on the crystal, not recomputed.
func genRotate(fin []*mat.CDense, tab *MagTable, K, N *v3.Matrix, stored *MagStr, nExt [3]int, par *Params, nS, nMagExt int) (*v3.Matrix, []*mat.CDense, error) {
	if nS != nMagExt {
		return nil, nil, newError(KindCountMismatch, fmt.Sprintf("Rotate mode needs one moment per supercell atom: %d moments for %d atoms", nS, nMagExt))
	}
	n := N.VecView(0)
	phi := par.Phi
	if phi == 0 && par.PhiDeg != 0 {
		phi = par.PhiDeg * math.Pi / 180
	}
	var axis *v3.Matrix
	if par.PhiAuto {
		//solve for the angle that brings the first moment, projected
		//on the rotation plane, onto [1 0 0]
		s1 := v3.Zeros(1)
		for c := 0; c < 3; c++ {
			s1.Set(0, c, real(fin[0].At(c, 0)))
		}
		proj := projectOnPlane(s1, n)
		if proj.Norm() <= appzero {
			return nil, nil, newError(KindBadParameters, "The first moment is parallel to the rotation plane normal: cannot auto-align it")
		}
		proj.Unit(proj)
		x, _ := v3.NewMatrix([]float64{1, 0, 0})
		cr := v3.Zeros(1)
		cr.Cross(proj, x)
		phi = math.Atan2(n.Dot(cr), proj.Dot(x))
		axis = n
	} else if phi == 0 {
		//align the overall normal of the structure onto n. The realized
		//real parts span the rotation plane whether or not the supercell
		//is commensurate.
		tmp := &MagStr{NExt: nExt, K: K, F: fin}
		moments, _, err := tmp.Moments(tab)
		if err != nil {
			return nil, nil, err
		}
		ns, err := NormalVector(moments)
		if err != nil {
			return nil, nil, errDecorate(err, "genRotate")
		}
		axis = v3.Zeros(1)
		axis.Cross(n, ns)
		phi = -math.Atan2(axis.Norm(), n.Dot(ns))
		if axis.Norm() <= appzero {
			if n.Dot(ns) > 0 { //already aligned
				outK := rotateOutputK(K, stored)
				return outK, fin, nil
			}
			//antiparallel: any axis in the rotation plane does
			axis = projectOnPlane(anyNonParallel(n), n)
		}
	} else {
		axis = n
	}
	op, err := v3.RotatorAroundAxis(axis, phi)
	if err != nil {
		return nil, nil, errDecorate(err, "genRotate")
	}
	for i, f := range fin {
		fin[i] = rotateBlock(f, op)
	}
	return rotateOutputK(K, stored), fin, nil
}

//rotateOutputK gives the k vectors stored on the crystal, falling back
//to the working ones when no structure is stored.
func rotateOutputK(K *v3.Matrix, stored *MagStr) *v3.Matrix {
	if stored != nil && stored.K != nil {
		return copyVecs(stored.K)
	}
	return copyVecs(K)
}

//genFunc tiles the unit cell template over the supercell and hands it
//to the user supplied parametrization function.
func genFunc(fin []*mat.CDense, par *Params, nMag, nMagExt, nS int) (*v3.Matrix, []*mat.CDense, error) {
	if par.Func == nil || par.X0 == nil {
		return nil, nil, newError(KindBadParameters, "Functional mode needs both the parametrization function and its parameter vector")
	}
	var template *mat.CDense
	switch {
	case nS == nMagExt:
		template = cloneCDense(fin[0])
	case nS == 1 || nS >= nMag:
		template = mat.NewCDense(3, nMagExt, nil)
		for i := 0; i < nMagExt; i++ {
			src := 0
			if nS > 1 {
				src = i % nMag
			}
			for c := 0; c < 3; c++ {
				template.Set(c, i, fin[0].At(c, src))
			}
		}
	default:
		return nil, nil, newError(KindCountMismatch, fmt.Sprintf("Functional mode needs a template of 1, %d or %d moments, got %d", nMag, nMagExt, nS))
	}
	newF, newK, _, err := par.Func(template, par.X0)
	if err != nil {
		return nil, nil, newError(KindBadParameters, fmt.Sprintf("The parametrization function failed: %s", err.Error()))
	}
	r, c := newF.Dims()
	if r != 3 || c != nMagExt {
		return nil, nil, newError(KindBadSpinMatrix, fmt.Sprintf("The parametrization function returned a %dx%d moment matrix, expected 3x%d", r, c, nMagExt))
	}
	outK := v3.Zeros(1)
	for i := 0; i < 3; i++ {
		outK.Set(0, i, newK[i])
	}
	return outK, []*mat.CDense{newF}, nil
}

//genFourier realizes an explicit list of (Fourier component, k) pairs
//on the supercell. Each component block has either a single column
//(phased by the full supercell position) or one column per unit cell
//atom (phased by the cell translation only). The output is the real
//part of the conjugate-paired sum at half amplitude, collapsed to a
//single k = [0 0 0].
func genFourier(fcomp []*mat.CDense, tab *MagTable, K *v3.Matrix, nExt [3]int, nMag int, warns []string) (*v3.Matrix, []*mat.CDense, []string, error) {
	if fcomp == nil {
		return nil, nil, warns, newError(KindBadParameters, "Fourier mode needs explicit Fourier components")
	}
	for _, blk := range fcomp {
		_, c := blk.Dims()
		if c != 1 && c != nMag {
			return nil, nil, warns, newError(KindBadSpinMatrix, fmt.Sprintf("Fourier component blocks need 1 or %d columns, got %d", nMag, c))
		}
	}
	warns = append(warns, "The multi-k structure is only approximated on the chosen supercell")
	f := mat.NewCDense(3, tab.Len(), nil)
	for i := 0; i < tab.Len(); i++ {
		for ik, blk := range fcomp {
			_, cols := blk.Dims()
			var r [3]float64
			src := 0
			if cols == nMag {
				src = i % nMag
				for c := 0; c < 3; c++ {
					r[c] = tab.Cell.At(i, c) / float64(tab.NExt[c])
				}
			} else {
				for c := 0; c < 3; c++ {
					r[c] = tab.Pos.At(i, c)
				}
			}
			arg := 0.0
			for c := 0; c < 3; c++ {
				arg += K.At(ik, c) * float64(nExt[c]) * r[c]
			}
			phase := cmplx.Exp(complex(0, -2*math.Pi*arg))
			for c := 0; c < 3; c++ {
				m := 0.5 * (blk.At(c, src)*phase + cmplx.Conj(blk.At(c, src))*cmplx.Conj(phase))
				f.Set(c, i, f.At(c, i)+complex(real(m), 0))
			}
		}
	}
	return v3.Zeros(1), []*mat.CDense{f}, warns, nil
}

//normalizeToSpin rescales the Fourier components of every atom so the
//realized moment length equals the atom's spin quantum number. A zero
//length is treated as 1 to avoid dividing by zero.
func normalizeToSpin(F []*mat.CDense, tab *MagTable) {
	for i := 0; i < tab.Len(); i++ {
		var norm float64
		for c := 0; c < 3; c++ {
			var sum float64
			for _, blk := range F {
				sum += real(blk.At(c, i))
			}
			norm += sum * sum
		}
		norm = math.Sqrt(norm)
		if norm <= appzero {
			norm = 1
		}
		scale := complex(tab.Spin[i]/norm, 0)
		for _, blk := range F {
			for c := 0; c < 3; c++ {
				blk.Set(c, i, blk.At(c, i)*scale)
			}
		}
	}
}

//embedMoments embeds the real moments of S (one row per atom) into
//complex form by adding i*(n x S) to each, producing the canonical
//single-k rotating frame representation.
func embedMoments(S *v3.Matrix, n *v3.Matrix) *mat.CDense {
	ns := S.NVecs()
	f := mat.NewCDense(3, ns, nil)
	cr := v3.Zeros(1)
	for i := 0; i < ns; i++ {
		row := S.VecView(i)
		cr.Cross(n, row)
		for c := 0; c < 3; c++ {
			f.Set(c, i, complex(row.At(0, c), cr.At(0, c)))
		}
	}
	return f
}

//rotateBlock applies the rotation operator op (acting on row vectors,
//on the right) to the real and imaginary parts of every column of f.
func rotateBlock(f *mat.CDense, op *v3.Matrix) *mat.CDense {
	_, cols := f.Dims()
	out := mat.NewCDense(3, cols, nil)
	for j := 0; j < cols; j++ {
		for r := 0; r < 3; r++ {
			var re, im float64
			for c := 0; c < 3; c++ {
				re += real(f.At(c, j)) * op.At(c, r)
				im += imag(f.At(c, j)) * op.At(c, r)
			}
			out.Set(r, j, complex(re, im))
		}
	}
	return out
}

//projectOnPlane returns the projection of the 1x3 vector v on the
//plane normal to the unit vector n.
func projectOnPlane(v, n *v3.Matrix) *v3.Matrix {
	out := v3.Zeros(1)
	d := v.Dot(n)
	for c := 0; c < 3; c++ {
		out.Set(0, c, v.At(0, c)-d*n.At(0, c))
	}
	return out
}

//anyNonParallel returns some unit vector not parallel to n.
func anyNonParallel(n *v3.Matrix) *v3.Matrix {
	out := v3.Zeros(1)
	if math.Abs(n.At(0, 0)) < 0.9 {
		out.Set(0, 0, 1)
	} else {
		out.Set(0, 1, 1)
	}
	return out
}

//copyVecs returns a copy of the given vector matrix.
func copyVecs(a *v3.Matrix) *v3.Matrix {
	out := v3.Zeros(a.NVecs())
	out.Copy(a.Dense)
	return out
}
