/*
 * qgrid.go, part of gomag.
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

/*Package qgrid builds rectilinear sampling grids of 3-vectors in
reciprocal space, to be consumed by plotting and dispersion codes. A
grid spans 1 to 3 axes; each axis contributes a coordinate vector built
from a bin specification, and every grid point is the sum over the
active axes of coordinate times axis vector, plus an optional offset.
The package is independent of the structure generation machinery in
package mag; the two share only the v3 vector type.*/
package qgrid

import (
	"errors"
	"math"

	"github.com/gomaglab/gomag/v3"
)

var (
	//ErrNoBins indicates that no bin specification was given.
	ErrNoBins = errors.New("qgrid: at least one bin specification is needed")
	//ErrBinGap indicates bin specifications that do not form a
	//contiguous prefix: v given without u, or w without v.
	ErrBinGap = errors.New("qgrid: bin specifications must form a contiguous prefix (u before v before w)")
	//ErrBadBin indicates a bin specification without 1, 2 or 3 numbers,
	//or a range that contains no points.
	ErrBadBin = errors.New("qgrid: a bin specification needs 1, 2 or 3 numbers and a non-empty range")
	//ErrBadAxis indicates a missing axis vector for an active axis, or
	//one without 3 components.
	ErrBadAxis = errors.New("qgrid: every active axis needs a 3-component axis vector")
)

//Options collects the inputs of BuildGrid.
type Options struct {
	//U, V and W are the axis vectors, in cartesian reciprocal space.
	//Only the ones matching a bin specification are consulted.
	U, V, W []float64
	//Axes, if non-nil, overrides U, V and W: its rows are the three
	//axis vectors.
	Axes *v3.Matrix
	//Offset is added to every grid point. Nil means no offset.
	Offset []float64
	//Bins holds up to three bin specifications, one per axis, each of
	//1, 2 or 3 numbers: a single fixed coordinate; a start,stop range
	//stepped at 1/Ext of the axis; or an explicit start,step,stop
	//range. A nil entry means the axis is inactive; active axes must
	//come first (u before v before w).
	Bins [][]float64
	//Ext holds the extension factors that set the default step of
	//2-number ranges. Missing entries default to 1.
	Ext []float64
}

//Grid is a rectilinear mesh of 3-vectors. Vecs holds one row per grid
//point; the row of a multi-index is computed with the first axis
//varying fastest, as done by At.
type Grid struct {
	//Shape holds the number of points along each active axis.
	Shape []int
	//Coords holds the coordinate vector of each active axis, in
	//lattice units of the axis vectors.
	Coords [][]float64
	//Vecs holds the cartesian grid points, one row each.
	Vecs *v3.Matrix
}

//Dim returns the number of active axes of the grid.
func (G *Grid) Dim() int {
	return len(G.Shape)
}

//Len returns the total number of grid points.
func (G *Grid) Len() int {
	return G.Vecs.NVecs()
}

//At returns the grid point with the given multi-index, one index per
//active axis. Panics if the number of indexes or any index is out of
//range, as out-of-range access means the caller is already wrong.
func (G *Grid) At(idx ...int) [3]float64 {
	if len(idx) != len(G.Shape) {
		panic("qgrid: wrong number of indexes")
	}
	flat := 0
	stride := 1
	for a, i := range idx {
		if i < 0 || i >= G.Shape[a] {
			panic("qgrid: index out of range")
		}
		flat += i * stride
		stride *= G.Shape[a]
	}
	return [3]float64{G.Vecs.At(flat, 0), G.Vecs.At(flat, 1), G.Vecs.At(flat, 2)}
}

//binCoords expands one bin specification into its coordinate vector.
func binCoords(bin []float64, ext float64) ([]float64, error) {
	var start, step, stop float64
	switch len(bin) {
	case 1:
		return []float64{bin[0]}, nil
	case 2:
		start, stop = bin[0], bin[1]
		step = 1 / ext
	case 3:
		start, step, stop = bin[0], bin[1], bin[2]
	default:
		return nil, ErrBadBin
	}
	if step == 0 || (stop-start)/step < 0 {
		return nil, ErrBadBin
	}
	//the small tolerance keeps the endpoint in when it is only lost
	//to floating point error
	n := int(math.Floor((stop-start)/step+1e-8)) + 1
	coords := make([]float64, n)
	for i := range coords {
		coords[i] = start + float64(i)*step
	}
	return coords, nil
}

//BuildGrid builds the grid described by opts. The bin specifications
//must form a contiguous prefix over the u, v, w axes; each active axis
//needs its axis vector (or the full Axes matrix).
func BuildGrid(opts *Options) (*Grid, error) {
	if opts == nil {
		return nil, ErrNoBins
	}
	bins := opts.Bins
	if len(bins) > 3 {
		return nil, ErrBadBin
	}
	dim := 0
	for dim < len(bins) && bins[dim] != nil {
		dim++
	}
	for a := dim; a < len(bins); a++ {
		if bins[a] != nil {
			return nil, ErrBinGap
		}
	}
	if dim == 0 {
		return nil, ErrNoBins
	}
	//axis vectors of the active axes
	axes := make([][3]float64, dim)
	raw := [][]float64{opts.U, opts.V, opts.W}
	for a := 0; a < dim; a++ {
		if opts.Axes != nil {
			for c := 0; c < 3; c++ {
				axes[a][c] = opts.Axes.At(a, c)
			}
			continue
		}
		if len(raw[a]) != 3 {
			return nil, ErrBadAxis
		}
		copy(axes[a][:], raw[a])
	}
	var offset [3]float64
	if opts.Offset != nil {
		if len(opts.Offset) != 3 {
			return nil, ErrBadAxis
		}
		copy(offset[:], opts.Offset)
	}
	//coordinate vectors
	g := new(Grid)
	g.Shape = make([]int, dim)
	g.Coords = make([][]float64, dim)
	total := 1
	for a := 0; a < dim; a++ {
		ext := 1.0
		if a < len(opts.Ext) && opts.Ext[a] > 0 {
			ext = opts.Ext[a]
		}
		coords, err := binCoords(bins[a], ext)
		if err != nil {
			return nil, err
		}
		g.Coords[a] = coords
		g.Shape[a] = len(coords)
		total *= len(coords)
	}
	//outer product mesh, first axis fastest
	g.Vecs = v3.Zeros(total)
	for flat := 0; flat < total; flat++ {
		rem := flat
		p := offset
		for a := 0; a < dim; a++ {
			i := rem % g.Shape[a]
			rem /= g.Shape[a]
			for c := 0; c < 3; c++ {
				p[c] += g.Coords[a][i] * axes[a][c]
			}
		}
		for c := 0; c < 3; c++ {
			g.Vecs.Set(flat, c, p[c])
		}
	}
	return g, nil
}
