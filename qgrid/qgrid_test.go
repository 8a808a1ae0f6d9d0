/*
 * qgrid_test.go, part of gomag.
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

package qgrid

import (
	"testing"

	"github.com/gomaglab/gomag/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//TestPlaneGrid builds the canonical 2D integer mesh on the x and y
//axes and checks every point exactly.
func TestPlaneGrid(t *testing.T) {
	g, err := BuildGrid(&Options{
		U:    []float64{1, 0, 0},
		V:    []float64{0, 1, 0},
		Bins: [][]float64{{0, 1, 2}, {0, 1, 2}},
		Ext:  []float64{1, 1},
	})
	require.NoError(t, err)
	require.Equal(t, []int{3, 3}, g.Shape)
	require.Equal(t, 9, g.Len())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, [3]float64{float64(i), float64(j), 0}, g.At(i, j))
		}
	}
}

//TestSingleAxis checks 1D grids with explicit and default steps.
func TestSingleAxis(t *testing.T) {
	g, err := BuildGrid(&Options{
		U:    []float64{2, 0, 0},
		Bins: [][]float64{{0, 0.5, 1}},
	})
	require.NoError(t, err)
	require.Equal(t, []int{3}, g.Shape)
	assert.InDelta(t, 1.0, g.At(1)[0], 1e-12) //0.5 lattice units along [2 0 0]

	//a 2-number range stepped at 1/ext
	g, err = BuildGrid(&Options{
		U:    []float64{1, 0, 0},
		Bins: [][]float64{{0, 1}},
		Ext:  []float64{4},
	})
	require.NoError(t, err)
	require.Equal(t, []int{5}, g.Shape)
	assert.InDelta(t, 0.25, g.At(1)[0], 1e-12)
}

//TestFixedCoordinate mixes a range with a single fixed coordinate on
//the second axis.
func TestFixedCoordinate(t *testing.T) {
	g, err := BuildGrid(&Options{
		U:    []float64{1, 0, 0},
		V:    []float64{0, 1, 0},
		Bins: [][]float64{{0, 1, 2}, {0.5}},
	})
	require.NoError(t, err)
	require.Equal(t, []int{3, 1}, g.Shape)
	for i := 0; i < 3; i++ {
		assert.Equal(t, [3]float64{float64(i), 0.5, 0}, g.At(i, 0))
	}
}

//TestAxesOverride supplies a full axis matrix instead of separate
//vectors, and an offset.
func TestAxesOverride(t *testing.T) {
	axes, err := v3.NewMatrix([]float64{
		0, 1, 0,
		0, 0, 1,
		1, 0, 0,
	})
	require.NoError(t, err)
	g, err := BuildGrid(&Options{
		U:      []float64{9, 9, 9}, //must be ignored
		Axes:   axes,
		Offset: []float64{0, 0, 10},
		Bins:   [][]float64{{0, 1, 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0, 1, 10}, g.At(1))
}

//TestBinErrors exercises the failure paths: no bins, a gap in the
//prefix, an empty range and a missing axis vector.
func TestBinErrors(t *testing.T) {
	_, err := BuildGrid(nil)
	assert.ErrorIs(t, err, ErrNoBins)

	_, err = BuildGrid(&Options{U: []float64{1, 0, 0}, Bins: [][]float64{nil, {0, 1}}})
	assert.ErrorIs(t, err, ErrBinGap)

	_, err = BuildGrid(&Options{U: []float64{1, 0, 0}, Bins: [][]float64{{1, 1, 0}}})
	assert.ErrorIs(t, err, ErrBadBin)

	_, err = BuildGrid(&Options{Bins: [][]float64{{0, 1, 2}}})
	assert.ErrorIs(t, err, ErrBadAxis)

	_, err = BuildGrid(&Options{U: []float64{1, 0, 0}, Bins: [][]float64{{0, 1, 2, 3}}})
	assert.ErrorIs(t, err, ErrBadBin)
}
