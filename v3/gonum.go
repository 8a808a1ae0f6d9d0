/*
 * gonum.go, part of gomag.
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

//All the *Vec functions operate on, or produce, row vectors. Within the
//package it is understood that a "vector" is a row of the matrix, i.e.
//the cartesian coordinates of a point or a moment in 3D space.

package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Matrix is a set of vectors in 3D space, as the rows of an Nx3 matrix.
//It is based on gonum's Dense type, with some additional restrictions
//because of the fixed number of columns, and some additional functions
//that were found useful for the purposes of gomag.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the gonum Dense matrix underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a gonum Dense matrix into a Matrix. It does not
//check that A has 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//NVecs returns the number of vectors in the receiver.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//VecView returns a view of the ith vector of the matrix in the receiver.
//Changes in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from i,j and spanning r rows and
//c columns. Changes in the view are reflected in F and vice-versa.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//SomeVecs puts the vectors of A with the indexes in clist into the
//receiver, in order. Panics if the receiver has the wrong number of
//vectors or an index is out of range.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, _ := A.Dims()
	fr, _ := F.Dims()
	if fr != len(clist) {
		panic(mat.ErrShape)
	}
	for i, j := range clist {
		if j >= ar {
			panic(mat.ErrRowAccess)
		}
		for c := 0; c < 3; c++ {
			F.Set(i, c, A.At(j, c))
		}
	}
}

//Mul wraps mat.Mul to take care of the case when one of the
//arguments is also the receiver. The receiver must have the
//dimensions of the product.
func (F *Matrix) Mul(A, B mat.Matrix) {
	var t mat.Dense
	t.Mul(A, B)
	r, c := t.Dims()
	fr, fc := F.Dims()
	if fr != r || fc != c {
		panic(mat.ErrShape)
	}
	F.Dense.Copy(&t)
}

//AddVec adds the 1x3 row vector vec to each vector of A, putting
//the result in the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	vr, vc := vec.Dims()
	if vr != 1 || vc != 3 {
		panic(mat.ErrShape)
	}
	ar, _ := A.Dims()
	for i := 0; i < ar; i++ {
		for c := 0; c < 3; c++ {
			F.Set(i, c, A.At(i, c)+vec.At(0, c))
		}
	}
}

//SubVec subtracts the 1x3 row vector vec from each vector of A,
//putting the result in the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	vr, vc := vec.Dims()
	if vr != 1 || vc != 3 {
		panic(mat.ErrShape)
	}
	ar, _ := A.Dims()
	for i := 0; i < ar; i++ {
		for c := 0; c < 3; c++ {
			F.Set(i, c, A.At(i, c)-vec.At(0, c))
		}
	}
}

//Cross puts the cross product of the 1x3 vectors a and b in the
//receiver, which must also be 1x3.
func (F *Matrix) Cross(a, b *Matrix) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	fr, fc := F.Dims()
	if ar != 1 || ac != 3 || br != 1 || bc != 3 || fr != 1 || fc != 3 {
		panic(mat.ErrShape)
	}
	c0 := a.At(0, 1)*b.At(0, 2) - a.At(0, 2)*b.At(0, 1)
	c1 := a.At(0, 2)*b.At(0, 0) - a.At(0, 0)*b.At(0, 2)
	c2 := a.At(0, 0)*b.At(0, 1) - a.At(0, 1)*b.At(0, 0)
	F.Set(0, 0, c0)
	F.Set(0, 1, c1)
	F.Set(0, 2, c2)
}

//Dot returns the dot product of the receiver and B, taken as flat
//vectors. Both must have the same shape.
func (F *Matrix) Dot(B *Matrix) float64 {
	fr, fc := F.Dims()
	br, bc := B.Dims()
	if fr != br || fc != bc {
		panic(mat.ErrShape)
	}
	var d float64
	for i := 0; i < fr; i++ {
		for c := 0; c < fc; c++ {
			d += F.At(i, c) * B.At(i, c)
		}
	}
	return d
}

//Norm returns the Frobenius norm of the receiver, which for a 1x3
//vector is the Euclidean norm.
func (F *Matrix) Norm() float64 {
	return mat.Norm(F.Dense, 2)
}

//Unit puts in the receiver the unit vector in the direction of A.
//It does not check for the zero vector.
func (F *Matrix) Unit(A *Matrix) {
	norm := A.Norm()
	F.Scale(1.0/norm, A)
}

//Angle takes 2 vectors and calculates the angle in radians between them.
//It does not check for correctness or return errors!
func Angle(v1, v2 *Matrix) float64 {
	normproduct := v1.Norm() * v2.Norm()
	dotprod := v1.Dot(v2)
	argument := dotprod / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//RotatorAroundAxis returns an operator that, when applied to a set of
//vectors (with the operator on the right side) rotates them by angle
//radians around axis, following the right-hand rule. The axis needs
//not be a unit vector.
func RotatorAroundAxis(axis *Matrix, angle float64) (*Matrix, error) {
	r, c := axis.Dims()
	if r != 1 || c != 3 {
		return nil, Error{"Rotation axis must be a 1x3 vector", []string{"RotatorAroundAxis"}, true}
	}
	if axis.Norm() <= appzero {
		return nil, Error{"Rotation axis is the zero vector", []string{"RotatorAroundAxis"}, true}
	}
	u := Zeros(1)
	u.Unit(axis)
	ux := u.At(0, 0)
	uy := u.At(0, 1)
	uz := u.At(0, 2)
	sin := math.Sin(angle)
	cos := math.Cos(angle)
	mcos := 1 - cos
	//This is the transpose of the usual column-vector operator, as we
	//apply it on the right of our row vectors.
	operator := []float64{
		cos + ux*ux*mcos, ux*uy*mcos + uz*sin, ux*uz*mcos - uy*sin,
		uy*ux*mcos - uz*sin, cos + uy*uy*mcos, uy*uz*mcos + ux*sin,
		uz*ux*mcos + uy*sin, uz*uy*mcos - ux*sin, cos + uz*uz*mcos,
	}
	return NewMatrix(operator)
}

//Errors

//Error is the v3 implementation of the gomag Error interface.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return err.message
}

//Decorate adds the deco string to the decoration slice of the error,
//unless it is empty, and returns the resulting slice.
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err Error) Critical() bool { return err.critical }
