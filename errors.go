/*
 * errors.go, part of gomag.
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

//Error is the interface for errors that all packages in this library implement. The Decorate
//method allows to add and retrieve info from the error, without changing its type or wrapping
//it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Allows adding information to the error as it is passed up the
	//calling stack. Each call also returns the current decoration slice. If passed an empty
	//string, it just returns the current value without adding anything.
}

//ErrKind labels the distinguishable failure classes of the magnetic
//structure machinery, so callers can react to a class without parsing
//the message.
type ErrKind uint8

const (
	KindUnknown ErrKind = iota
	//KindNoMagneticAtom signals a crystal with no atom carrying a spin.
	KindNoMagneticAtom
	//KindBadParameters signals a malformed or missing generation parameter.
	KindBadParameters
	//KindUnknownMode signals an unrecognized generation mode.
	KindUnknownMode
	//KindCountMismatch signals disagreeing counts between moments,
	//propagation vectors and rotation-plane normals.
	KindCountMismatch
	//KindBadSpinMatrix signals a spin/moment matrix with the wrong shape.
	KindBadSpinMatrix
)

func (k ErrKind) String() string {
	switch k {
	case KindNoMagneticAtom:
		return "no magnetic atom"
	case KindBadParameters:
		return "bad parameters"
	case KindUnknownMode:
		return "unknown mode"
	case KindCountMismatch:
		return "count mismatch"
	case KindBadSpinMatrix:
		return "bad spin matrix"
	}
	return "unknown error"
}

//Commonly used error messages.
const (
	NoMagneticAtoms = "No magnetic atom (spin quantum number > 0) in the unit cell"
	NilData         = "Nil data given"
)

//CError is the concrete error type of the mag package. It fulfills the
//gomag Error interface and carries the kind of the failure.
type CError struct {
	kind    ErrKind
	message string
	deco    []string
}

func newError(kind ErrKind, message string) CError {
	return CError{kind: kind, message: message}
}

func (err CError) Error() string {
	return err.message
}

//Decorate adds the deco string to the decoration slice of the error,
//unless it is empty, and returns the resulting slice.
func (E CError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Kind returns the failure class of the error.
func (err CError) Kind() ErrKind {
	return err.kind
}

//Kind returns the failure class of err, or KindUnknown if err is not
//a mag error (or is nil).
func Kind(err error) ErrKind {
	if err == nil {
		return KindUnknown
	}
	if cerr, ok := err.(CError); ok {
		return cerr.Kind()
	}
	return KindUnknown
}

//errDecorate asserts that err implements the gomag Error interface and
//decorates it with the caller's name before returning it. It will
//panic if used on any other error type.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
