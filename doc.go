/*
 * doc.go, part of gomag.
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

/*Package mag provides crystal lattice and magnetic atom structures, and
facilities for generating and validating magnetic moment configurations
on (possibly enlarged) supercells. A configuration is stored as a minimal
set of complex Fourier components plus propagation vectors, the MagStr
record, from which the real-space moments can be recovered at any site.

The central entry point is Generate, which consumes a Crystal (lattice
geometry plus the magnetic atom table) and a Params record, and produces
a fresh MagStr under one of several generation modes: random moments,
directly specified moments, helical rotation across the supercell, rigid
rotation of an existing structure, a user-supplied parametrization
function, plain supercell tiling, or explicit Fourier components.
Crystal.GenMagStr wraps Generate and swaps the new record into the
crystal only on success, so a failed call never disturbs the stored
structure.

Reciprocal-space sampling grids, used by plotting and dispersion codes,
live in the separate qgrid subpackage and do not depend on this one.

Moment and position containers are v3.Matrix values (one row per atom);
the complex Fourier blocks are gonum CDense matrices with 3 rows and one
column per atom of the magnetic supercell, one block per propagation
vector.
*/
package mag
