// This file is part of GopherPPC.
//
// GopherPPC is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherPPC is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherPPC.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function. Unlike fmt.Errorf() the formatting pattern is retained
// and can be used to identify the error with the Is() and Has() functions.
//
//	e := curated.Errorf("illegal opcode: %08x", op)
//
//	if curated.Is(e, "illegal opcode: %08x") {
//		fmt.Println("true")
//	}
//
// Has() is similar but checks the entire chain of curated errors, where a
// curated error is placed in the values list of another curated error:
//
//	f := curated.Errorf("ppc: %v", e)
//
//	if curated.Has(f, "illegal opcode: %08x") {
//		fmt.Println("true")
//	}
//
// The Error() implementation normalises the message by removing duplicate
// adjacent parts of the chain. This means a function can wrap an error with a
// prefix without worrying whether the callee has already used the same
// prefix.
//
// Curated errors also work with the errors package in the standard library.
// The first error value in the values list is returned by Unwrap().
package curated
