// This file is part of GopherNES.
//
// GopherNES is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherNES is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherNES.  If not, see <https://www.gnu.org/licenses/>.


// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. Formatting is deferred until the
// Error() function is called.
//
// The Is() function can be used to check whether an error was created with
// a specific pattern. The Has() function is similar but checks if a pattern
// occurs somewhere in the error chain.
//
//	const noBank = "mapper: no bank %d"
//
//	e := curated.Errorf(noBank, n)
//	f := curated.Errorf("hardware: %v", e)
//
//	curated.Is(f, noBank)   // false
//	curated.Has(f, noBank)  // true
//
// Any error values given as placeholder values are part of the error chain
// as far as the errors package is concerned. Sentinel errors created with
// errors.New() can therefore be checked with errors.Is(), whatever verb was
// used in the pattern.
//
// The Error() function normalises the chain so that it does not contain
// duplicate adjacent parts. For the purposes of this package a chain is
// composed of parts separated by the sub-string ": ". For example, the
// message
//
//	hardware: hardware: cartridge: unsupported mapper: 4
//
// will be reported as
//
//	hardware: cartridge: unsupported mapper: 4
package curated
