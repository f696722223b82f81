// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package arena implements the tiered region manager described in
// SPEC_FULL.md §4.2: a "hot" region of zero-wait-state RAM, a "flash"
// region of erasable/programmable on-chip flash, and a "buffer" region of
// general RAM used both for partial-image staging and, for some schemes,
// as cartridge RAM banks.
//
// Nothing in this package knows about 6502 addressing or bank-switch
// triggers; that is the scheme package's job. The arena only answers "where
// does byte N of a bank live, and how do I get bytes into flash".
package arena
