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

// Package bus defines the abstraction over the console's two physical
// buses: a 13-bit address input and an 8-bit bidirectional data port.
//
// Every scheme engine is built on top of the Pins interface only. Nothing
// in this package, or in the scheme package that consumes it, touches a
// GPIO register directly — that is the job of a hal.GPIO implementation
// (see the hal and halsim packages). This mirrors the separation the
// teacher codebase draws between bus.CPUBus (an abstract access pattern)
// and the concrete VCSMemory implementation behind it.
package bus
