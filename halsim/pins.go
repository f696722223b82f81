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

package halsim

import "github.com/cart2600/firmware/bus"

// Pins simulates the address/data bus a scheme engine is driven through. A
// test drives the console side by calling SetAddr/SetData directly; the
// engine under test drives the cartridge side through the bus.Pins
// methods. This plays the role the teacher's DebugBus (Peek/Poke) plays:
// a meta-interface for tests, layered over the same pin state the engine
// sees.
type Pins struct {
	addr     uint16
	data     uint8
	driving  bool
	consoleT bus.ConsoleType
}

func NewPins() *Pins { return &Pins{} }

// --- bus.Pins ---

func (p *Pins) SampleAddr() uint16 { return p.addr }

func (p *Pins) SampleData() uint8 { return p.data }

func (p *Pins) DriveData(b uint8) {
	p.driving = true
	p.data = b
}

func (p *Pins) ReleaseData() {
	p.driving = false
}

// --- bus.ConsoleDetect ---

func (p *Pins) ConsoleType() bus.ConsoleType { return p.consoleT }

// --- test-side console simulation ---

// SetAddr drives a new address onto the bus, as the 6502 would.
func (p *Pins) SetAddr(addr uint16) { p.addr = addr }

// SetData drives a value onto the data bus during a CPU write cycle,
// without going through DriveData (which is reserved for the cartridge
// side).
func (p *Pins) SetData(b uint8) {
	if !p.driving {
		p.data = b
	}
}

// IsDriving reports whether the cartridge side currently owns the data
// bus, for assertions in tests.
func (p *Pins) IsDriving() bool { return p.driving }

// LastDriven returns the byte last asserted via DriveData, for assertions
// that don't want to race ReleaseData.
func (p *Pins) LastDriven() uint8 { return p.data }

// SetConsoleType fixes the simulated console-type detect pins.
func (p *Pins) SetConsoleType(t bus.ConsoleType) { p.consoleT = t }
