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

// Package scheme implements the per-bank-switching-scheme bus response
// state machines of SPEC_FULL.md §4.5: one Engine per scheme, each a tight
// decoder over a single stable address sample plus, where the scheme
// requires it, a captured write value.
//
// Every Engine is built the way a cartMapper was built in the teacher
// codebase (hardware/memory/cartridge/*.go): a struct holding bank slices
// and a small amount of state, with a Read/Write pair doing all the
// decoding. The difference from the teacher is one of direction and of
// who calls whom: a cartMapper answers "what byte is at this address",
// called synchronously from an emulated CPU instruction; an Engine's
// Read/Write are pure functions of (address[, data]) called by Run, which
// is the thing that actually owns the infinite busy-wait loop and knows
// about real bus timing. Keeping Read/Write pure and pin-free is what
// makes every scheme unit-testable without a live bus.
package scheme

import (
	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/bus"
)

// ID names a bank-switching scheme, matching the table in SPEC_FULL.md §4.5.
type ID string

const (
	TwoK    ID = "2K"
	FourK   ID = "4K"
	F8      ID = "F8"
	F6      ID = "F6"
	F4      ID = "F4"
	EF      ID = "EF"
	F8SC    ID = "F8SC"
	F6SC    ID = "F6SC"
	F4SC    ID = "F4SC"
	EFSC    ID = "EFSC"
	FA      ID = "FA"
	FE      ID = "FE"
	ThreeF  ID = "3F"
	ThreeE  ID = "3E"
	ThreeEX ID = "3EX"
	E0      ID = "E0"
	Z0840   ID = "0840"
	CV      ID = "CV"
	F0      ID = "F0"
	E7      ID = "E7"
	DPC     ID = "DPC"
	AR      ID = "AR"
	ACE     ID = "ACE"
)

// Engine is implemented by every scheme's bus-response state machine.
//
// Read is called once per stable address sampled while A12 is high; it
// returns the byte the cartridge should drive and performs any read-
// triggered bank switch as a side effect (F8/F6/F4/EF/FA/F0/E0/E7/DPC all
// bank-switch on access, not on a distinguished write).
//
// Write is called when Run determines addr falls in a range the scheme
// wants to observe writes on — either genuine cartridge RAM, or (3F/3E)
// writes that are never answered with data but still drive a bank switch.
// data is the already-captured write byte (SPEC_FULL.md §4.1's
// write-capture procedure, performed by Run, not by the engine).
// IsWriteAddr reports whether Run should bother capturing a write at all;
// most schemes only care about a handful of addresses and the engine
// itself is in the best position to know which.
type Engine interface {
	ID() ID
	Read(addr uint16) (value uint8)
	IsWriteAddr(addr uint16) bool
	Write(addr uint16, data uint8)
}

// Listener is implemented by schemes that react to bus activity *outside*
// cartridge space (A12 low): 3F/3E watch writes to $0000-$003F, FE watches
// a read of $01FE. The cartridge never drives the bus down there and can't
// tell a read from a write by pin state alone, so Run simply reports
// whatever value settles on the data bus while addr is stable, the same
// way it captures a genuine cartridge-space write. This generalizes the
// teacher's cartMapper.listen() hook (written only for Tigervision's
// TIA-mirror write trick) to also cover FE's read-triggered bank flip.
type Listener interface {
	Listen(addr uint16, data uint8)
}

// Clocked is implemented by schemes whose internal state advances once per
// bus cycle regardless of whether that cycle touches the cartridge at all
// (DPC's ~21 kHz music and RNG tick). Run calls Clock once per loop
// iteration, generalizing the teacher's dpc.step(), which the original
// codebase drives from the CPU's per-cycle loop rather than from any
// cartridge access.
type Clocked interface {
	Clock()
}

// Run is the flat loop skeleton shared by every scheme (SPEC_FULL.md §4.5):
// precompute bank pointers (done by the engine's constructor, not here),
// then loop forever sampling the address and dispatching to Read/Write.
// stable selects the two-sample or three-sample form per SPEC_FULL.md's
// Open Question resolution.
//
// Run never returns and is not itself exercised by unit tests for that
// reason (spec.md §5: no suspension points, only busy-waits on the address
// bus); Read/Write/Listen carry all the decode logic and are what the test
// suites drive directly.
func Run(pins bus.Pins, e Engine, stable func(bus.Pins) uint16) {
	listener, _ := e.(Listener)
	clocked, _ := e.(Clocked)

	for {
		addr := stable(pins)

		if clocked != nil {
			clocked.Clock()
		}

		if addr&0x1000 == 0 {
			if listener != nil {
				// writes in TIA/RIOT space can still be bank-switch
				// triggers for 3F/3E-style cartridges; capture and forward
				// them even though the cartridge never drives a response.
				data := bus.CaptureWrite(pins, addr)
				listener.Listen(addr, data)
			}
			continue
		}

		if e.IsWriteAddr(addr) {
			data := bus.CaptureWrite(pins, addr)
			e.Write(addr, data)
			continue
		}

		value := e.Read(addr)
		respond(pins, addr, value)
	}
}

// respond drives value onto the data bus, waits for the CPU to move on to
// a new address, then releases the bus.
func respond(pins bus.Pins, addr uint16, value uint8) {
	pins.DriveData(value)
	for pins.SampleAddr() == addr {
	}
	pins.ReleaseData()
}

// bankPtrs is a small helper every atari-family engine uses to snapshot an
// ImagePlan's bank pointers once, at construction time, following the
// "shared bank-table" design note in SPEC_FULL.md §9: a bank switch becomes
// a single index assignment into this slice, never pointer arithmetic
// inside the hot loop.
func bankPtrs(a *arena.Arena, plan arena.ImagePlan) [][]byte {
	ptrs := make([][]byte, plan.BankCount)
	for i := range ptrs {
		ptrs[i] = a.BankPtr(plan, i)
	}
	return ptrs
}
