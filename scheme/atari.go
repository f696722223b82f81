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

package scheme

import (
	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/curated"
)

// ErrWrongSize is returned by every scheme constructor when the supplied
// plan doesn't match the image size the scheme expects.
const ErrWrongSize = "scheme: wrong number of bytes for this cartridge format"

// Atari implements the "standard" Atari bank-switching family: 2K, 4K, F8,
// F6, F4, EF, and their SC (128-byte superchip RAM) variants. Grounded on
// hardware/memory/cartridge/cartridge_atari.go's atari type: one bank is
// "current", switched by access to a contiguous run of hotspot addresses
// starting at triggerLow, one per bank.
type Atari struct {
	id        ID
	banks     [][]byte
	bank      int
	triggerLow uint16
	switching bool // false for 2K/4K, which never bank-switch
	superchip []byte
}

// atariLayout describes one member of the family: how many 4 KiB banks it
// has and where its bank-switch hotspots start.
var atariLayout = map[ID]struct {
	bankCount  int
	triggerLow uint16
	switching  bool
	superchip  bool
}{
	TwoK:  {1, 0, false, false},
	FourK: {1, 0, false, false},
	F8:    {2, 0x1ff8, true, false},
	F6:    {4, 0x1ff6, true, false},
	F4:    {8, 0x1ff4, true, false},
	EF:    {16, 0x1fe0, true, false},
	F8SC:  {2, 0x1ff8, true, true},
	F6SC:  {4, 0x1ff6, true, true},
	F4SC:  {8, 0x1ff4, true, true},
	EFSC:  {16, 0x1fe0, true, true},
}

// NewAtari constructs the engine for one of the Atari-family scheme IDs,
// given the per-bank pointers already placed by arena.Arena.BankPtr (one
// 4 KiB, or 2 KiB for the bare 2K id, slice per bank).
func NewAtari(id ID, a *arena.Arena, plan arena.ImagePlan) (*Atari, error) {
	layout, ok := atariLayout[id]
	if !ok {
		return nil, curated.Errorf("scheme: %s is not an atari-family scheme", id)
	}
	if plan.BankCount != layout.bankCount {
		return nil, curated.Errorf(ErrWrongSize)
	}

	cart := &Atari{
		id:         id,
		banks:      bankPtrs(a, plan),
		triggerLow: layout.triggerLow,
		switching:  layout.switching,
	}
	if layout.superchip {
		cart.superchip = make([]byte, 256)
	}
	return cart, nil
}

func (cart *Atari) ID() ID { return cart.id }

func (cart *Atari) Read(addr uint16) uint8 {
	local := addr & 0x0fff

	if cart.superchip != nil && local >= 0x80 && local <= 0xff {
		return cart.superchip[local&0x7f]
	}

	cart.bankSwitch(local)

	bankSize := len(cart.banks[cart.bank])
	return cart.banks[cart.bank][int(local)%bankSize]
}

func (cart *Atari) IsWriteAddr(addr uint16) bool {
	if cart.superchip == nil {
		return false
	}
	local := addr & 0x0fff
	return local <= 0x7f
}

func (cart *Atari) Write(addr uint16, data uint8) {
	local := addr & 0x0fff
	if cart.superchip != nil && local <= 0x7f {
		cart.superchip[local] = data
	}
}

// bankSwitch implements invariant 2 of spec.md §8: exactly one bank change
// per triggering access, no effect otherwise. triggerLow is recorded in
// atariLayout the way spec.md §4.5 names a hotspot ($1FF8 etc, A12 set); local
// has already had A12 masked off by Read, so the comparison masks triggerLow
// the same way before comparing, the same trick menu.go's IsWriteAddr uses
// for guardTrigger.
func (cart *Atari) bankSwitch(local uint16) {
	if !cart.switching {
		return
	}
	low := cart.triggerLow & 0x0fff
	hi := low + uint16(len(cart.banks)) - 1
	if local >= low && local <= hi {
		cart.bank = int(local - low)
	}
}
