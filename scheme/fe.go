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

// FE implements the Activision bank-switching trick: two 4 KiB banks with
// no hotspot in cartridge space at all. The real cartridge snoops the
// address bus for an access to $01FE, which only ever happens as a
// byproduct of the 6502 pushing a return address during the JSR that
// enters the game's second bank; whatever byte is on the data bus at that
// moment has its bit 5 telling the cartridge which bank to present on the
// very next access. Grounded on hardware/memory/cartridge/cartridge_atari.go
// (the "fe" type lives alongside atari there in the teacher), generalized
// here through the Listener hook added for exactly this case.
type FE struct {
	banks   [][]byte
	bank    int
	pending bool
}

func NewFE(a *arena.Arena, plan arena.ImagePlan) (*FE, error) {
	if plan.BankCount != 2 {
		return nil, curated.Errorf(ErrWrongSize)
	}
	return &FE{banks: bankPtrs(a, plan)}, nil
}

func (cart *FE) ID() ID { return FE }

func (cart *FE) Read(addr uint16) uint8 {
	local := addr & 0x0fff
	return cart.banks[cart.bank][local]
}

func (cart *FE) IsWriteAddr(addr uint16) bool { return false }

func (cart *FE) Write(addr uint16, data uint8) {}

// Listen watches every TIA/RIOT-space access for $01FE, per invariant 2 of
// spec.md §8: the trigger is "address equal to $01FE on the previous
// cycle", not a write as such.
func (cart *FE) Listen(addr uint16, data uint8) {
	if addr != 0x01fe {
		return
	}
	if data&0x20 != 0 {
		cart.bank = 0
	} else {
		cart.bank = 1
	}
}
