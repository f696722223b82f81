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

// Z0840 implements the Econobanking 0840 scheme: two 4 KiB banks, switched
// by access to $0800 or $0840 rather than a cartridge-space hotspot. Both
// trigger addresses have A12 low (0x0840 & 0x1000 == 0), which is the
// REDESIGN FLAG resolution recorded in SPEC_FULL.md: the bank switch only
// fires when A12 is actually low, never as a side effect of a cartridge-
// space access that happens to share those low bits. Grounded on
// hardware/memory/cartridge/cartridge_0840.go.
type Z0840 struct {
	banks [][]byte
	bank  int
}

func NewZ0840(a *arena.Arena, plan arena.ImagePlan) (*Z0840, error) {
	if plan.BankCount != 2 {
		return nil, curated.Errorf(ErrWrongSize)
	}
	return &Z0840{banks: bankPtrs(a, plan)}, nil
}

func (cart *Z0840) ID() ID { return Z0840 }

func (cart *Z0840) Read(addr uint16) uint8 {
	local := addr & 0x0fff
	return cart.banks[cart.bank][local]
}

func (cart *Z0840) IsWriteAddr(addr uint16) bool { return false }

func (cart *Z0840) Write(addr uint16, data uint8) {}

// Listen implements the trigger: addr&0x1840==0x0800 selects bank 0,
// addr&0x1840==0x0840 selects bank 1. Both values have A12 (0x1000) clear,
// so they only ever arrive through the TIA/RIOT-space Listen path, never
// through Read.
func (cart *Z0840) Listen(addr uint16, data uint8) {
	switch addr & 0x1840 {
	case 0x0800:
		cart.bank = 0
	case 0x0840:
		cart.bank = 1
	}
}
