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

// F0 implements the Dynacom Megaboy scheme: 64 KiB in sixteen 4 KiB banks,
// with a single hotspot at $1FF0 that increments the bank index modulo 16
// on every access (there is no direct-select, only advance). Grounded on
// hardware/memory/cartridge/cartridge_dynacom.go.
type F0 struct {
	banks [][]byte
	bank  int
}

func NewF0(a *arena.Arena, plan arena.ImagePlan) (*F0, error) {
	if plan.BankCount != 16 {
		return nil, curated.Errorf(ErrWrongSize)
	}
	return &F0{banks: bankPtrs(a, plan)}, nil
}

func (cart *F0) ID() ID { return F0 }

func (cart *F0) Read(addr uint16) uint8 {
	local := addr & 0x0fff
	if local == 0x0ff0 {
		cart.bank = (cart.bank + 1) % len(cart.banks)
	}
	return cart.banks[cart.bank][local]
}

func (cart *F0) IsWriteAddr(addr uint16) bool { return false }

func (cart *F0) Write(addr uint16, data uint8) {}
