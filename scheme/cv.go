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

// CV implements the Commavid scheme: a fixed 2 KiB ROM window at
// $1800-$1FFF and a 1 KiB RAM window at $1000-$17FF, with separate read and
// write ports into the same RAM (read at $1000-$13FF, write at
// $1400-$17FF). No bank switching. Grounded on
// hardware/memory/cartridge/cartridge_cv.go.
type CV struct {
	rom []byte
	ram [1024]byte
}

func NewCV(a *arena.Arena, plan arena.ImagePlan) (*CV, error) {
	if plan.BankCount != 1 {
		return nil, curated.Errorf(ErrWrongSize)
	}
	return &CV{rom: a.BankPtr(plan, 0)}, nil
}

func (cart *CV) ID() ID { return CV }

func (cart *CV) Read(addr uint16) uint8 {
	local := addr & 0x0fff
	if local >= 0x0800 {
		return cart.rom[local-0x0800]
	}
	if local <= 0x03ff {
		return cart.ram[local]
	}
	return 0
}

func (cart *CV) IsWriteAddr(addr uint16) bool {
	local := addr & 0x0fff
	return local >= 0x0400 && local <= 0x07ff
}

func (cart *CV) Write(addr uint16, data uint8) {
	local := addr & 0x0fff
	if local >= 0x0400 && local <= 0x07ff {
		cart.ram[local-0x0400] = data
	}
}
