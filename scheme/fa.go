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

// FA implements the CBS RAM-Plus scheme: 12 KiB in three 4 KiB banks, a
// 256-byte RAM window at $1000-$11FF (write port $1000-$10FF, read port
// $1100-$11FF), and a bank-switch trigger at $1FF8-$1FFA. Grounded on
// hardware/memory/cartridge/cartridge_cbs.go's cbs type.
type FA struct {
	banks [][]byte
	bank  int
	ram   [256]byte
}

func NewFA(a *arena.Arena, plan arena.ImagePlan) (*FA, error) {
	if plan.BankCount != 3 {
		return nil, curated.Errorf(ErrWrongSize)
	}
	return &FA{banks: bankPtrs(a, plan), bank: 2}, nil
}

func (cart *FA) ID() ID { return FA }

func (cart *FA) Read(addr uint16) uint8 {
	local := addr & 0x0fff

	if local >= 0x0100 && local <= 0x01ff {
		return cart.ram[local-0x0100]
	}

	data := cart.banks[cart.bank][local]
	cart.maybeSwitch(local)
	return data
}

func (cart *FA) IsWriteAddr(addr uint16) bool {
	local := addr & 0x0fff
	return local <= 0x00ff
}

func (cart *FA) Write(addr uint16, data uint8) {
	local := addr & 0x0fff
	if local <= 0x00ff {
		cart.ram[local] = data
	}
}

func (cart *FA) maybeSwitch(local uint16) {
	switch local {
	case 0x0ff8:
		cart.bank = 0
	case 0x0ff9:
		cart.bank = 1
	case 0x0ffa:
		cart.bank = 2
	}
}
