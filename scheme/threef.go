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

// ThreeFCart implements the Tigervision 3F scheme: n 2 KiB banks switched by
// a write anywhere in $0000-$003F (TIA mirror space, A12 low), the low bits
// of the write value selecting the bank for the lower 2 KiB window; the
// upper 2 KiB window is always the last bank. Grounded on
// hardware/memory/cartridge/cartridge_3fx.go's tigervision-style cartMapper
// and its listen() hook.
type ThreeFCart struct {
	banks [][]byte
	bank  int
}

func NewThreeF(a *arena.Arena, plan arena.ImagePlan) (*ThreeFCart, error) {
	if plan.BankCount < 2 {
		return nil, curated.Errorf(ErrWrongSize)
	}
	return &ThreeFCart{banks: bankPtrs(a, plan)}, nil
}

func (cart *ThreeFCart) ID() ID { return ThreeF }

func (cart *ThreeFCart) Read(addr uint16) uint8 {
	local := addr & 0x0fff
	if local >= 0x0800 {
		last := cart.banks[len(cart.banks)-1]
		return last[local-0x0800]
	}
	return cart.banks[cart.bank][local]
}

func (cart *ThreeFCart) IsWriteAddr(addr uint16) bool { return false }

func (cart *ThreeFCart) Write(addr uint16, data uint8) {}

// Listen implements the bank-switch trigger: any write to $0000-$003F.
func (cart *ThreeFCart) Listen(addr uint16, data uint8) {
	if addr > 0x003f {
		return
	}
	bank := int(data) % len(cart.banks)
	cart.bank = bank
}
