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

// E0 implements the Parker Bros E0 scheme: 8 KiB in eight 1 KiB banks,
// mapped through four 1 KiB windows. The top window ($1C00-$1FFF) is
// hardwired to the last bank; the other three are independently switched
// by access to one of three 8-entry hotspot ranges. Grounded on
// hardware/memory/cartridge/cartridge_parkerbros.go.
type E0 struct {
	banks [][]byte
	slot  [3]int // which bank backs window 0, 1, 2
}

func NewE0(a *arena.Arena, plan arena.ImagePlan) (*E0, error) {
	if plan.BankCount != 8 {
		return nil, curated.Errorf(ErrWrongSize)
	}
	return &E0{banks: bankPtrs(a, plan), slot: [3]int{4, 5, 6}}, nil
}

func (cart *E0) ID() ID { return E0 }

func (cart *E0) Read(addr uint16) uint8 {
	local := addr & 0x0fff
	cart.bankSwitch(local)

	window := local >> 10 // 0..3, each window is 1 KiB
	offset := local & 0x03ff

	if window == 3 {
		return cart.banks[7][offset]
	}
	return cart.banks[cart.slot[window]][offset]
}

func (cart *E0) IsWriteAddr(addr uint16) bool { return false }

func (cart *E0) Write(addr uint16, data uint8) {}

// bankSwitch implements the three hotspot ranges: $1FE0-$1FE7 -> window 0,
// $1FE8-$1FEF -> window 1, $1FF0-$1FF7 -> window 2.
func (cart *E0) bankSwitch(local uint16) {
	switch {
	case local >= 0x0fe0 && local <= 0x0fe7:
		cart.slot[0] = int(local - 0x0fe0)
	case local >= 0x0fe8 && local <= 0x0fef:
		cart.slot[1] = int(local - 0x0fe8)
	case local >= 0x0ff0 && local <= 0x0ff7:
		cart.slot[2] = int(local - 0x0ff0)
	}
}
