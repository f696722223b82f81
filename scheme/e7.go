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

// E7 implements the M-Network E7 scheme: 16 KiB ROM in eight 2 KiB banks
// plus 2 KiB of RAM, mapped through two windows. The lower window
// ($1000-$17FF) holds either one of the first seven ROM banks or a 1 KiB
// RAM bank (selected by access to $1FE0-$1FE7, with $1FE7 meaning RAM); the
// upper window's first 512 bytes ($1800-$19FF) show one of four 256-byte RAM
// sub-banks (selected by $1FE8-$1FEB), the same 256 bytes at $1800-$18FF
// and $1900-$19FF, and the rest of that window ($1A00-$1FFF) shows the
// matching bytes of the last ROM bank. The 1 KiB lower RAM bank is split
// into independent read ($1000-$13FF) and write ($1400-$17FF) halves per
// spec.md, mirroring the teacher's
// hardware/memory/cartridge/cartridge_mnetwork.go.
type E7 struct {
	rom    [][]byte // 8 x 2 KiB, index 7 fixed into the upper window
	ram    [1024]byte
	subRAM [4 * 256]byte

	lowerIsRAM bool
	lowerBank  int // 0..6 when lowerIsRAM is false
	subBank    int
}

func NewE7(a *arena.Arena, plan arena.ImagePlan) (*E7, error) {
	if plan.BankCount != 8 {
		return nil, curated.Errorf(ErrWrongSize)
	}
	return &E7{rom: bankPtrs(a, plan)}, nil
}

func (cart *E7) ID() ID { return E7 }

func (cart *E7) Read(addr uint16) uint8 {
	local := addr & 0x0fff
	cart.bankSwitch(local)

	switch {
	case local <= 0x07ff:
		if cart.lowerIsRAM {
			if local <= 0x03ff {
				return cart.ram[local]
			}
			return 0
		}
		return cart.rom[cart.lowerBank][local]

	case local <= 0x09ff:
		return cart.subRAM[cart.subBank*256+int(local&0x00ff)]

	default:
		return cart.rom[7][local-0x0800]
	}
}

func (cart *E7) IsWriteAddr(addr uint16) bool {
	local := addr & 0x0fff
	if cart.lowerIsRAM && local >= 0x0400 && local <= 0x07ff {
		return true
	}
	return local >= 0x0800 && local <= 0x09ff
}

func (cart *E7) Write(addr uint16, data uint8) {
	local := addr & 0x0fff

	if cart.lowerIsRAM && local >= 0x0400 && local <= 0x07ff {
		cart.ram[local-0x0400] = data
		return
	}
	if local >= 0x0800 && local <= 0x09ff {
		cart.subRAM[cart.subBank*256+int(local&0x00ff)] = data
	}
}

// bankSwitch implements the two hotspot ranges: $1FE0-$1FE7 select the
// lower window ($1FE7 meaning "RAM instead of ROM"), $1FE8-$1FEB select
// the 256 B sub-bank for $1800-$19FF.
func (cart *E7) bankSwitch(local uint16) {
	switch {
	case local >= 0x0fe0 && local <= 0x0fe6:
		cart.lowerIsRAM = false
		cart.lowerBank = int(local - 0x0fe0)
	case local == 0x0fe7:
		cart.lowerIsRAM = true
	case local >= 0x0fe8 && local <= 0x0feb:
		cart.subBank = int(local - 0x0fe8)
	}
}
