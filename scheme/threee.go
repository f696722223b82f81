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

// ThreeE implements the Parker Bros 3E scheme: the lower 2 KiB window
// ($1000-$17FF) is switched between ROM banks (write to $003F selects one)
// and 1 KiB RAM banks (write to $003E selects one, mapped read at
// $1000-$13FF, write at $1400-$17FF); the upper 2 KiB window is always the
// last ROM bank. 3EX is the same engine with a larger RAM-bank pool backing
// it, so one type serves both IDs. Grounded on
// hardware/memory/cartridge/cartridge_3e.go.
type ThreeE struct {
	id      ID
	romBank [][]byte
	ramBank [][]byte
	rom     int
	ram     int
	usingRAM bool
}

func newThreeE(id ID, a *arena.Arena, plan arena.ImagePlan, ramBanks int) (*ThreeE, error) {
	if plan.BankCount < 2 {
		return nil, curated.Errorf(ErrWrongSize)
	}
	cart := &ThreeE{
		id:      id,
		romBank: bankPtrs(a, plan),
		ramBank: make([][]byte, ramBanks),
	}
	for i := range cart.ramBank {
		cart.ramBank[i] = make([]byte, 1024)
	}
	return cart, nil
}

// NewThreeE constructs the plain 3E engine with 32 RAM banks of 1 KiB.
func NewThreeE(a *arena.Arena, plan arena.ImagePlan) (*ThreeE, error) {
	return newThreeE(ThreeE, a, plan, 32)
}

// NewThreeEX constructs the 3EX variant, whose RAM-bank pool is sized off
// the arena's buffer region (spec.md: "larger RAM-bank pool (BUFFER_SIZE
// banks)") rather than the fixed count plain 3E uses.
func NewThreeEX(a *arena.Arena, plan arena.ImagePlan) (*ThreeE, error) {
	ramBanks := arena.BufferCapacity / 1024
	return newThreeE(ThreeEX, a, plan, ramBanks)
}

func (cart *ThreeE) ID() ID { return cart.id }

func (cart *ThreeE) Read(addr uint16) uint8 {
	local := addr & 0x0fff

	if local >= 0x0800 {
		last := cart.romBank[len(cart.romBank)-1]
		return last[local-0x0800]
	}

	if cart.usingRAM {
		if local <= 0x03ff {
			return cart.ramBank[cart.ram][local]
		}
		return 0
	}
	return cart.romBank[cart.rom][local]
}

func (cart *ThreeE) IsWriteAddr(addr uint16) bool {
	local := addr & 0x0fff
	return cart.usingRAM && local >= 0x0400 && local <= 0x07ff
}

func (cart *ThreeE) Write(addr uint16, data uint8) {
	local := addr & 0x0fff
	if cart.usingRAM && local >= 0x0400 && local <= 0x07ff {
		cart.ramBank[cart.ram][local-0x0400] = data
	}
}

// Listen implements the two bank-switch triggers: write to $003F selects a
// ROM bank into the lower window; write to $003E switches that window to a
// RAM bank instead.
func (cart *ThreeE) Listen(addr uint16, data uint8) {
	switch addr {
	case 0x003f:
		cart.usingRAM = false
		cart.rom = int(data) % len(cart.romBank)
	case 0x003e:
		cart.usingRAM = true
		cart.ram = int(data) % len(cart.ramBank)
	}
}
