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
	"github.com/cart2600/firmware/curated"
	"github.com/cart2600/firmware/hal"
)

const (
	arMultiloadSize = 8448
	arFooterSize    = 256
	arPageSize      = 2048
)

// bankSelectTable maps the low 3 bits of data_hold to a (bank0, bank1)
// page-source pair, transcribed from cartridge_supercharger.c's switch on
// data_hold & 0x1c -- the low 5 bits the spec calls out, re-expressed here
// as a small lookup since Go has no fallthrough-free duplicate case labels.
var bankSelectTable = map[uint8][2]int{
	0: {2, -1}, // -1 means BIOS ROM, not a RAM page
	4: {2, -1},
	1: {0, -1},
	2: {2, 0},
	3: {0, 2},
	5: {1, -1},
	6: {2, 1},
	7: {1, 2},
}

// AR implements the Supercharger/Starpath cartridge: three 2 KiB RAM pages
// and a 2 KiB BIOS ROM multiplexed into two 2 KiB windows by a "data hold"
// register that's set with a pending-write gesture and committed at
// $1FF8, plus a $1FF9-triggered reload of a different 8448-byte multiload
// from mass storage. Grounded on
// other_examples/3f73a3f8_victor8733-Gopher2600...supercharger.go.go and,
// for the bit-level commit/reload gesture, the original firmware's
// cartridge_supercharger.c.
type AR struct {
	ram [3 * arPageSize]byte
	rom []byte // 2 KiB BIOS, supplied at construction

	bank0, bank1 []byte // current windows; bank1 == rom means "BIOS mapped"

	multiloadMap [256]int // multiload_id -> physical record index
	file         hal.FileProvider
	irq          hal.InterruptControl
	path         string

	addrPrev        uint16
	transitionCount uint32
	pendingWrite    bool
	writeRAMEnabled bool
	dataHold        uint8
}

// NewAR constructs the Supercharger engine. bios must be exactly 2048
// bytes; its last four bytes are patched with the reset/IRQ vector
// ($F807) the way setup_rom does in the original firmware. file must
// already have path open for random access; NewAR scans it once to build
// the multiload_id -> physical index map.
func NewAR(file hal.FileProvider, irq hal.InterruptControl, bios []byte, path string, imageSize int) (*AR, error) {
	if len(bios) != arPageSize {
		return nil, curated.Errorf("scheme: AR BIOS must be exactly 2048 bytes")
	}
	if imageSize <= 0 || imageSize%arMultiloadSize != 0 {
		return nil, curated.Errorf(ErrWrongSize)
	}

	rom := make([]byte, arPageSize)
	copy(rom, bios)
	rom[0x07ff] = 0xf8
	rom[0x07fd] = 0xf8
	rom[0x07fe] = 0x07
	rom[0x07fc] = 0x07

	cart := &AR{
		rom:  rom,
		file: file,
		irq:  irq,
		path: path,
	}
	cart.bank0, cart.bank1 = cart.ram[:arPageSize], cart.rom

	multiloadCount := imageSize / arMultiloadSize
	if err := cart.scanMultiloads(multiloadCount); err != nil {
		return nil, err
	}
	return cart, nil
}

func (cart *AR) scanMultiloads(count int) error {
	for i := range cart.multiloadMap {
		cart.multiloadMap[i] = 0
	}

	if err := cart.file.Mount(); err != nil {
		return err
	}
	defer cart.file.Unmount()
	if err := cart.file.Open(cart.path); err != nil {
		return err
	}
	defer cart.file.Close()

	footer := make([]byte, arFooterSize)
	for i := 0; i < count; i++ {
		offset := uint32((i+1)*arMultiloadSize - arFooterSize)
		if err := cart.file.Seek(offset); err != nil {
			return err
		}
		if _, err := cart.file.Read(footer); err != nil {
			return err
		}
		multiloadID := footer[5]
		cart.multiloadMap[multiloadID] = i
	}
	return nil
}

func (cart *AR) ID() ID { return AR }

func (cart *AR) Read(addr uint16) uint8 {
	local := addr & 0x1fff

	var value uint8
	if local < 0x1800 {
		value = cart.bank0[local&0x07ff]
	} else {
		value = cart.bank1[local&0x07ff]
	}

	switch {
	case local&0x0f00 == 0:
		// any access to $1000-$10FF arms the pending-write gesture,
		// cartridge_supercharger.c's "(addr & 0x0f00) == 0" check -- this
		// is cartridge space (A12 high), not the TIA mirror, confirmed
		// against both the original C firmware and the other_examples
		// Go port's "fullAddr&0xf000==0xf000 && fullAddr<=0xf0ff" gate.
		if !cart.pendingWrite || !cart.writeRAMEnabled {
			cart.dataHold = uint8(local)
			cart.transitionCount = 0
			cart.pendingWrite = true
		}
	case local == 0x1ff8:
		// the commit gesture itself lapses if fewer than 5 transitions
		// have elapsed since the pending write started (spec.md §8
		// scenario 5); an access with no gesture in flight always commits.
		if !cart.pendingWrite || cart.transitionCount >= 5 {
			cart.commit()
		}
	case cart.pendingWrite && cart.writeRAMEnabled && cart.transitionCount == 5:
		cart.pendingWrite = false
		if local < 0x1800 {
			cart.bank0[local&0x07ff] = cart.dataHold
			value = cart.dataHold
		} else if !cart.isROM(cart.bank1) {
			cart.bank1[local&0x07ff] = cart.dataHold
			value = cart.dataHold
		}
	}

	cart.addrPrev = local
	return value
}

// IsWriteAddr directs $1FF9 (with the BIOS mapped into bank1) through
// Write instead of Read, so Run's CaptureWrite hands us the bus's settled
// value the same way cartridge_supercharger.c samples DATA_IN while the
// address holds at $1FF9.
func (cart *AR) IsWriteAddr(addr uint16) bool {
	return addr&0x1fff == 0x1ff9 && cart.isROM(cart.bank1)
}

// Write implements the $1FF9 multiload-reload gesture, gated on the
// previous stable address having been in TIA/RIOT space, matching the
// original firmware's addr_prev<=0xff check.
func (cart *AR) Write(addr uint16, data uint8) {
	local := addr & 0x1fff
	if cart.addrPrev <= 0x00ff {
		cart.reload(data)
	}
	cart.addrPrev = local
}

func (cart *AR) isROM(bank []byte) bool {
	return len(bank) > 0 && &bank[0] == &cart.rom[0]
}

// Clock implements the Clocked hook: every stable bus transition advances
// the commit-gate counter, capped at 6, exactly as cartridge_supercharger.c
// increments transition_count once per outer-loop iteration regardless of
// which address is current.
func (cart *AR) Clock() {
	if cart.transitionCount < 6 {
		cart.transitionCount++
	}
}

// Listen does not drive any Supercharger gesture -- data_hold is armed by
// cartridge-space access, not TIA/RIOT space (see Read) -- but it still
// needs to observe TIA-space traffic so addrPrev reflects the true
// previous stable address for Write's addr_prev<=0xff gate, mirroring
// cartridge_supercharger.c's debounce loop, which updates addr_prev on
// every bus transition regardless of A12.
func (cart *AR) Listen(addr uint16, data uint8) {
	cart.addrPrev = addr
}

// commit applies the bank-select gesture at $1FF8, per spec.md §4.5's
// bank-select table (keyed off the low 3 bits of data_hold).
func (cart *AR) commit() {
	cart.pendingWrite = false
	cart.writeRAMEnabled = cart.dataHold&0x02 != 0

	sel, ok := bankSelectTable[cart.dataHold&0x07]
	if !ok {
		return
	}
	cart.bank0 = cart.page(sel[0])
	if sel[1] == -1 {
		cart.bank1 = cart.rom
	} else {
		cart.bank1 = cart.page(sel[1])
	}
}

func (cart *AR) page(index int) []byte {
	return cart.ram[index*arPageSize : (index+1)*arPageSize]
}

// reload implements the $1FF9 multiload-reload gesture: interrupts are
// re-enabled for the duration of the mass-storage read (the only place in
// the engine that does this, per SPEC_FULL.md §5) and disabled again
// immediately on return.
func (cart *AR) reload(multiloadIDHighByte uint8) {
	physical := cart.multiloadMap[multiloadIDHighByte]

	if cart.irq != nil {
		cart.irq.EnableIRQ()
	}

	buf := make([]byte, arMultiloadSize)
	if cart.file.Mount() == nil {
		if cart.file.Open(cart.path) == nil {
			if cart.file.Seek(uint32(physical*arMultiloadSize)) == nil {
				cart.file.Read(buf)
			}
			cart.file.Close()
		}
		cart.file.Unmount()
	}

	if cart.irq != nil {
		cart.irq.DisableIRQ()
	}

	footer := buf[arMultiloadSize-arFooterSize:]
	blockCount := int(footer[3])
	blockLocation := footer[16 : 16+48]

	for i := 0; i < blockCount && i < 48; i++ {
		loc := blockLocation[i]
		bank := int(loc&0x03) % 3
		base := int(loc&0x1f) >> 2
		dest := bank*arPageSize + base*256
		copy(cart.ram[dest:dest+256], buf[256*i:256*i+256])
	}
}
