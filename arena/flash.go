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

package arena

import (
	"github.com/cart2600/firmware/curated"
	"github.com/cart2600/firmware/hal"
)

// Flash error patterns, matched with curated.Is.
const (
	ErrFlashOverlapsFirmware = "arena: flash reservation overlaps firmware region"
	ErrFlashTooSmall         = "arena: flash reservation size must be non-zero"
	ErrFlashExceedsCapacity  = "arena: flash reservation exceeds available flash"
	ErrFlashOutOfBounds      = "arena: write outside reserved flash context"
	ErrFlashStale            = "arena: flash context invalidated by a later PrepareFlash"
)

// flashState is the Locked -> Unlocked -> Erasing -> Programming -> Locked
// state machine from SPEC_FULL.md §4.2. Any error path restores Locked.
type flashState int

const (
	flashLocked flashState = iota
	flashUnlocked
	flashErasing
	flashProgramming
)

// FlashContext is the erase/program cursor returned by PrepareFlash. Writes
// are append-only within a single preparation; a fresh PrepareFlash
// invalidates any context from a previous call.
type FlashContext struct {
	base      uint32
	reserved  uint32
	nextWrite uint32
	generation uint64
}

// Base is the address of the first byte of the reserved extent.
func (c *FlashContext) Base() uint32 { return c.base }

// NextWrite is the monotonically increasing write pointer.
func (c *FlashContext) NextWrite() uint32 { return c.nextWrite }

// Arena is the tiered region manager (SPEC_FULL.md §4.2).
type Arena struct {
	driver    hal.FlashDriver
	flashSize uint32
	bounds    []uint32

	state      flashState
	generation uint64

	// firstFreeByte is the lowest byte AvailableFlash counts as usable: it
	// starts at FlashReserved and is set to the base of each PrepareFlash
	// reservation (no rounding); AvailableFlash reports the gap between
	// this and the top of the part.
	firstFreeByte uint32

	hot    [HotCapacity]byte
	buffer [BufferCapacity]byte

	// flashMap mirrors the memory-mapped view of flash. On real hardware
	// flash reads bypass the controller entirely (the part is mapped
	// directly into the address space); WriteFlash keeps this mirror in
	// sync with what was actually programmed so that BankPtr can hand out
	// ordinary byte-slice views.
	flashMap []byte
}

// NewArena constructs an Arena driving the given flash controller, on a
// part advertising flashSize total bytes (read from the device ID word by
// the caller).
func NewArena(driver hal.FlashDriver, flashSize uint32) *Arena {
	a := &Arena{
		driver:        driver,
		flashSize:     flashSize,
		bounds:        sectorBoundaries(flashSize),
		firstFreeByte: FlashReserved,
		flashMap:      make([]byte, flashSize),
	}
	return a
}

// AvailableFlash reports flashSize - firstFreeByte, or 0 if firstFreeByte
// is at or past the top of the part.
func (a *Arena) AvailableFlash() uint32 {
	if a.firstFreeByte >= a.flashSize {
		return 0
	}
	return a.flashSize - a.firstFreeByte
}

// PrepareFlash reserves the top `size` bytes of flash and erases every
// sector the reservation touches. Refuses if size is 0 or the reservation
// would dip into the firmware-reserved low region.
func (a *Arena) PrepareFlash(size uint32) (*FlashContext, error) {
	if size == 0 {
		return nil, curated.Errorf(ErrFlashTooSmall)
	}
	if size > a.AvailableFlash() {
		return nil, curated.Errorf(ErrFlashExceedsCapacity)
	}

	base := a.flashSize - size
	if base < FlashReserved {
		return nil, curated.Errorf(ErrFlashOverlapsFirmware)
	}

	if err := a.driver.Unlock(); err != nil {
		a.state = flashLocked
		return nil, err
	}
	a.state = flashUnlocked

	a.state = flashErasing
	firstSector := sectorContaining(a.bounds, a.flashSize, base)
	lastSector := sectorContaining(a.bounds, a.flashSize, a.flashSize-1)
	for id := firstSector; id <= lastSector; id++ {
		if err := a.driver.EraseSector(id); err != nil {
			a.driver.Lock()
			a.state = flashLocked
			return nil, err
		}
		start := a.bounds[id]
		end := sectorEnd(a.bounds, a.flashSize, id)
		for i := start; i < end && i < uint32(len(a.flashMap)); i++ {
			a.flashMap[i] = 0xff
		}
	}
	if err := a.driver.WaitIdle(); err != nil {
		a.driver.Lock()
		a.state = flashLocked
		return nil, err
	}

	a.state = flashProgramming
	a.generation++
	a.firstFreeByte = base

	return &FlashContext{base: base, reserved: size, nextWrite: base, generation: a.generation}, nil
}

// WriteFlash appends bytes, choosing word/halfword/byte programming by the
// alignment of both the destination cursor and (implicitly) the source
// buffer boundary, and advances ctx.NextWrite. Idempotent only across a
// fresh PrepareFlash, because the arena's generation counter rejects a
// stale context.
func (a *Arena) WriteFlash(bytes []byte, ctx *FlashContext) error {
	if ctx.generation != a.generation {
		return curated.Errorf(ErrFlashStale)
	}
	if ctx.nextWrite < ctx.base || ctx.nextWrite+uint32(len(bytes)) > ctx.base+ctx.reserved {
		return curated.Errorf(ErrFlashOutOfBounds)
	}

	i := 0
	for i < len(bytes) {
		addr := ctx.nextWrite
		remaining := len(bytes) - i
		switch {
		case addr%4 == 0 && remaining >= 4:
			word := uint32(bytes[i]) | uint32(bytes[i+1])<<8 | uint32(bytes[i+2])<<16 | uint32(bytes[i+3])<<24
			if err := a.driver.ProgramWord(addr, word); err != nil {
				a.rollback()
				return err
			}
			copy(a.flashMap[addr:addr+4], bytes[i:i+4])
			i += 4
			ctx.nextWrite += 4
		case addr%2 == 0 && remaining >= 2:
			half := uint16(bytes[i]) | uint16(bytes[i+1])<<8
			if err := a.driver.ProgramHalfword(addr, half); err != nil {
				a.rollback()
				return err
			}
			copy(a.flashMap[addr:addr+2], bytes[i:i+2])
			i += 2
			ctx.nextWrite += 2
		default:
			if err := a.driver.ProgramByte(addr, bytes[i]); err != nil {
				a.rollback()
				return err
			}
			a.flashMap[addr] = bytes[i]
			i++
			ctx.nextWrite++
		}
	}

	if err := a.driver.WaitIdle(); err != nil {
		a.rollback()
		return err
	}

	return nil
}

// FinishFlash locks the controller, ending the write session started by
// PrepareFlash. Call once all chunks for a context have been written.
func (a *Arena) FinishFlash() error {
	err := a.driver.Lock()
	a.state = flashLocked
	return err
}

func (a *Arena) rollback() {
	a.driver.Lock()
	a.state = flashLocked
}

// HotRAM returns the backing slice for the hot region, for use by the loader
// and by scheme engines that cache bank pointers into it.
func (a *Arena) HotRAM() []byte { return a.hot[:] }

// BufferRAM returns the backing slice for the buffer region.
func (a *Arena) BufferRAM() []byte { return a.buffer[:] }
