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

package arena_test

import (
	"testing"

	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/curated"
	"github.com/stretchr/testify/require"
)

type fakeFlash struct {
	unlocked bool
	erased   map[int]bool
}

func newFakeFlash() *fakeFlash { return &fakeFlash{erased: map[int]bool{}} }

func (f *fakeFlash) Unlock() error               { f.unlocked = true; return nil }
func (f *fakeFlash) Lock() error                 { f.unlocked = false; return nil }
func (f *fakeFlash) EraseSector(id int) error     { f.erased[id] = true; return nil }
func (f *fakeFlash) ProgramByte(uint32, uint8) error     { return nil }
func (f *fakeFlash) ProgramHalfword(uint32, uint16) error { return nil }
func (f *fakeFlash) ProgramWord(uint32, uint32) error    { return nil }
func (f *fakeFlash) WaitIdle() error             { return nil }

func TestPlanInvariants(t *testing.T) {
	a := arena.NewArena(newFakeFlash(), 512*1024)

	plan, err := a.Plan(100*1024, 4096, nil)
	require.NoError(t, err)

	require.Equal(t, 100*1024, plan.TotalSize)

	var placed int
	for range plan.Banks {
		placed += plan.BankSize
	}
	require.GreaterOrEqual(t, placed, plan.TotalSize)

	require.Equal(t, plan.HotCount()+plan.BufferCount()+plan.FlashCount(), plan.BankCount)

	// banks [0, HotCount) are HotRam, the rest follow the region order
	for i, b := range plan.Banks {
		if i < plan.HotCount() {
			require.Equal(t, arena.HotRam, b.Region)
		} else if i < plan.HotCount()+plan.BufferCount() {
			require.Equal(t, arena.Buffer, b.Region)
		} else {
			require.Equal(t, arena.Flash, b.Region)
		}
	}
}

func TestPlanHotOnly(t *testing.T) {
	a := arena.NewArena(newFakeFlash(), 512*1024)

	plan, err := a.Plan(8*1024, 4096, nil)
	require.NoError(t, err)
	require.Equal(t, 2, plan.HotCount())
	require.Equal(t, 0, plan.BufferCount())
	require.Equal(t, 0, plan.FlashCount())
}

func TestPlanExceedsEverything(t *testing.T) {
	a := arena.NewArena(newFakeFlash(), 32*1024) // tiny part, mostly firmware-reserved

	_, err := a.Plan(4*1024*1024, 4096, nil)
	require.True(t, curated.Is(err, arena.ErrImageTooLarge))
}

func TestPrepareFlashRefusesZero(t *testing.T) {
	a := arena.NewArena(newFakeFlash(), 512*1024)
	_, err := a.PrepareFlash(0)
	require.True(t, curated.Is(err, arena.ErrFlashTooSmall))
}

func TestPrepareFlashRefusesFirmwareOverlap(t *testing.T) {
	a := arena.NewArena(newFakeFlash(), 512*1024)
	_, err := a.PrepareFlash(512 * 1024) // would reserve down to byte 0
	require.True(t, curated.Is(err, arena.ErrFlashExceedsCapacity) || curated.Is(err, arena.ErrFlashOverlapsFirmware))
}

func TestFlashWriteAppendOnly(t *testing.T) {
	a := arena.NewArena(newFakeFlash(), 512*1024)

	ctx, err := a.PrepareFlash(4096)
	require.NoError(t, err)

	chunk := make([]byte, 1024)
	for i := range chunk {
		chunk[i] = byte(i)
	}

	require.NoError(t, a.WriteFlash(chunk, ctx))
	require.Equal(t, ctx.Base()+1024, ctx.NextWrite())

	require.NoError(t, a.WriteFlash(chunk, ctx))
	require.Equal(t, ctx.Base()+2048, ctx.NextWrite())
}

func TestFlashWriteRejectsStaleContext(t *testing.T) {
	a := arena.NewArena(newFakeFlash(), 512*1024)

	ctx, err := a.PrepareFlash(4096)
	require.NoError(t, err)

	_, err = a.PrepareFlash(4096) // invalidates ctx
	require.NoError(t, err)

	err = a.WriteFlash([]byte{1, 2, 3}, ctx)
	require.True(t, curated.Is(err, arena.ErrFlashStale))
}

func TestBankPtrRoundTrip(t *testing.T) {
	a := arena.NewArena(newFakeFlash(), 512*1024)

	const bankSize = 4096
	const bankCount = 41 // forces hot (16) + buffer (24) + flash (1)
	plan, err := a.Plan(bankCount*bankSize, bankSize, nil)
	require.NoError(t, err)

	// fill hot/buffer banks directly, flash bank via PrepareFlash/WriteFlash
	for i := 0; i < plan.BankCount; i++ {
		src := make([]byte, bankSize)
		for j := range src {
			src[j] = byte(i)
		}

		b := plan.Banks[i]
		switch b.Region {
		case arena.HotRam:
			copy(a.HotRAM()[b.Offset:], src)
		case arena.Buffer:
			copy(a.BufferRAM()[b.Offset:], src)
		case arena.Flash:
			ctx, err := a.PrepareFlash(uint32(bankSize))
			require.NoError(t, err)
			require.NoError(t, a.WriteFlash(src, ctx))
		}
	}

	for i := 0; i < plan.BankCount; i++ {
		bank := a.BankPtr(plan, i)
		for _, v := range bank {
			require.Equal(t, byte(i), v)
		}
	}
}
