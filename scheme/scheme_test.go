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

package scheme_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/halsim"
	"github.com/cart2600/firmware/scheme"
)

// fakeFile is a minimal in-memory hal.FileProvider backing the Supercharger
// multiload scans and reloads, following the same pattern as other packages'
// synthetic hal doubles (arena_test.go's fakeFlash).
type fakeFile struct {
	data []byte
	pos  uint32
}

func (f *fakeFile) Mount() error                  { return nil }
func (f *fakeFile) Open(path string) error        { return nil }
func (f *fakeFile) Size() (uint32, error)         { return uint32(len(f.data)), nil }
func (f *fakeFile) Seek(offset uint32) error       { f.pos = offset; return nil }
func (f *fakeFile) Close() error                  { return nil }
func (f *fakeFile) Unmount() error                { return nil }
func (f *fakeFile) Read(buf []byte) (int, error) {
	n := copy(buf, f.data[f.pos:])
	f.pos += uint32(n)
	return n, nil
}

// filledPlan builds an arena-backed ImagePlan of bankCount banks, each
// bankSize bytes, filling bank i with the repeating byte i so Read tests can
// assert on bank identity as well as bank-switch behavior.
func filledPlan(t *testing.T, bankCount, bankSize int) (*arena.Arena, arena.ImagePlan) {
	t.Helper()
	flashDriver, err := halsim.NewFlashDriver()
	require.NoError(t, err)
	a := arena.NewArena(flashDriver, 512*1024)
	plan, err := a.Plan(bankCount*bankSize, bankSize, nil)
	require.NoError(t, err)
	require.Equal(t, bankCount, plan.BankCount)

	for i := 0; i < bankCount; i++ {
		bank := a.BankPtr(plan, i)
		for j := range bank {
			bank[j] = byte(i)
		}
	}
	return a, plan
}

// TestF8BankSelect covers the F8 bank-select scenario: access to $1FF8
// selects bank 0, access to $1FF9 selects bank 1, and every other address in
// cartridge space leaves the current bank untouched.
func TestF8BankSelect(t *testing.T) {
	a, plan := filledPlan(t, 2, 4096)
	cart, err := scheme.NewAtari(scheme.F8, a, plan)
	require.NoError(t, err)

	require.Equal(t, uint8(0), cart.Read(0x1000), "bank 0 is current at reset")

	require.Equal(t, uint8(1), cart.Read(0x1ff9), "the hotspot access itself is already answered from the newly selected bank 1")
	require.Equal(t, uint8(1), cart.Read(0x1abc), "stays on bank 1")

	require.Equal(t, uint8(0), cart.Read(0x1ff8), "the hotspot access itself is already answered from the newly selected bank 0")
	require.Equal(t, uint8(0), cart.Read(0x1abc), "switched back to bank 0")
}

// TestFEBankFlip covers the FE read-triggered bank flip: Listen only acts on
// an address of exactly $01FE, and bit 5 of the data sampled there picks the
// bank for every subsequent cartridge-space read.
func TestFEBankFlip(t *testing.T) {
	a, plan := filledPlan(t, 2, 4096)
	cart, err := scheme.NewFE(a, plan)
	require.NoError(t, err)

	require.Equal(t, uint8(0), cart.Read(0x1000), "bank 0 is current at reset")

	cart.Listen(0x01fd, 0xff) // wrong address, must not affect state
	require.Equal(t, uint8(0), cart.Read(0x1000))

	cart.Listen(0x01fe, 0x00) // bit 5 clear selects bank 1
	require.Equal(t, uint8(1), cart.Read(0x1000))

	cart.Listen(0x01fe, 0x20) // bit 5 set selects bank 0
	require.Equal(t, uint8(0), cart.Read(0x1000))
}

// TestThreeFFixedUpperWindow covers the Tigervision 3F scheme: the upper 2
// KiB window is always the last bank, regardless of how many times the lower
// window's bank is switched via a TIA-space write.
func TestThreeFFixedUpperWindow(t *testing.T) {
	a, plan := filledPlan(t, 4, 2048)
	cart, err := scheme.NewThreeF(a, plan)
	require.NoError(t, err)

	require.Equal(t, uint8(3), cart.Read(0x0800), "upper window is always the last bank")
	require.Equal(t, uint8(0), cart.Read(0x0000), "lower window starts on bank 0")

	cart.Listen(0x0020, 2) // write inside $0000-$003F selects bank 2
	require.Equal(t, uint8(2), cart.Read(0x0000), "lower window switched")
	require.Equal(t, uint8(3), cart.Read(0x0800), "upper window unaffected by the switch")

	cart.Listen(0x0040, 1) // outside the trigger range, must not switch
	require.Equal(t, uint8(2), cart.Read(0x0000))
}

// TestE0SlotMapping covers the Parker Bros E0 scheme: three independently
// switched 1 KiB windows plus a fourth hardwired to the last bank.
func TestE0SlotMapping(t *testing.T) {
	a, plan := filledPlan(t, 8, 1024)
	cart, err := scheme.NewE0(a, plan)
	require.NoError(t, err)

	require.Equal(t, uint8(4), cart.Read(0x0000), "window 0 defaults to bank 4")
	require.Equal(t, uint8(5), cart.Read(0x0400), "window 1 defaults to bank 5")
	require.Equal(t, uint8(6), cart.Read(0x0800), "window 2 defaults to bank 6")
	require.Equal(t, uint8(7), cart.Read(0x0c00), "window 3 is hardwired to the last bank")

	cart.Read(0x0fe3) // hotspot: window 0 <- bank 3
	require.Equal(t, uint8(3), cart.Read(0x0000))
	require.Equal(t, uint8(7), cart.Read(0x0c00), "window 3 never moves")

	cart.Read(0x0fef) // hotspot: window 1 <- bank 7
	require.Equal(t, uint8(7), cart.Read(0x0400))

	cart.Read(0x0ff5) // hotspot: window 2 <- bank 5
	require.Equal(t, uint8(5), cart.Read(0x0800))
}

// newAR builds a Supercharger engine around a multiload image of
// multiloadCount synthetic 8448-byte records, each record's footer carrying
// its own index as the multiload_id.
func newAR(t *testing.T, multiloadCount int) *scheme.AR {
	t.Helper()

	const multiloadSize = 8448
	data := make([]byte, multiloadCount*multiloadSize)
	for i := 0; i < multiloadCount; i++ {
		footerOff := (i+1)*multiloadSize - 256
		data[footerOff+5] = byte(i) // multiload_id
		data[footerOff+3] = 0       // block_count: no blocks to copy
	}

	bios := make([]byte, 2048)
	cart, err := scheme.NewAR(&fakeFile{data: data}, nil, bios, "multiload.a26", len(data))
	require.NoError(t, err)
	return cart
}

// armAndCommit runs one full pending-write gesture: arm via cartridge-space
// access with the given data_hold byte, let 5 transitions elapse, then
// commit at $1FF8. Used to put the engine into a known, non-zero-value state
// (write_ram_enabled true, bank1 holding RAM rather than the BIOS) so later
// assertions aren't confounded by every RAM page starting out zero-filled.
func armAndCommit(cart *scheme.AR, dataHold uint16) {
	cart.Read(0x1000 | dataHold&0x00ff) // local&0x0f00==0 requires dataHold<0x100
	for i := 0; i < 5; i++ {
		cart.Clock()
	}
	cart.Read(0x1ff8)
}

// TestARCommitGate covers the Supercharger pending-write/commit gesture: it
// commits a gesture after 5 bus transitions (armAndCommit), then checks that
// with write_ram_enabled set, a re-armed gesture followed by a non-hotspot,
// non-arm access before transition_count reaches 5 leaves RAM untouched.
func TestARCommitGate(t *testing.T) {
	cart := newAR(t, 1)

	// data_hold=2 selects bankSelectTable[2]={2,0}: bank0<-page2, bank1<-page0
	// (RAM, not BIOS), and write_ram_enabled = 2&0x02 != 0 = true.
	armAndCommit(cart, 2)
	require.False(t, cart.IsWriteAddr(0x1ff9), "bank1 now holds RAM, not the BIOS, so $1FF9 is not a write address")

	// re-arm (the prior commit cleared pendingWrite, so this succeeds), but
	// let only 3 transitions elapse before hitting a plain cartridge access:
	// the write-capture branch requires exactly 5.
	cart.Read(0x1002)
	cart.Clock()
	cart.Clock()
	cart.Clock()
	require.Equal(t, uint8(0), cart.Read(0x1500), "capture does not fire before the 5th transition")
}

// TestARCommitGateFiresAtFiveTransitions is TestARCommitGate's companion: the
// same gesture, with exactly 5 transitions elapsed, must capture data_hold.
func TestARCommitGateFiresAtFiveTransitions(t *testing.T) {
	cart := newAR(t, 1)
	armAndCommit(cart, 2)

	cart.Read(0x1002) // re-arm: data_hold=2, transitionCount reset to 0
	for i := 0; i < 5; i++ {
		cart.Clock()
	}
	require.Equal(t, uint8(2), cart.Read(0x1500), "capture fires on the 5th transition")
}

// TestARListenDoesNotArmGesture confirms the resolved trigger zone: a
// TIA-space access (routed through Listen, A12 low) must never arm the
// pending-write gesture -- only a cartridge-space access ($1000-$10FF, via
// Read) does. If Listen wrongly armed the gesture (the literal spec.md
// reading this repo deliberately rejected), the write-capture branch below
// would fire and corrupt bank0 RAM with Listen's data byte.
func TestARListenDoesNotArmGesture(t *testing.T) {
	cart := newAR(t, 1)
	armAndCommit(cart, 2) // write_ram_enabled=true, pendingWrite now false

	cart.Listen(0x0000, 0x2a) // TIA-space access: must not arm data_hold=0x2a
	for i := 0; i < 5; i++ {
		cart.Clock()
	}
	require.Equal(t, uint8(0), cart.Read(0x1500), "a TIA-space access must never arm the pending-write gesture")
}

// TestARWriteReloadGate covers the $1FF9 multiload-reload gesture's
// addr_prev<=0xFF gate: Write only reloads when the previous stable address
// was in TIA/RIOT space.
func TestARWriteReloadGate(t *testing.T) {
	cart := newAR(t, 2)

	// commit data_hold bits so bank1 maps the BIOS (bankSelectTable[0] =
	// {2, -1}), which is required for IsWriteAddr($1FF9) to report true.
	cart.Read(0x1000)
	for i := 0; i < 5; i++ {
		cart.Clock()
	}
	cart.Read(0x1ff8)

	require.True(t, cart.IsWriteAddr(0x1ff9), "BIOS must be mapped into bank1 for $1FF9 to be a write address")

	cart.Listen(0x0010, 0) // previous stable address in TIA space
	cart.Write(0x1ff9, 1)  // reload multiload_id 1 -- must not panic on the synthetic footer
}
