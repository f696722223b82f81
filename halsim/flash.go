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

package halsim

// FlashDriver simulates the on-chip flash controller over a RegFile-backed
// status register. It keeps no copy of the flash array itself (real flash
// is memory-mapped and read directly; only the erase/program side effects
// go through the register interface).
type FlashDriver struct {
	regs    *RegFile
	locked  bool
	failAt  int // if >= 0, the Nth program or erase call fails, then resets to -1
	calls   int
}

const (
	regStatus = 0
	statusBusy = 1 << 0
	statusLock = 1 << 1
)

// NewFlashDriver builds a simulated flash controller.
func NewFlashDriver() (*FlashDriver, error) {
	regs, err := NewRegFile(4)
	if err != nil {
		return nil, err
	}
	regs.SetBits(regStatus, statusLock)
	return &FlashDriver{regs: regs, locked: true, failAt: -1}, nil
}

// FailNextProgram makes the Nth-from-now ProgramX or EraseSector call
// return an error, to
// exercise the rollback-to-Locked path in arena.Arena.
func (f *FlashDriver) FailNextProgram(n int) { f.failAt = n }

func (f *FlashDriver) maybeFail() error {
	if f.failAt == 0 {
		f.failAt = -1
		return errSimulatedFlashFailure
	}
	if f.failAt > 0 {
		f.failAt--
	}
	return nil
}

func (f *FlashDriver) Unlock() error {
	f.regs.ClearBits(regStatus, statusLock)
	f.locked = false
	return nil
}

func (f *FlashDriver) Lock() error {
	f.regs.SetBits(regStatus, statusLock)
	f.locked = true
	return nil
}

func (f *FlashDriver) EraseSector(id int) error {
	f.regs.SetBits(regStatus, statusBusy)
	defer f.regs.ClearBits(regStatus, statusBusy)
	return f.maybeFail()
}

func (f *FlashDriver) ProgramByte(addr uint32, value uint8) error {
	f.calls++
	return f.maybeFail()
}

func (f *FlashDriver) ProgramHalfword(addr uint32, value uint16) error {
	f.calls++
	return f.maybeFail()
}

func (f *FlashDriver) ProgramWord(addr uint32, value uint32) error {
	f.calls++
	return f.maybeFail()
}

func (f *FlashDriver) WaitIdle() error {
	for f.regs.Read32(regStatus)&statusBusy != 0 {
		// busy-wait, matching the real controller's polling contract
	}
	return nil
}
