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

package bus

// Pins is the contract every scheme engine drives its cartridge response
// through. Implementations are effectively single-cycle on the target MCU;
// abstractly they are side-effect-only functions over pin state.
type Pins interface {
	// SampleAddr returns the current 13-bit address. Bit 12 (0x1000) is the
	// cartridge-select line.
	SampleAddr() uint16

	// SampleData returns the current value of the 8-bit data port, whether
	// driven by the console or by a previous call to DriveData.
	SampleData() uint8

	// DriveData puts the cartridge in control of the data bus and asserts
	// byte onto it. Must be paired with a later ReleaseData.
	DriveData(byte uint8)

	// ReleaseData returns the data bus to high-impedance so the console (or
	// nothing, during a read the cartridge doesn't answer) can drive it.
	ReleaseData()
}

// ConsoleType identifies the two console-type detect pins (§6.2), used to
// select the correct menu firmware image.
type ConsoleType int

const (
	NTSC ConsoleType = iota
	PAL
	PAL60
)

// ConsoleDetect is implemented by the two console-type signal lines.
type ConsoleDetect interface {
	ConsoleType() ConsoleType
}
