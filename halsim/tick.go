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

// SystemTick simulates the monotonic down-counter DPC uses for its ~21 kHz
// clock. Tests advance it explicitly with Advance rather than relying on
// wall-clock time, keeping scheme-engine tests deterministic.
type SystemTick struct {
	freq  uint32
	value uint32
}

func NewSystemTick(freq uint32) *SystemTick {
	return &SystemTick{freq: freq}
}

func (t *SystemTick) Ticks() uint32 { return t.value }

func (t *SystemTick) Frequency() uint32 { return t.freq }

// Advance simulates n ticks of the counter elapsing.
func (t *SystemTick) Advance(n uint32) { t.value += n }
