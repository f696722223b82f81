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

// Interrupts is a test double for hal.InterruptControl: it just counts
// enable/disable calls so a test can assert the Supercharger engine
// re-enables interrupts during a multiload reload and disables them again
// on return, without any real processor state to inspect.
type Interrupts struct {
	Enabled bool
	Enables int
	Disables int
}

func NewInterrupts() *Interrupts {
	return &Interrupts{Enabled: true}
}

func (i *Interrupts) EnableIRQ() {
	i.Enabled = true
	i.Enables++
}

func (i *Interrupts) DisableIRQ() {
	i.Enabled = false
	i.Disables++
}
