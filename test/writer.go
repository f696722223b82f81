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

package test

import "strings"

// Writer is the simplest capture writer: an unbounded buffer with a
// one-shot Compare against an expected string, predating CappedWriter and
// RingWriter. Kept for the call sites that only ever check a single,
// complete rendering of a log.
type Writer struct {
	b strings.Builder
}

// Write appends p.
func (w *Writer) Write(p []byte) (int, error) {
	return w.b.Write(p)
}

// Compare reports whether everything written so far equals s exactly.
func (w *Writer) Compare(s string) bool {
	return w.b.String() == s
}

// Clear empties the buffer.
func (w *Writer) Clear() {
	w.b.Reset()
}
