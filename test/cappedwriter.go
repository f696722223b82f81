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

import "github.com/cart2600/firmware/curated"

// CappedWriter is an io.Writer that accepts at most limit bytes in total.
// Once full, further writes are silently dropped rather than truncated
// mid-call or returning an error -- useful for bounding a log capture in a
// test without the test having to reason about partial writes.
type CappedWriter struct {
	limit int
	buf   []byte
}

// NewCappedWriter constructs a CappedWriter that accepts at most limit
// bytes.
func NewCappedWriter(limit int) (*CappedWriter, error) {
	if limit <= 0 {
		return nil, curated.Errorf("test: capped writer limit must be greater than zero")
	}
	return &CappedWriter{limit: limit, buf: make([]byte, 0, limit)}, nil
}

// Write appends p to the buffer up to the remaining capacity, and silently
// drops whatever doesn't fit. It never errors.
func (c *CappedWriter) Write(p []byte) (int, error) {
	room := c.limit - len(c.buf)
	if room <= 0 {
		return len(p), nil
	}
	if room > len(p) {
		room = len(p)
	}
	c.buf = append(c.buf, p[:room]...)
	return len(p), nil
}

// String returns everything written so far, up to the limit.
func (c *CappedWriter) String() string {
	return string(c.buf)
}

// Reset empties the buffer.
func (c *CappedWriter) Reset() {
	c.buf = c.buf[:0]
}
