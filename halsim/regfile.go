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

//go:build linux

package halsim

import (
	"golang.org/x/sys/unix"
)

// RegFile is an anonymous mmap'd byte region standing in for a peripheral's
// memory-mapped register block. The flash simulator (flash.go) uses it
// so that its register-level read/modify/write code matches the shape of
// the real STM32 driver rather than being ordinary Go struct fields. This
// borrows the pattern (not the chip) from the tamago framework's register
// drivers (see SPEC_FULL.md DOMAIN STACK), which mmap i.MX6 peripheral
// windows the same way.
type RegFile struct {
	mem []byte
}

// NewRegFile allocates an anonymous mmap'd region of size bytes.
func NewRegFile(size int) (*RegFile, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return &RegFile{mem: mem}, nil
}

// Close releases the mapping.
func (r *RegFile) Close() error {
	return unix.Munmap(r.mem)
}

func (r *RegFile) Read32(offset int) uint32 {
	return uint32(r.mem[offset]) | uint32(r.mem[offset+1])<<8 | uint32(r.mem[offset+2])<<16 | uint32(r.mem[offset+3])<<24
}

func (r *RegFile) Write32(offset int, v uint32) {
	r.mem[offset] = byte(v)
	r.mem[offset+1] = byte(v >> 8)
	r.mem[offset+2] = byte(v >> 16)
	r.mem[offset+3] = byte(v >> 24)
}

// SetBits performs a masked read-modify-write, mirroring the teacher's
// preference for small documented bit-twiddling helpers over inline masks
// scattered through driver code.
func (r *RegFile) SetBits(offset int, mask uint32) {
	r.Write32(offset, r.Read32(offset)|mask)
}

func (r *RegFile) ClearBits(offset int, mask uint32) {
	r.Write32(offset, r.Read32(offset)&^mask)
}
