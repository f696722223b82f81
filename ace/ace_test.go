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

package ace_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cart2600/firmware/ace"
	"github.com/cart2600/firmware/arena"
)

type fakeFlash struct{}

func (fakeFlash) Unlock() error                        { return nil }
func (fakeFlash) Lock() error                          { return nil }
func (fakeFlash) EraseSector(id int) error             { return nil }
func (fakeFlash) ProgramByte(uint32, uint8) error      { return nil }
func (fakeFlash) ProgramHalfword(uint32, uint16) error { return nil }
func (fakeFlash) ProgramWord(uint32, uint32) error     { return nil }
func (fakeFlash) WaitIdle() error                      { return nil }

// fakeSource is an ace.Source backed by an in-memory buffer, standing in for
// the original firmware's f_lseek/f_read loop once rom_size outgrows the
// caller's in-RAM buffer.
type fakeSource struct {
	data []byte
	pos  uint32
}

func (s *fakeSource) Seek(offset uint32) error {
	s.pos = offset
	return nil
}

func (s *fakeSource) Read(buf []byte) (int, error) {
	n := copy(buf, s.data[s.pos:])
	s.pos += uint32(n)
	return n, nil
}

// buildHeader assembles the 40-byte ACE header alone; callers append any
// payload bytes they need.
func buildHeader(t *testing.T, romSize, entryPoint, checksum uint32) []byte {
	t.Helper()

	buf := make([]byte, 40)
	copy(buf[:8], "ACE-2600")
	copy(buf[8:24], "driver")
	binary.LittleEndian.PutUint32(buf[24:28], 1)
	binary.LittleEndian.PutUint32(buf[28:32], romSize)
	binary.LittleEndian.PutUint32(buf[32:36], checksum)
	binary.LittleEndian.PutUint32(buf[36:40], entryPoint)
	return buf
}

func TestParseHeaderRejectsShortFile(t *testing.T) {
	_, err := ace.ParseHeader(make([]byte, 10))
	require.Error(t, err)
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	buf := buildHeader(t, 4096, 0x1000, 0)
	copy(buf[:8], "NOT-ACE!")
	_, err := ace.ParseHeader(buf)
	require.Error(t, err)
}

func TestParseHeaderRejectsTooLarge(t *testing.T) {
	buf := buildHeader(t, 500*1024, 0x1000, 0)
	_, err := ace.ParseHeader(buf)
	require.Error(t, err)
}

func TestParseHeaderAccepts(t *testing.T) {
	buf := buildHeader(t, 4096, 0x2000, 0)
	h, err := ace.ParseHeader(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(4096), h.ROMSize)
	require.Equal(t, uint32(0x2000), h.EntryPoint)
}

// TestLoadBuffersOnly covers the case where the whole ROM already sits in
// buffered (romSize <= len(buffered)): no streaming, and enter
// is called with the header's entry point.
func TestLoadBuffersOnly(t *testing.T) {
	a := arena.NewArena(fakeFlash{}, 512*1024)

	const romSize = 256
	payload := make([]byte, romSize)
	for i := range payload {
		payload[i] = byte(i)
	}
	buf := append(buildHeader(t, romSize, 0x4242, 0), payload...)

	var entered uint32
	var calls int
	enter := func(entryPoint uint32) {
		entered = entryPoint
		calls++
	}

	err := ace.Load(a, buf, &fakeSource{}, enter)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, uint32(0x4242), entered)
}

// TestLoadStreamsRemainder covers the case where romSize exceeds what's
// already buffered: the remainder is pulled from src in bufferSize-sized
// chunks (mirroring the original firmware's f_lseek/f_read loop) before
// enter is called.
func TestLoadStreamsRemainder(t *testing.T) {
	a := arena.NewArena(fakeFlash{}, 512*1024)

	const romSize = 8192
	full := make([]byte, romSize)
	for i := range full {
		full[i] = byte(i)
	}

	const bufferedPayload = 2048
	buf := append(buildHeader(t, romSize, 0x8000, 0), full[:bufferedPayload]...)
	src := &fakeSource{data: full}

	var calls int
	enter := func(uint32) { calls++ }

	err := ace.Load(a, buf, src, enter)
	require.NoError(t, err)
	require.Equal(t, 1, calls, "enter must be called exactly once, even when streaming was required")
}

// TestLoadRejectsBadMagic confirms a malformed header never reaches flash
// programming or enter at all.
func TestLoadRejectsBadMagic(t *testing.T) {
	a := arena.NewArena(fakeFlash{}, 512*1024)
	buf := buildHeader(t, 256, 0x1000, 0)
	copy(buf[:8], "NOT-ACE!")

	calls := 0
	err := ace.Load(a, buf, &fakeSource{}, func(uint32) { calls++ })
	require.Error(t, err)
	require.Equal(t, 0, calls, "enter must never be called when the header itself is rejected")
}

// TestLoadChecksumMismatchIsSoftWarningOnly covers the deliberate choice
// (ace.go) to treat a header rom_checksum mismatch as a warning rather than
// a FormatError: Load must still succeed and still call enter.
func TestLoadChecksumMismatchIsSoftWarningOnly(t *testing.T) {
	a := arena.NewArena(fakeFlash{}, 512*1024)

	const romSize = 256
	payload := make([]byte, romSize)
	for i := range payload {
		payload[i] = byte(i)
	}
	buf := append(buildHeader(t, romSize, 0x4242, 0xdeadbeef), payload...) // checksum can't possibly match

	calls := 0
	err := ace.Load(a, buf, &fakeSource{}, func(uint32) { calls++ })
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}
