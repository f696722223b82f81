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

// Package ace implements the ACE-2600 loader (SPEC_FULL.md §4.6): a
// self-contained binary format carrying native ARM machine code, validated
// by a magic header and programmed directly into flash.
//
// Unlike the teacher's own ace.go (hardware/memory/cartridge/ace in the
// retrieval pack), which interprets the loaded image as ARM instructions
// through a software Thumb/ARM core, this loader's entire job ends at
// transferring control: SPEC_FULL.md's scope is the bus engine's cartridge
// side, not a CPU emulator, and the spec's own description of the ACE
// loader never mentions instruction interpretation, only "transfers
// control to entry_point as a native function call; never returns". The
// hardware this firmware targets is itself an ARM microcontroller, so a
// loaded ACE image's entry point is simply called, the way the original
// firmware's launch_ace_cartridge does with a bare function-pointer cast.
package ace

import (
	"encoding/binary"

	"github.com/cespare/xxhash"

	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/curated"
	"github.com/cart2600/firmware/logger"
)

const (
	headerSize  = 8 + 16 + 4 + 4 + 4 + 4
	magic       = "ACE-2600"
	maxROMSize  = 448 * 1024
)

// ErrBadMagic and ErrTooLarge are the two FormatError outcomes spec.md §7
// assigns the loader; both surface as the "BAD ACE FILE" mailbox message.
const (
	ErrBadMagic  = "ace: magic number mismatch"
	ErrTooLarge  = "ace: rom_size exceeds 448 KiB"
	ErrShortFile = "ace: file shorter than the ACE header"
)

// Header is the fixed 40-byte ACE-2600 file header, transcribed from the
// original firmware's ACEFileHeader (ace2600.h).
type Header struct {
	DriverName    [16]byte
	DriverVersion uint32
	ROMSize       uint32
	ROMChecksum   uint32
	EntryPoint    uint32
}

// ParseHeader validates and decodes the first headerSize bytes of buf.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < headerSize {
		return Header{}, curated.Errorf(ErrShortFile)
	}
	if string(buf[:8]) != magic {
		return Header{}, curated.Errorf(ErrBadMagic)
	}

	var h Header
	copy(h.DriverName[:], buf[8:24])
	h.DriverVersion = binary.LittleEndian.Uint32(buf[24:28])
	h.ROMSize = binary.LittleEndian.Uint32(buf[28:32])
	h.ROMChecksum = binary.LittleEndian.Uint32(buf[32:36])
	h.EntryPoint = binary.LittleEndian.Uint32(buf[36:40])

	if h.ROMSize > maxROMSize {
		return Header{}, curated.Errorf(ErrTooLarge)
	}
	return h, nil
}

// Source streams the remainder of an ACE image past whatever has already
// been buffered, mirroring the original firmware's f_lseek/f_read loop
// once rom_size exceeds the caller's in-memory buffer.
type Source interface {
	Seek(offset uint32) error
	Read(buf []byte) (n int, err error)
}

// Entry is a native call to the loaded image's entry point. Production
// code supplies a function built from a raw address (see cmd/firmware);
// tests supply a stub that records whether it was invoked.
type Entry func(entryPoint uint32)

// Load validates header, programs buffered and (if necessary) streamed ROM
// bytes into flash, then calls enter with the header's entry point. Load
// returns an error on failure, and nil if enter returns; with a production
// enter that never returns, only failures come back.
func Load(a *arena.Arena, buffered []byte, src Source, enter Entry) error {
	header, err := ParseHeader(buffered)
	if err != nil {
		return err
	}

	ctx, err := a.PrepareFlash(header.ROMSize)
	if err != nil {
		return err
	}

	digest := xxhash.New()

	written := header.ROMSize
	if written > uint32(len(buffered)) {
		written = uint32(len(buffered))
	}
	if err := a.WriteFlash(buffered[:written], ctx); err != nil {
		return err
	}
	digest.Write(buffered[:written])

	if header.ROMSize > uint32(len(buffered)) {
		if err := streamRemainder(a, ctx, digest, header.ROMSize, uint32(len(buffered)), src); err != nil {
			return err
		}
	}

	if err := a.FinishFlash(); err != nil {
		return err
	}

	checksum := digest.Sum64()
	logger.Logf("ace", "loaded %d-byte ROM, checksum %016x", header.ROMSize, checksum)
	if header.ROMChecksum != 0 && uint32(checksum) != header.ROMChecksum {
		// soft check only: the original firmware's rom_checksum algorithm
		// isn't specified anywhere in the retrieval pack, so a mismatch here
		// is logged rather than treated as ErrBadMagic/ErrTooLarge -- it
		// would be wrong to refuse to boot a legitimate image over a
		// checksum scheme we can't claim to reproduce exactly.
		logger.Logf("ace", "warning: rom_checksum %08x in header does not match computed checksum", header.ROMChecksum)
	}

	enter(header.EntryPoint)
	return nil
}

func streamRemainder(a *arena.Arena, ctx *arena.FlashContext, digest *xxhash.Digest, romSize, bufferSize uint32, src Source) error {
	if err := src.Seek(bufferSize); err != nil {
		return err
	}

	chunk := make([]byte, bufferSize)
	written := bufferSize
	for written < romSize {
		n, err := src.Read(chunk)
		if err != nil {
			return err
		}
		written += uint32(n)
		if uint32(n) < bufferSize && written < romSize {
			return curated.Errorf("ace: short read before rom_size reached")
		}
		if err := a.WriteFlash(chunk[:n], ctx); err != nil {
			return err
		}
		digest.Write(chunk[:n])
	}
	return nil
}
