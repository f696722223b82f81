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

// Package loader implements the Image Loader (SPEC_FULL.md §4.3): the
// step between the dispatcher recognizing a ROM image and a scheme
// engine's hot loop starting, responsible for getting the image's bytes
// into the places an ImagePlan says they belong.
package loader

import (
	"github.com/cespare/xxhash"

	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/curated"
	"github.com/cart2600/firmware/hal"
	"github.com/cart2600/firmware/logger"
)

// ErrShortRead is returned when a mass-storage read comes back short of a
// full chunk before the running total has reached image_size.
const ErrShortRead = "loader: short read before image_size reached"

// Load populates the arena per plan from file, which must already be open
// for random access at offset 0 with buffer already holding the first
// len(buffer) bytes of the image (the same in-RAM buffer the dispatcher
// used to fingerprint the file, reused here to avoid a redundant read).
//
// Strategy (spec.md §4.3): if the whole image fits in HotRam, a plain copy
// suffices and flash is never touched. Otherwise flash is prepared for
// everything beyond HotRam's capacity, the portion already sitting in
// buffer is programmed first, the rest streams in from file in
// buffer-sized chunks, and HotRam is filled last from the image's first
// HotRam-capacity bytes (which may require rewinding the file).
func Load(a *arena.Arena, file hal.FileProvider, imageSize int, buffer []byte) error {
	digest := xxhash.New()

	if imageSize <= arena.HotCapacity {
		copy(a.HotRAM(), buffer[:imageSize])
		digest.Write(buffer[:imageSize])
		logger.Logf("loader", "staged %d bytes into HotRAM, checksum %016x", imageSize, digest.Sum64())
		return nil
	}

	flashSize := uint32(imageSize - arena.HotCapacity)
	ctx, err := a.PrepareFlash(flashSize)
	if err != nil {
		return err
	}

	tail := buffer[arena.HotCapacity:]
	if err := a.WriteFlash(tail, ctx); err != nil {
		return err
	}
	digest.Write(tail)

	written := uint32(len(tail))
	chunk := make([]byte, len(buffer))
	if err := file.Seek(uint32(arena.HotCapacity + len(tail))); err != nil {
		return err
	}

	for written < flashSize {
		n, err := file.Read(chunk)
		if err != nil {
			return err
		}
		remaining := flashSize - written
		want := remaining
		if uint32(n) < want && uint32(n) < uint32(len(chunk)) {
			return curated.Errorf(ErrShortRead)
		}
		take := uint32(n)
		if take > remaining {
			take = remaining
		}
		if err := a.WriteFlash(chunk[:take], ctx); err != nil {
			return err
		}
		digest.Write(chunk[:take])
		written += take
	}

	if err := a.FinishFlash(); err != nil {
		return err
	}

	if err := file.Seek(0); err != nil {
		return err
	}
	hotChunk := make([]byte, arena.HotCapacity)
	if _, err := file.Read(hotChunk); err != nil {
		return err
	}
	copy(a.HotRAM(), hotChunk)
	digest.Write(hotChunk)

	logger.Logf("loader", "staged %d bytes (%d flash, %d hot), checksum %016x",
		imageSize, flashSize, len(hotChunk), digest.Sum64())
	return nil
}
