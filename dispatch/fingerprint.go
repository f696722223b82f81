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

package dispatch

// Content-heuristic fingerprints, all grounded on the same technique the
// teacher uses in its own cartridge fingerprinting (retrieval-pack file
// hardware/memory/cartridge/fingerprint.go): scan the image for a short
// 6502 opcode byte sequence that a scheme's bank-switch hotspot access
// would produce, and count how many times it appears against a small
// threshold. None of these are exact; they are the same kind of informed
// guess Stella and the teacher both make when a ROM carries no header.

func countSequence(data []byte, seq []byte) int {
	if len(seq) == 0 || len(data) < len(seq) {
		return 0
	}
	count := 0
	for i := 0; i <= len(data)-len(seq); i++ {
		match := true
		for j, b := range seq {
			if data[i+j] != b {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count
}

func atLeast(data []byte, seq []byte, threshold int) bool {
	return countSequence(data, seq) >= threshold
}

// fingerprintThreeF detects Tigervision-style 3F: STA $3F (0x85 0x3f)
// appears repeatedly, since every bank switch is a zero-page store there.
func fingerprintThreeF(data []byte) bool {
	return atLeast(data, []byte{0x85, 0x3f}, 5)
}

// fingerprintThreeE detects 3E's variant: both STA $3E and STA $3F appear,
// since 3E carts switch RAM with $3E in addition to ROM banks with $3F.
func fingerprintThreeE(data []byte) bool {
	return atLeast(data, []byte{0x85, 0x3e}, 3) && atLeast(data, []byte{0x85, 0x3f}, 3)
}

// fingerprintE7 detects M-Network E7 by the distinctive byte run
// 0x7E 0x66 0x66 0x66, the same sequence the teacher's fingerprintMnetwork
// looks for (it's part of the M-Network BIOS/driver code common to titles
// using this scheme).
func fingerprintE7(data []byte) bool {
	return atLeast(data, []byte{0x7e, 0x66, 0x66, 0x66}, 2)
}

// fingerprintE0 detects Parker Bros E0 by an absolute store or load
// targeting one of its hotspot addresses, the pattern list transcribed
// from the teacher's fingerprintParkerBros (itself sourced from Stella's
// CartDetector).
func fingerprintE0(data []byte) bool {
	patterns := [][]byte{
		{0x8d, 0xe0, 0x1f},
		{0x8d, 0xe0, 0x5f},
		{0x8d, 0xe9, 0xff},
		{0x0c, 0xe0, 0x1f},
		{0xad, 0xe0, 0x1f},
		{0xad, 0xe9, 0xff},
		{0xad, 0xed, 0xff},
		{0xad, 0xf3, 0xbf},
	}
	for _, p := range patterns {
		if atLeast(data, p, 1) {
			return true
		}
	}
	return false
}

// fingerprintEF detects an EF cartridge by an absolute access to one of
// its sixteen hotspots, $1FE0-$1FEF: STA/LDA $1FEx with x in 0-F.
func fingerprintEF(data []byte) bool {
	for lo := byte(0xe0); lo <= 0xef; lo++ {
		if atLeast(data, []byte{0x8d, lo, 0x1f}, 1) || atLeast(data, []byte{0xad, lo, 0x1f}, 1) {
			return true
		}
	}
	return false
}

// fingerprintFE detects Activision FE by a direct reference to $01FE, the
// address whose access (not a cartridge-space write) drives its bank
// flip: LDA $01FE or BIT $01FE absolute.
func fingerprintFE(data []byte) bool {
	return atLeast(data, []byte{0xad, 0xfe, 0x01}, 1) || atLeast(data, []byte{0x2c, 0xfe, 0x01}, 1)
}

// fingerprintCV detects Commavid CV by a store into its RAM write port,
// $1400-$17FF.
func fingerprintCV(data []byte) bool {
	return atLeast(data, []byte{0x8d, 0x00, 0x14}, 1)
}

// fingerprintZ0840 detects Econobanking 0840 by an absolute access to one
// of its two trigger addresses.
func fingerprintZ0840(data []byte) bool {
	return atLeast(data, []byte{0x8d, 0x00, 0x08}, 1) || atLeast(data, []byte{0x8d, 0x40, 0x08}, 1)
}

// fingerprintSCMirror detects the 128-byte superchip RAM mirror Stella and
// the teacher both use: within each 4 KiB bank, the first 128 bytes equal
// the following 128 bytes (the superchip write port reads back as a mirror
// of the read port at image-build time because the dev tool zero-fills
// RAM the same way in both halves).
func fingerprintSCMirror(data []byte, bankSize int) bool {
	if bankSize < 256 {
		return false
	}
	for off := 0; off+256 <= len(data); off += bankSize {
		match := true
		for i := 0; i < 128; i++ {
			if data[off+i] != data[off+128+i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// fingerprintACE reports whether data starts with the ACE-2600 magic.
func fingerprintACE(data []byte) bool {
	const magic = "ACE-2600"
	return len(data) >= len(magic) && string(data[:len(magic)]) == magic
}

// fingerprintSupercharger reports whether size is a nonzero multiple of
// the 8448-byte multiload record size -- the fallback classification used
// only once every other heuristic has failed (spec.md §4.7).
func fingerprintSupercharger(size int) bool {
	return size > 0 && size%8448 == 0
}
