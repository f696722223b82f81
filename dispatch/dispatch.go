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

// Package dispatch implements the Dispatcher (SPEC_FULL.md §4.7): turns a
// filename plus a buffer of leading bytes into a scheme.ID, the way the
// teacher's Cartridge.fingerprint does for its own cartMapper selection
// (retrieval pack: hardware/memory/cartridge/fingerprint.go), extended
// with the extra schemes and file formats this bus engine supports.
package dispatch

import (
	"path/filepath"
	"strings"

	"github.com/cart2600/firmware/curated"
	"github.com/cart2600/firmware/scheme"
)

// ErrUnrecognized is the Unrecognized outcome of spec.md §7: "BAD ROM
// FILE", when no extension override, size, or content heuristic matches.
const ErrUnrecognized = "dispatch: unrecognized rom file"

// extensionOverrides maps a lowercase file extension directly to a scheme,
// bypassing size/content classification entirely (spec.md §4.7 step 1).
var extensionOverrides = map[string]scheme.ID{
	".ace": scheme.ACE,
	".sc":  scheme.F8SC,
	".dpc": scheme.DPC,
}

// Classify determines the scheme for an image, given its filename (for
// the extension override) and a buffer holding at least its first few
// KiB (enough for every content heuristic; the Image Loader is given the
// same buffer to avoid a second read of the same bytes).
func Classify(filename string, buffer []byte, fileSize int) (scheme.ID, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if id, ok := extensionOverrides[ext]; ok {
		return id, nil
	}

	if fingerprintACE(buffer) {
		return scheme.ACE, nil
	}

	id, ok := classifyBySize(buffer, fileSize)
	if !ok {
		if fingerprintSupercharger(fileSize) {
			return scheme.AR, nil
		}
		return "", curated.Errorf(ErrUnrecognized)
	}
	return id, nil
}

// classifyBySize implements the fixed size table with content-heuristic
// tie-breaking, mirroring the structure (if not every case) of the
// teacher's own fingerprint switch.
func classifyBySize(data []byte, size int) (scheme.ID, bool) {
	switch size {
	case 2048:
		return scheme.TwoK, true

	case 4096:
		return scheme.FourK, true

	case 8192:
		switch {
		case fingerprintFE(data):
			return scheme.FE, true
		case fingerprintZ0840(data):
			return scheme.Z0840, true
		case fingerprintCV(data):
			return scheme.CV, true
		case fingerprintThreeF(data):
			return scheme.ThreeF, true
		case fingerprintE0(data):
			return scheme.E0, true
		case fingerprintSCMirror(data, 4096):
			return scheme.F8SC, true
		default:
			return scheme.F8, true
		}

	case 10240, 10495:
		return scheme.DPC, true

	case 12288:
		return scheme.FA, true

	case 16384:
		switch {
		case fingerprintThreeF(data):
			return scheme.ThreeF, true
		case fingerprintE7(data):
			return scheme.E7, true
		case fingerprintSCMirror(data, 4096):
			return scheme.F6SC, true
		default:
			return scheme.F6, true
		}

	case 18432: // 16 KiB ROM + 2 KiB RAM, E7
		return scheme.E7, true

	case 32768:
		switch {
		case fingerprintThreeF(data):
			return scheme.ThreeF, true
		case fingerprintSCMirror(data, 4096):
			return scheme.F4SC, true
		default:
			return scheme.F4, true
		}

	case 65536:
		switch {
		case fingerprintEF(data):
			if fingerprintSCMirror(data, 4096) {
				return scheme.EFSC, true
			}
			return scheme.EF, true
		default:
			return scheme.F0, true
		}

	default:
		if fingerprintThreeE(data) {
			return scheme.ThreeE, true
		}
		if fingerprintThreeF(data) {
			return scheme.ThreeF, true
		}
		return "", false
	}
}
