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

package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cart2600/firmware/dispatch"
	"github.com/cart2600/firmware/scheme"
)

// rampBuffer returns a buffer with no repeated byte pairs at a fixed offset
// from each other (data[i]=byte(i)), so none of the content fingerprints'
// opcode-sequence or 128-byte-mirror heuristics false-positive on it the way
// an all-zero buffer trivially would (two all-zero 128-byte halves always
// "mirror"). Tests that want a specific fingerprint to fire copy a pattern
// over a few bytes of an otherwise-ramped buffer.
func rampBuffer(size int) []byte {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = byte(i)
	}
	return buf
}

func TestClassifyExtensionOverrides(t *testing.T) {
	id, err := dispatch.Classify("game.ace", rampBuffer(64), 64)
	require.NoError(t, err)
	require.Equal(t, scheme.ACE, id)

	id, err = dispatch.Classify("game.sc", rampBuffer(64), 64)
	require.NoError(t, err)
	require.Equal(t, scheme.F8SC, id)

	id, err = dispatch.Classify("game.dpc", rampBuffer(64), 64)
	require.NoError(t, err)
	require.Equal(t, scheme.DPC, id)
}

func TestClassifyACEMagicWithUnknownExtension(t *testing.T) {
	buf := append([]byte("ACE-2600"), rampBuffer(56)...)
	id, err := dispatch.Classify("game.bin", buf, len(buf))
	require.NoError(t, err)
	require.Equal(t, scheme.ACE, id)
}

func TestClassifyPlainSizes(t *testing.T) {
	id, err := dispatch.Classify("game.bin", rampBuffer(2048), 2048)
	require.NoError(t, err)
	require.Equal(t, scheme.TwoK, id)

	id, err = dispatch.Classify("game.bin", rampBuffer(4096), 4096)
	require.NoError(t, err)
	require.Equal(t, scheme.FourK, id)

	id, err = dispatch.Classify("game.bin", rampBuffer(12288), 12288)
	require.NoError(t, err)
	require.Equal(t, scheme.FA, id)
}

// TestClassify8192DefaultsToF8 regression-covers the dispatcher fix: an
// 8192-byte image with none of the content fingerprints present must land on
// F8, the default for that size, not silently misclassify.
func TestClassify8192DefaultsToF8(t *testing.T) {
	id, err := dispatch.Classify("game.bin", rampBuffer(8192), 8192)
	require.NoError(t, err)
	require.Equal(t, scheme.F8, id)
}

// TestClassify8192E0Fingerprint regression-covers the maintainer-flagged bug:
// fingerprintE0 must be checked against the 8192-byte case (a real Parker
// Bros E0 cartridge is always exactly 8 KiB -- eight 1 KiB banks -- and can
// never reach the 65536-byte branch), not left stranded there where no real
// E0 ROM could ever exercise it.
func TestClassify8192E0Fingerprint(t *testing.T) {
	data := rampBuffer(8192)
	copy(data[100:], []byte{0x8d, 0xe9, 0xff}) // STA $FFE9, an E0 hotspot store

	id, err := dispatch.Classify("game.bin", data, 8192)
	require.NoError(t, err)
	require.Equal(t, scheme.E0, id)
}

func TestClassify65536NeverMisclassifiesAsE0(t *testing.T) {
	data := rampBuffer(65536)
	copy(data[100:], []byte{0x8d, 0xe9, 0xff}) // same byte run, wrong size entirely

	id, err := dispatch.Classify("game.bin", data, 65536)
	require.NoError(t, err)
	require.Equal(t, scheme.F0, id, "an E0-shaped byte run at the 64 KiB size must never select E0; 8 KiB is its only legal size")
}

func TestClassify65536EFFingerprint(t *testing.T) {
	data := rampBuffer(65536)
	copy(data[100:], []byte{0x8d, 0xe5, 0x1f}) // STA $1FE5, an EF hotspot store

	id, err := dispatch.Classify("game.bin", data, 65536)
	require.NoError(t, err)
	require.Equal(t, scheme.EF, id)
}

func TestClassifySuperchargerFallback(t *testing.T) {
	const multiloadSize = 8448
	id, err := dispatch.Classify("game.a26", rampBuffer(16), multiloadSize*2)
	require.NoError(t, err)
	require.Equal(t, scheme.AR, id)
}

func TestClassifyUnrecognized(t *testing.T) {
	_, err := dispatch.Classify("game.bin", rampBuffer(1234), 1234)
	require.Error(t, err)
}
