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

package scheme

import (
	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/curated"
)

// dpcAmplitude is the fixed 8-entry amplitude table the three music data
// fetchers' mixed flag bits index into, per spec.md §4.5.
var dpcAmplitude = [8]uint8{0, 4, 5, 9, 6, 10, 11, 15}

// dataFetcher is one of DPC's eight counters, ported unchanged in spirit
// from the teacher's dataFetcher (hardware/memory/cartridge/cartridge_dpc.go),
// whose column/line comments cite US patent 4,644,495.
type dataFetcher struct {
	top, bottom byte
	low, hi     byte
	flag        bool

	musicMode bool
	oscClock  bool
}

func (df *dataFetcher) clk() {
	df.low--
	if df.low == 0xff {
		df.hi--
		if df.musicMode {
			df.low = df.top
		}
	}
}

func (df *dataFetcher) setFlag() {
	if df.low == df.top {
		df.flag = true
	} else if df.low == df.bottom {
		df.flag = false
	}
}

// DPC implements the Pitfall II scheme: two 4 KiB ROM banks plus a 2 KiB
// display-data region, eight data fetchers mapped at $1000-$107F, a
// bank-switch hotspot at $1FF8/$1FF9, and a music-mixing, RNG-pumping tick
// sourced from the system tick counter. Grounded on
// hardware/memory/cartridge/cartridge_dpc.go.
type DPC struct {
	banks [][]byte
	bank  int
	gfx   []byte

	fetcher [8]dataFetcher
	rng     uint8

	tick       SystemTick
	lastTicks  uint32
	accumTicks uint32

	// prevRom2 is the previous byte fetched from ROM space, used to detect
	// the "free cycle" opcode pattern (a zero-page store) that spec.md
	// §4.5 and §5 gate the music/RNG tick behind.
	prevRom2 uint8
}

// SystemTick is the subset of hal.SystemTick DPC needs: a free-running tick
// count it samples rather than owns.
type SystemTick interface {
	Ticks() uint32
}

func NewDPC(a *arena.Arena, plan arena.ImagePlan, gfx []byte, tick SystemTick) (*DPC, error) {
	if plan.BankCount != 2 {
		return nil, curated.Errorf(ErrWrongSize)
	}
	if len(gfx) != 2048 {
		return nil, curated.Errorf("scheme: DPC display data must be exactly 2048 bytes")
	}
	cart := &DPC{
		banks: bankPtrs(a, plan),
		bank:  1,
		gfx:   gfx,
		tick:  tick,
	}
	if tick != nil {
		cart.lastTicks = tick.Ticks()
	}
	return cart, nil
}

func (cart *DPC) ID() ID { return DPC }

func (cart *DPC) Read(addr uint16) uint8 {
	local := addr & 0x0fff

	// chip select pumps the RNG on every access, register or not, per
	// col 7 ln 58-62 fig 8 of the patent as the teacher transcribes it.
	cart.rng |= (cart.rng>>3)&0x01 ^ (cart.rng>>4)&0x01 ^ (cart.rng>>5)&0x01 ^ (cart.rng>>7)&0x01
	cart.rng <<= 1

	if local > 0x003f {
		if local == 0x0ff8 {
			cart.bank = 0
			return 0
		}
		if local == 0x0ff9 {
			cart.bank = 1
			return 0
		}
		data := cart.banks[cart.bank][local]
		cart.prevRom2 = data
		return data
	}

	return cart.readRegister(local)
}

func (cart *DPC) readRegister(local uint16) uint8 {
	var data uint8

	if local <= 0x0003 {
		return cart.rng
	}
	if local <= 0x0007 {
		var mix uint8
		if cart.fetcher[5].musicMode && cart.fetcher[5].flag {
			mix |= 0x01
		}
		if cart.fetcher[6].musicMode && cart.fetcher[6].flag {
			mix |= 0x02
		}
		if cart.fetcher[7].musicMode && cart.fetcher[7].flag {
			mix |= 0x04
		}
		return dpcAmplitude[mix]
	}

	f := local & 0x0007
	gfxAddr := uint16(cart.fetcher[f].hi)<<8 | uint16(cart.fetcher[f].low)
	gfxAddr = gfxAddr&0x07ff ^ 0x07ff

	cart.fetcher[f].setFlag()

	switch {
	case f >= 5 && cart.fetcher[f].musicMode:
		data = cart.fetcher[f].top
	case local <= 0x000f:
		data = cart.gfx[gfxAddr]
	case local <= 0x0017:
		if cart.fetcher[f].flag {
			data = cart.gfx[gfxAddr]
		}
	case local <= 0x001f:
		// display data AND w/flag, nibbles swapped: left unimplemented by
		// the teacher's dpc type too; no software title exercises it.
	case local <= 0x0027:
		// display data AND w/flag, byte reversed: same as above.
	case local <= 0x002f:
		if cart.fetcher[f].flag {
			data = cart.gfx[gfxAddr] >> 1
		}
	case local <= 0x0037:
		if cart.fetcher[f].flag {
			data = cart.gfx[gfxAddr] << 1
		}
	case local <= 0x003f:
		if f >= 5 && cart.fetcher[f].flag {
			data = 0xff
		}
	}

	cart.fetcher[f].clk()
	return data
}

func (cart *DPC) IsWriteAddr(addr uint16) bool {
	local := addr & 0x0fff
	return local >= 0x0040 && local <= 0x007f
}

func (cart *DPC) Write(addr uint16, data uint8) {
	local := addr & 0x0fff
	f := local & 0x0007

	switch {
	case local <= 0x0047:
		cart.fetcher[f].top = data
		cart.fetcher[f].flag = false
	case local <= 0x004f:
		cart.fetcher[f].bottom = data
	case local <= 0x0057:
		if f >= 5 && cart.fetcher[f].musicMode {
			cart.fetcher[f].low = cart.fetcher[f].top
		} else {
			cart.fetcher[f].low = data
		}
	case local <= 0x005f:
		cart.fetcher[f].hi = data
		if f >= 5 && local >= 0x005d {
			cart.fetcher[f].musicMode = data&0x10 == 0x10
			cart.fetcher[f].oscClock = data&0x20 == 0x20
		}
	case local >= 0x0070 && local <= 0x0077:
		cart.rng = 0xff
	}
}

// Clock samples the system tick counter and advances every music-mode,
// oscillator-clocked fetcher for each ~21 kHz period that has elapsed,
// gated by the free-cycle opcode pattern described in spec.md §4.5 and §5:
// a previous ROM fetch matching a zero-page store (prevRom2 & 0xEC == 0x84).
func (cart *DPC) Clock() {
	if cart.tick == nil {
		return
	}
	if cart.prevRom2&0xec != 0x84 {
		return
	}

	now := cart.tick.Ticks()
	elapsed := now - cart.lastTicks
	cart.lastTicks = now
	cart.accumTicks += elapsed

	const period = 59 // see teacher's step(): ~20 kHz, tuned by ear against Pitfall II
	for cart.accumTicks >= period {
		cart.accumTicks -= period
		for f := 5; f <= 7; f++ {
			if cart.fetcher[f].musicMode && cart.fetcher[f].oscClock {
				cart.fetcher[f].clk()
				cart.fetcher[f].setFlag()
			}
		}
	}
}
