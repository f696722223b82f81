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

// cmd/firmware is the host-side development harness for the bus engine:
// given a cartridge image on the local filesystem, it runs exactly the
// sequence the real MCU firmware runs on cold boot -- classify, plan,
// load, then hand off to the scheme's bus loop -- against the halsim
// package's in-memory stand-ins for flash, mass storage and GPIO, rather
// than the real hal.FlashDriver/hal.FileProvider/bus.Pins a target build
// would link against. This mirrors the teacher's own "PERFORMANCE" mode
// (gopher2600.go's perform()): a way to drive the real decode/placement
// logic from a command line without a television or a debugger attached.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/cart2600/firmware/ace"
	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/bus"
	"github.com/cart2600/firmware/dispatch"
	"github.com/cart2600/firmware/halsim"
	"github.com/cart2600/firmware/loader"
	"github.com/cart2600/firmware/logger"
	"github.com/cart2600/firmware/scheme"
)

func main() {
	logger.Logf("firmware", "number of cores available on host: %d", runtime.NumCPU())

	flgs := flag.NewFlagSet("firmware", flag.ExitOnError)
	flashKiB := flgs.Int("flash", 512, "simulated flash size in KiB")
	if err := flgs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	args := flgs.Args()
	if len(args) != 1 {
		fmt.Println("usage: firmware <rom file>")
		os.Exit(1)
	}

	if err := run(args[0], uint32(*flashKiB)*1024); err != nil {
		logger.Log("firmware", err)
		fmt.Printf("* error: %s\n", err)
		os.Exit(1)
	}
}

// bootBufferSize is how many leading bytes of the image are read up front,
// both for dispatch.Classify's content heuristics and as the loader's
// first chunk -- matching the teacher's cartridgeloader, which always
// keeps the whole file in memory for small-cartridge-era images and reads
// incrementally only for anything larger (SPEC_FULL.md's flash-streaming
// loader path exists for exactly the images too large to fit in HotRam).
const bootBufferSize = arena.HotCapacity

func run(path string, flashSize uint32) error {
	file := halsim.NewFileProvider()
	if err := file.Mount(); err != nil {
		return err
	}
	defer file.Unmount()

	if err := file.Open(path); err != nil {
		return err
	}
	defer file.Close()

	size, err := file.Size()
	if err != nil {
		return err
	}

	buffer := make([]byte, bootBufferSize)
	if int(size) < len(buffer) {
		buffer = buffer[:size]
	}
	if _, err := file.Read(buffer); err != nil {
		return err
	}
	if err := file.Seek(0); err != nil {
		return err
	}

	id, err := dispatch.Classify(path, buffer, int(size))
	if err != nil {
		return err
	}
	logger.Logf("firmware", "classified %s as scheme %s", path, id)

	flashDriver, err := halsim.NewFlashDriver()
	if err != nil {
		return err
	}
	a := arena.NewArena(flashDriver, flashSize)

	pins := halsim.NewPins()

	switch id {
	case scheme.AR:
		return runSupercharger(a, file, path, int(size), pins)
	case scheme.ACE:
		return runACE(a, buffer, file, pins)
	case scheme.DPC:
		return runDPC(a, buffer, file, int(size), pins)
	default:
		return runStandard(a, id, buffer, file, int(size), pins)
	}
}

func runStandard(a *arena.Arena, id scheme.ID, buffer []byte, file *halsim.FileProvider, size int, pins *halsim.Pins) error {
	engine, plan, err := dispatch.NewEngine(id, a, size)
	if err != nil {
		return err
	}
	if err := loader.Load(a, file, size, buffer); err != nil {
		return err
	}

	logger.Logf("firmware", "%s loaded across %d banks (%d hot, %d buffer, %d flash)",
		id, plan.BankCount, plan.HotCount(), plan.BufferCount(), plan.FlashCount())

	scheme.Run(pins, engine, stableAddrFor(id))
	return nil
}

func runDPC(a *arena.Arena, buffer []byte, file *halsim.FileProvider, size int, pins *halsim.Pins) error {
	const gfxSize = 2048
	romSize := size - gfxSize
	if romSize < 0 {
		return fmt.Errorf("firmware: DPC image too short for its graphics area")
	}

	plan, err := a.Plan(romSize, 4096, nil)
	if err != nil {
		return err
	}

	gfx := make([]byte, gfxSize)
	if err := file.Seek(uint32(romSize)); err != nil {
		return err
	}
	if _, err := file.Read(gfx); err != nil {
		return err
	}
	if err := file.Seek(0); err != nil {
		return err
	}

	tick := halsim.NewSystemTick(21477270 / 26)
	engine, err := scheme.NewDPC(a, plan, gfx, tick)
	if err != nil {
		return err
	}
	if err := loader.Load(a, file, romSize, buffer); err != nil {
		return err
	}

	scheme.Run(pins, engine, bus.StableAddr)
	return nil
}

func runSupercharger(a *arena.Arena, file *halsim.FileProvider, path string, size int, pins *halsim.Pins) error {
	bios := make([]byte, 2048)
	irq := halsim.NewInterrupts()

	engine, err := scheme.NewAR(file, irq, bios, path, size)
	if err != nil {
		return err
	}

	scheme.Run(pins, engine, bus.StableAddr)
	_ = a // the Supercharger's RAM banks live in the engine itself, not the arena
	return nil
}

func runACE(a *arena.Arena, buffer []byte, file *halsim.FileProvider, pins *halsim.Pins) error {
	_ = pins // ACE never reaches the bus loop: control transfers to the image itself
	enter := func(entryPoint uint32) {
		logger.Logf("firmware", "ACE image loaded, native entry point at 0x%08x", entryPoint)
	}
	return ace.Load(a, buffer, file, enter)
}

// stableAddrFor picks the two-sample or three-sample address-settling
// routine per SPEC_FULL.md's resolution of its Open Question: schemes that
// can flip banks on a 2 KiB or finer boundary (3E/3EX/3F/E0/E7/CV), plus FE
// and 0840, use the stricter three-sample form to avoid a false-stable read
// flipping a bank a cycle early; every other scheme uses the cheap
// two-sample form.
func stableAddrFor(id scheme.ID) func(bus.Pins) uint16 {
	switch id {
	case scheme.ThreeE, scheme.ThreeEX, scheme.ThreeF, scheme.FE, scheme.Z0840, scheme.CV, scheme.E0, scheme.E7:
		return bus.StableAddr3
	default:
		return bus.StableAddr
	}
}
