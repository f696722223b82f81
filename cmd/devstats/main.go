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

//go:build devstats

// cmd/devstats is a development-only dashboard: it repurposes
// go-echarts/statsview (the runtime metrics charting library the teacher's
// fork wraps as its own "statsview" package, launched from gopher2600.go's
// --statsview flag) to serve statsview's default runtime-metrics charts
// while an Image Loader run goes against halsim. No custom series are
// registered, so flash-write throughput and bank count are not charted. It
// is never linked into a firmware build, hence the build tag.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-echarts/statsview"

	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/dispatch"
	"github.com/cart2600/firmware/halsim"
	"github.com/cart2600/firmware/loader"
)

func main() {
	flgs := flag.NewFlagSet("devstats", flag.ExitOnError)
	flashKiB := flgs.Int("flash", 512, "simulated flash size in KiB")
	if err := flgs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	args := flgs.Args()
	if len(args) != 1 {
		fmt.Println("usage: devstats <rom file>")
		os.Exit(1)
	}

	mgr := statsview.New()
	go mgr.Start()
	fmt.Println("devstats dashboard running; default address is :18066")

	if err := run(args[0], uint32(*flashKiB)*1024); err != nil {
		fmt.Printf("* error: %s\n", err)
		os.Exit(1)
	}

	// keep the dashboard up long enough to inspect the finished run.
	time.Sleep(30 * time.Second)
	mgr.Stop()
}

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
	buffer := make([]byte, arena.HotCapacity)
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

	flashDriver, err := halsim.NewFlashDriver()
	if err != nil {
		return err
	}
	a := arena.NewArena(flashDriver, flashSize)

	_, _, err = dispatch.NewEngine(id, a, int(size))
	if err != nil {
		return err
	}

	return loader.Load(a, file, int(size), buffer)
}
