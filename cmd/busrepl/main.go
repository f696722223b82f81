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

// cmd/busrepl is an interactive bus exerciser: it puts the controlling
// terminal into raw mode with github.com/pkg/term (the library behind the
// teacher's own easyterm wrapper, debugger/terminal/colorterm/easyterm),
// reads hex addresses line by line from standard input, and sets each one
// on a halsim.Pins address bus, printing the data byte the pins then
// report. No scheme engine is attached to the pins, so the printed byte is
// the simulated data bus value, not a byte decoded from the classified ROM.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/term"

	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/dispatch"
	"github.com/cart2600/firmware/halsim"
)

func main() {
	flgs := flag.NewFlagSet("busrepl", flag.ExitOnError)
	flashKiB := flgs.Int("flash", 512, "simulated flash size in KiB")
	if err := flgs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	args := flgs.Args()
	if len(args) != 1 {
		fmt.Println("usage: busrepl <rom file>")
		os.Exit(1)
	}

	if err := run(args[0], uint32(*flashKiB)*1024); err != nil {
		fmt.Printf("* error: %s\n", err)
		os.Exit(1)
	}
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

	id, err := dispatch.Classify(path, buffer, int(size))
	if err != nil {
		return err
	}
	fmt.Printf("classified as %s; type a hex address (e.g. 1ff8) then Enter, Ctrl-D to quit\n", id)

	t, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		// raw-mode failure isn't fatal for this development tool; fall
		// back to ordinary buffered line input.
		fmt.Println("* warning: could not open terminal in raw mode, falling back to line input:", err)
	} else {
		defer t.Restore()
		defer t.Close()
	}

	pins := halsim.NewPins()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		addr, err := strconv.ParseUint(line, 16, 16)
		if err != nil {
			fmt.Println("* not a hex address:", line)
			continue
		}
		pins.SetAddr(uint16(addr))
		fmt.Printf("address bus now %04x, data bus reads %02x\n", addr, pins.SampleData())
	}
	return nil
}
