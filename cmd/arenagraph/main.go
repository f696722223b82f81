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

// cmd/arenagraph renders a classified image's bank-to-region placement as a
// graphviz dot file, repurposing memviz -- the teacher's own tool for
// dumping its debugger command tree to memviz.dot (see
// debugger/terminal/commandline/parser_test.go) -- to walk an ImagePlan
// instead of a command graph.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/dispatch"
	"github.com/cart2600/firmware/halsim"
)

// bankNode is one bank of the rendered graph: which region it was placed
// in and whether it is writable, the two facts a placement bug would get
// wrong.
type bankNode struct {
	Index    int
	Region   string
	Writable bool
}

// planGraph is the root value memviz walks; its struct tags and exported
// fields are all memviz.Map needs to produce a dot graph.
type planGraph struct {
	Scheme string
	Banks  []bankNode
}

func main() {
	flgs := flag.NewFlagSet("arenagraph", flag.ExitOnError)
	out := flgs.String("out", "arenagraph.dot", "output dot file path")
	flashKiB := flgs.Int("flash", 512, "simulated flash size in KiB")
	if err := flgs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	args := flgs.Args()
	if len(args) != 1 {
		fmt.Println("usage: arenagraph <rom file>")
		os.Exit(1)
	}

	if err := run(args[0], uint32(*flashKiB)*1024, *out); err != nil {
		fmt.Printf("* error: %s\n", err)
		os.Exit(1)
	}
}

func run(path string, flashSize uint32, outPath string) error {
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

	flashDriver, err := halsim.NewFlashDriver()
	if err != nil {
		return err
	}
	a := arena.NewArena(flashDriver, flashSize)

	_, plan, err := dispatch.NewEngine(id, a, int(size))
	if err != nil {
		return err
	}

	graph := planGraph{Scheme: string(id)}
	for i, b := range plan.Banks {
		graph.Banks = append(graph.Banks, bankNode{
			Index:    i,
			Region:   b.Region.String(),
			Writable: b.Writable,
		})
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, &graph)
	return nil
}
