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

import (
	"github.com/cart2600/firmware/arena"
	"github.com/cart2600/firmware/curated"
	"github.com/cart2600/firmware/scheme"
)

// bankSize reports the bank granularity the arena should plan for a given
// scheme, used by NewEngine to build the ImagePlan the engine constructor
// expects.
func bankSize(id scheme.ID) int {
	switch id {
	case scheme.TwoK:
		return 2048
	case scheme.E0:
		return 1024
	case scheme.ThreeF, scheme.ThreeE, scheme.ThreeEX, scheme.E7:
		return 2048
	case scheme.DPC:
		return 4096
	default:
		return 4096
	}
}

// NewEngine plans imageSize across a and builds the scheme.Engine for id,
// the step between Classify and loader.Load: the loader needs the plan
// NewEngine produces in order to know where to put the image's bytes, and
// the engine needs the same plan in order to know where to find them, so
// this is always called before the loader runs (cmd/firmware wires the
// two together).
func NewEngine(id scheme.ID, a *arena.Arena, imageSize int) (scheme.Engine, arena.ImagePlan, error) {
	plan, err := a.Plan(imageSize, bankSize(id), nil)
	if err != nil {
		return nil, arena.ImagePlan{}, err
	}

	var e scheme.Engine
	switch id {
	case scheme.TwoK, scheme.FourK, scheme.F8, scheme.F6, scheme.F4, scheme.EF,
		scheme.F8SC, scheme.F6SC, scheme.F4SC, scheme.EFSC:
		e, err = scheme.NewAtari(id, a, plan)
	case scheme.FA:
		e, err = scheme.NewFA(a, plan)
	case scheme.FE:
		e, err = scheme.NewFE(a, plan)
	case scheme.ThreeF:
		e, err = scheme.NewThreeF(a, plan)
	case scheme.ThreeE:
		e, err = scheme.NewThreeE(a, plan)
	case scheme.ThreeEX:
		e, err = scheme.NewThreeEX(a, plan)
	case scheme.E0:
		e, err = scheme.NewE0(a, plan)
	case scheme.Z0840:
		e, err = scheme.NewZ0840(a, plan)
	case scheme.CV:
		e, err = scheme.NewCV(a, plan)
	case scheme.F0:
		e, err = scheme.NewF0(a, plan)
	case scheme.E7:
		e, err = scheme.NewE7(a, plan)
	default:
		return nil, arena.ImagePlan{}, curated.Errorf("dispatch: %s has no arena-backed engine constructor; see NewEngine", id)
	}
	if err != nil {
		return nil, arena.ImagePlan{}, err
	}
	return e, plan, nil
}
