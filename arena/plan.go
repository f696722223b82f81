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

package arena

import "github.com/cart2600/firmware/curated"

const ErrImageTooLarge = "arena: image too large for hot RAM, buffer and available flash combined"

// Plan fills an ImagePlan greedily: banks go to HotRam first, then Buffer,
// then Flash. writableBanks, if non-nil, marks which bank indices must be
// writable (cartridge RAM banks); those banks are placed in Buffer
// regardless of where greedy placement would otherwise put them, since
// Flash cannot be written to from the hot loop and HotRam is reserved for
// read-mostly code-path banks in this placement strategy.
func (a *Arena) Plan(imageSize, bankSize int, writableBanks map[int]bool) (ImagePlan, error) {
	bankCount := (imageSize + bankSize - 1) / bankSize

	plan := ImagePlan{
		TotalSize: imageSize,
		BankSize:  bankSize,
		BankCount: bankCount,
		Banks:     make([]BankPlacement, bankCount),
	}

	hotBudget := HotCapacity
	bufferBudget := BufferCapacity
	var hotUsed, bufferUsed, flashUsed int

	for i := 0; i < bankCount; i++ {
		writable := writableBanks != nil && writableBanks[i]

		switch {
		case !writable && hotUsed+bankSize <= hotBudget:
			plan.Banks[i] = BankPlacement{Region: HotRam, Offset: uint32(hotUsed), Writable: writable}
			hotUsed += bankSize
		case bufferUsed+bankSize <= bufferBudget:
			plan.Banks[i] = BankPlacement{Region: Buffer, Offset: uint32(bufferUsed), Writable: writable}
			bufferUsed += bankSize
		default:
			if writable {
				return ImagePlan{}, curated.Errorf(ErrImageTooLarge)
			}
			if uint32(flashUsed+bankSize) > a.AvailableFlash() {
				return ImagePlan{}, curated.Errorf(ErrImageTooLarge)
			}
			plan.Banks[i] = BankPlacement{Region: Flash, Offset: uint32(flashUsed), Writable: false}
			flashUsed += bankSize
		}
	}

	// re-sort into the canonical [hot][buffer][flash] ordering the
	// invariant in SPEC_FULL.md §3 requires; the greedy loop above already
	// produces banks in ascending region order for the common case where
	// writable banks aren't interspersed, but guard against interspersion
	// explicitly so the invariant holds unconditionally.
	ordered := make([]BankPlacement, 0, bankCount)
	for _, region := range []Region{HotRam, Buffer, Flash} {
		for _, b := range plan.Banks {
			if b.Region == region {
				ordered = append(ordered, b)
			}
		}
	}
	plan.Banks = ordered

	return plan, nil
}

// BankPtr returns a byte-slice view of bank bankIndex within plan, backed
// by whichever region the plan placed it in. O(1): engines are expected to
// call this once per bank-switch trigger and cache the result, never
// inside the bus-sampling hot loop itself.
func (a *Arena) BankPtr(plan ImagePlan, bankIndex int) []byte {
	b := plan.Banks[bankIndex]
	switch b.Region {
	case HotRam:
		return a.hot[b.Offset : b.Offset+uint32(plan.BankSize)]
	case Buffer:
		return a.buffer[b.Offset : b.Offset+uint32(plan.BankSize)]
	case Flash:
		// flash banks live in the reservation PrepareFlash takes from the
		// top of the part, so offsets count from its base
		base := a.flashSize - uint32(plan.FlashCount()*plan.BankSize)
		start := base + b.Offset
		return a.flashMap[start : start+uint32(plan.BankSize)]
	}
	return nil
}
