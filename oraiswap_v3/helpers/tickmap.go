package helpers

import (
	"fmt"
	"math/bits"
	"slices"

	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/maths"
)

// TickmapChunk is one entry of the `tick_map` query: a 64 bit bitmap of initialized ticks.
type TickmapChunk struct {
	Index  uint16 `json:"index"`
	Bitmap uint64 `json:"bitmap"`
}

// TicksFromTickmap decodes tickmap chunks into the sorted list of initialized tick indexes.
func TicksFromTickmap(chunks []TickmapChunk, tickSpacing uint16) ([]int32, error) {
	if tickSpacing == 0 {
		return nil, fmt.Errorf("tick spacing must be positive")
	}
	maxChunk := maths.GetMaxChunk(tickSpacing)

	var ticks []int32
	for _, chunk := range chunks {
		if chunk.Index > maxChunk {
			return nil, fmt.Errorf("chunk %d exceeds max chunk %d for tick spacing %d", chunk.Index, maxChunk, tickSpacing)
		}
		for bitmap := chunk.Bitmap; bitmap != 0; bitmap &= bitmap - 1 {
			bit := uint8(bits.TrailingZeros64(bitmap))
			tick := maths.PositionToTick(chunk.Index, bit, tickSpacing)
			if tick > maths.GetMaxTick(tickSpacing) {
				return nil, fmt.Errorf("chunk %d bit %d maps past max tick", chunk.Index, bit)
			}
			ticks = append(ticks, tick)
		}
	}
	slices.Sort(ticks)
	return slices.Compact(ticks), nil
}
