package helpers_test

import (
	"testing"

	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/helpers"
	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/maths"
	"github.com/zeebo/assert"
)

func TestTicksFromTickmap(t *testing.T) {
	chunks := []helpers.TickmapChunk{
		{Index: maths.GetMaxChunk(1), Bitmap: 1 << 52},
		{Index: 0, Bitmap: 0b101},
	}

	ticks, err := helpers.TicksFromTickmap(chunks, 1)
	assert.NoError(t, err)
	assert.DeepEqual(t, ticks, []int32{maths.MinTick, maths.MinTick + 2, maths.MaxTick})

	// every tick of the list maps back to its chunk and bit
	for _, tick := range ticks {
		_, _, err := maths.TickToPosition(tick, 1)
		assert.NoError(t, err)
	}
}

func TestTicksFromTickmapRejectsOutOfRange(t *testing.T) {
	_, err := helpers.TicksFromTickmap([]helpers.TickmapChunk{{Index: maths.GetMaxChunk(1), Bitmap: 1 << 53}}, 1)
	assert.Error(t, err)

	_, err = helpers.TicksFromTickmap([]helpers.TickmapChunk{{Index: maths.GetMaxChunk(1) + 1, Bitmap: 1}}, 1)
	assert.Error(t, err)

	_, err = helpers.TicksFromTickmap(nil, 0)
	assert.Error(t, err)
}
