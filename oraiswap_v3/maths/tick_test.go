package maths_test

import (
	"errors"
	"testing"

	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/maths"
	"github.com/zeebo/assert"
	"pgregory.net/rapid"
)

func TestTickLimits(t *testing.T) {
	assert.Equal(t, maths.GetMaxTick(1), int32(221818))
	assert.Equal(t, maths.GetMinTick(1), int32(-221818))
	assert.Equal(t, maths.GetMaxTick(100), int32(221800))
	assert.Equal(t, maths.GetMinTick(100), int32(-221800))
	assert.Equal(t, maths.GetMaxChunk(1), uint16(6931))
	assert.Equal(t, maths.GetTickSearchRange(), int32(256))
	assert.Equal(t, maths.GetMaxTickCross(), 173)
	assert.Equal(t, maths.GetChunkSize(), int32(64))
}

func TestCalculateMaxLiquidityPerTick(t *testing.T) {
	assert.Equal(t, maths.CalculateMaxLiquidityPerTick(1).Dec(), "767028825190275976673213928125400")
	assert.Equal(t, maths.CalculateMaxLiquidityPerTick(100).Dec(), "76709280189571339824926647302021688")
}

func TestCheckTick(t *testing.T) {
	tests := []struct {
		name    string
		tick    int32
		spacing uint16
		valid   bool
	}{
		{"zero", 0, 1, true},
		{"max", maths.MaxTick, 1, true},
		{"min", maths.MinTick, 1, true},
		{"above max", maths.MaxTick + 1, 1, false},
		{"unaligned", 15, 10, false},
		{"aligned max for spacing", 221800, 100, true},
		{"beyond aligned max", 221900, 100, false},
		{"zero spacing", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := maths.CheckTick(tt.tick, tt.spacing)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, maths.ErrTickBounds))
		})
	}
}

func TestCheckTicks(t *testing.T) {
	assert.NoError(t, maths.CheckTicks(-10, 10, 10))
	assert.Error(t, maths.CheckTicks(10, 10, 10))
	assert.Error(t, maths.CheckTicks(20, 10, 10))
	assert.Error(t, maths.CheckTicks(-5, 10, 10))
}

func TestCheckTickToSqrtPriceRelationship(t *testing.T) {
	price, err := maths.CalculateSqrtPrice(10)
	assert.NoError(t, err)

	assert.NoError(t, maths.CheckTickToSqrtPriceRelationship(10, 10, price))
	assert.NoError(t, maths.CheckTickToSqrtPriceRelationship(0, 10, price.Clone().SubUint64(price, 1)))
	assert.True(t, errors.Is(maths.CheckTickToSqrtPriceRelationship(0, 10, price), maths.ErrTickBounds))

	// the last aligned tick only accepts its own price
	assert.NoError(t, maths.CheckTickToSqrtPriceRelationship(maths.MaxTick, 1, maths.GetGlobalMaxSqrtPrice()))
	assert.Error(t, maths.CheckTickToSqrtPriceRelationship(maths.MaxTick, 1, price))
}

func TestTickToPosition(t *testing.T) {
	chunk, bit, err := maths.TickToPosition(maths.MinTick, 1)
	assert.NoError(t, err)
	assert.Equal(t, chunk, uint16(0))
	assert.Equal(t, bit, uint8(0))

	chunk, bit, err = maths.TickToPosition(maths.MaxTick, 1)
	assert.NoError(t, err)
	assert.Equal(t, chunk, maths.GetMaxChunk(1))
	assert.Equal(t, bit, uint8(443636%64))

	_, _, err = maths.TickToPosition(5, 10)
	assert.Error(t, err)
}

func TestTickPositionRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spacing := rapid.Uint16Range(1, 100).Draw(t, "spacing")
		limit := maths.GetMaxTick(spacing) / int32(spacing)
		tick := rapid.Int32Range(-limit, limit).Draw(t, "index") * int32(spacing)

		chunk, bit, err := maths.TickToPosition(tick, spacing)
		if err != nil {
			t.Fatal(err)
		}
		if chunk > maths.GetMaxChunk(spacing) {
			t.Fatalf("chunk %d beyond max chunk %d", chunk, maths.GetMaxChunk(spacing))
		}
		if got := maths.PositionToTick(chunk, bit, spacing); got != tick {
			t.Fatalf("tick %d came back as %d", tick, got)
		}
	})
}

func TestGetSearchLimit(t *testing.T) {
	assert.Equal(t, maths.GetSearchLimit(0, 1, true), int32(256))
	assert.Equal(t, maths.GetSearchLimit(0, 1, false), int32(-256))
	assert.Equal(t, maths.GetSearchLimit(221700, 1, true), maths.MaxTick)
	assert.Equal(t, maths.GetSearchLimit(-221700, 100, false), int32(-221800))
}
