package planner

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/helpers"
	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/models"
)

// PoolSnapshot is a pool query result together with its initialized ticks
type PoolSnapshot struct {
	models.PoolWithPoolKey
	Ticks []models.LiquidityTick `json:"ticks"`
}

// PoolSource hands out pool snapshots by key
type PoolSource interface {
	Snapshot(key models.PoolKey) (PoolSnapshot, bool)
}

// StaticPools is an immutable PoolSource over one set of snapshots. Refreshing
// means building a new StaticPools from fresh queries.
type StaticPools struct {
	pools map[string]PoolSnapshot
}

var _ PoolSource = (*StaticPools)(nil)

// NewStaticPools indexes snapshots by their pool key string
func NewStaticPools(snapshots []PoolSnapshot) (*StaticPools, error) {
	pools := make(map[string]PoolSnapshot, len(snapshots))
	for i, snapshot := range snapshots {
		if err := snapshot.PoolKey.Validate(); err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", i, err)
		}
		if err := helpers.CheckLiquiditySum(snapshot.Ticks); err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", i, err)
		}
		pools[helpers.PoolKeyToString(snapshot.PoolKey)] = snapshot
	}
	return &StaticPools{pools: pools}, nil
}

// LoadStaticPools decodes a JSON array of snapshots
func LoadStaticPools(r io.Reader) (*StaticPools, error) {
	var snapshots []PoolSnapshot
	if err := json.NewDecoder(r).Decode(&snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode pool snapshots: %w", err)
	}
	return NewStaticPools(snapshots)
}

func (s *StaticPools) Snapshot(key models.PoolKey) (PoolSnapshot, bool) {
	snapshot, ok := s.pools[helpers.PoolKeyToString(key)]
	return snapshot, ok
}

func (s *StaticPools) Len() int {
	return len(s.pools)
}
