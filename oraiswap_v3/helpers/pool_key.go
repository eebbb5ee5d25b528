package helpers

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/models"
	"github.com/btcsuite/btcutil/bech32"
)

// PoolKeyToString encodes a pool key as "{token_x}-{token_y}-{fee}-{tick_spacing}"
func PoolKeyToString(key models.PoolKey) string {
	return fmt.Sprintf("%s-%s-%d-%d", key.TokenX, key.TokenY, key.FeeTier.Fee, key.FeeTier.TickSpacing)
}

// ParsePoolKey decodes the output of PoolKeyToString. The last two fields are
// the fee and the tick spacing. Denoms themselves may contain hyphens, so every
// split of the remaining fields is scored and the most plausible pair of denoms
// that also satisfies the token order wins. A tie between splits is reported
// as ErrAmbiguousPoolKey. A factory denom followed by a hyphenated plain denom
// cannot be told apart from a longer subdenom and decodes as the latter.
func ParsePoolKey(s string) (models.PoolKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 4 {
		return models.PoolKey{}, fmt.Errorf("invalid pool key %q: expected at least 4 fields", s)
	}

	fee, err := strconv.ParseUint(parts[len(parts)-2], 10, 64)
	if err != nil {
		return models.PoolKey{}, fmt.Errorf("invalid fee in pool key %q: %w", s, err)
	}
	tickSpacing, err := strconv.ParseUint(parts[len(parts)-1], 10, 16)
	if err != nil {
		return models.PoolKey{}, fmt.Errorf("invalid tick spacing in pool key %q: %w", s, err)
	}
	feeTier, err := models.NewFeeTier(fee, uint16(tickSpacing))
	if err != nil {
		return models.PoolKey{}, fmt.Errorf("invalid fee tier in pool key %q: %w", s, err)
	}

	tokens := parts[:len(parts)-2]
	bestScore, ties := -1, 0
	var key models.PoolKey
	for i := 1; i < len(tokens); i++ {
		tokenX := strings.Join(tokens[:i], "-")
		tokenY := strings.Join(tokens[i:], "-")
		if tokenX == "" || tokenY == "" || !models.IsTokenX(tokenX, tokenY) {
			continue
		}
		switch score := denomScore(tokenX) + denomScore(tokenY); {
		case score > bestScore:
			bestScore, ties = score, 1
			key = models.PoolKey{TokenX: tokenX, TokenY: tokenY, FeeTier: feeTier}
		case score == bestScore:
			ties++
		}
	}
	if bestScore < 0 {
		return models.PoolKey{}, fmt.Errorf("invalid pool key %q: no ordered token pair", s)
	}
	if ties > 1 {
		return models.PoolKey{}, errorsmod.Wrapf(ErrAmbiguousPoolKey, "%q has %d equally likely splits", s, ties)
	}
	return key, nil
}

// denomScore ranks how much a string looks like a complete denom:
// 2 for structured denoms (cw20 address, ibc/ hash, factory denom),
// 1 for a plain native denom and 0 otherwise.
func denomScore(denom string) int {
	switch {
	case isBech32(denom):
		return 2
	case strings.HasPrefix(denom, "ibc/"):
		hash := strings.TrimPrefix(denom, "ibc/")
		if _, err := hex.DecodeString(hash); err == nil && len(hash) == 64 {
			return 2
		}
		return 0
	case strings.HasPrefix(denom, "factory/"):
		parts := strings.SplitN(denom, "/", 3)
		if len(parts) == 3 && parts[1] != "" && parts[2] != "" && !strings.Contains(parts[1], "-") {
			return 2
		}
		return 0
	case strings.Contains(denom, "-") || strings.Contains(denom, "/"):
		return 0
	default:
		return 1
	}
}

func isBech32(s string) bool {
	if strings.Contains(s, "-") {
		return false
	}
	_, _, err := bech32.Decode(s)
	return err == nil
}
