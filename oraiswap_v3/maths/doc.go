/*
Package maths holds the fixed-point arithmetic of oraiswap-v3 concentrated
liquidity pools.

Every value is a *uint256.Int carrying an implicit decimal scale:

	sqrt price   1e24
	liquidity    1e6
	percentage   1e12 (fees, 1e12 = 100%)
	fee growth   1e28
	token amount 1

Products that may exceed 128 bits go through a 512-bit intermediate and every
division takes an explicit rounding direction, so results match the deployed
contract bit for bit. Functions never mutate their arguments and keep no state.
*/
package maths
