// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package ipv4

import (
	"math"
	"math/big"
	"net/netip"
	"strconv"
)

// Calculator is the integer arithmetic needed to combine IPv4 labels.
type Calculator[N any] interface {
	// FromDigits parses digits in base. ok is false on malformed input or
	// when the value cannot be represented.
	FromDigits(digits string, base int) (n N, ok bool)
	Int(v int64) N
	Add(a, b N) N
	Mul(a, b N) N
	Pow(base N, exp int) N
	Cmp(a, b N) int
	// ToAddr converts an integer in [0, 2^32-1] to an IPv4 address.
	ToAddr(n N) (netip.Addr, bool)
}

// Native computes with uint64, which holds every intermediate value on
// 64-bit platforms.
type Native struct{}

var _ Calculator[uint64] = Native{}

func (Native) FromDigits(digits string, base int) (uint64, bool) {
	n, err := strconv.ParseUint(digits, base, 64)
	return n, err == nil
}

func (Native) Int(v int64) uint64 { return uint64(v) }

func (Native) Add(a, b uint64) uint64 { return a + b }

func (Native) Mul(a, b uint64) uint64 { return a * b }

func (Native) Pow(base uint64, exp int) uint64 {
	n := uint64(1)
	for range exp {
		n *= base
	}
	return n
}

func (Native) Cmp(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (Native) ToAddr(n uint64) (netip.Addr, bool) {
	if n > math.MaxUint32 {
		return netip.Addr{}, false
	}
	return addrFrom32(uint32(n)), true
}

// Big computes with arbitrary precision integers.
type Big struct{}

var _ Calculator[*big.Int] = Big{}

func (Big) FromDigits(digits string, base int) (*big.Int, bool) {
	if digits == "" {
		return nil, false
	}
	return new(big.Int).SetString(digits, base)
}

func (Big) Int(v int64) *big.Int { return big.NewInt(v) }

func (Big) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }

func (Big) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

func (Big) Pow(base *big.Int, exp int) *big.Int {
	return new(big.Int).Exp(base, big.NewInt(int64(exp)), nil)
}

func (Big) Cmp(a, b *big.Int) int { return a.Cmp(b) }

func (Big) ToAddr(n *big.Int) (netip.Addr, bool) {
	if n.Sign() < 0 || n.BitLen() > 32 {
		return netip.Addr{}, false
	}
	return addrFrom32(uint32(n.Uint64())), true
}

func addrFrom32(v uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}
