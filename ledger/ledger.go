// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const (
	// TxHashPrefix marks a transaction hash the way ledger explorers display it.
	TxHashPrefix = "0x"
	// TxHashHexLen is the number of hex characters after the prefix.
	TxHashHexLen = 40
)

// GenerateTxHash returns "0x" followed by 40 random lowercase hex characters.
// The value is cosmetic and is not a digest of anything.
func GenerateTxHash() string {
	b := make([]byte, TxHashHexLen/2)
	// Since Go 1.24 crypto/rand.Read never returns an error; it crashes the
	// program instead. go.mod requires 1.25.
	_, _ = rand.Read(b)
	return TxHashPrefix + hex.EncodeToString(b)
}

// ValidTxHash reports whether s has the shape produced by GenerateTxHash
func ValidTxHash(s string) bool {
	if !strings.HasPrefix(s, TxHashPrefix) {
		return false
	}
	digits := s[len(TxHashPrefix):]
	if len(digits) != TxHashHexLen {
		return false
	}
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

// ShortHash abbreviates a hash for log lines: 0x1234…cdef
func ShortHash(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}
