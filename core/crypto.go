package core

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

func GetHash(bytes []byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(bytes)
	return hash.Sum(nil)
}

// IsValidAddress reports whether addr is a 0x-prefixed 20 byte hex address.
func IsValidAddress(addr string) bool {
	return strings.HasPrefix(addr, "0x") && common.IsHexAddress(addr)
}

// SameAddress compares two wallet addresses ignoring case.
// Checksummed and lower-cased forms of one address are equal.
func SameAddress(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NormalizeSignature lower-cases a hex signature and ensures the 0x prefix.
func NormalizeSignature(signature string) string {
	s := strings.ToLower(strings.TrimSpace(signature))
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return s
}
