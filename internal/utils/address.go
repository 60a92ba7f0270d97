package utils

import "strings"

// zeroAddress is the null address; it is never a valid owner or recipient.
const zeroAddress = "0x0000000000000000000000000000000000000000"

// IsValidAddress reports whether addr is a well-formed, non-zero ledger
// address: "0x" followed by 40 hex digits.
func IsValidAddress(addr string) bool {
	if len(addr) != 42 || addr[0] != '0' || (addr[1] != 'x' && addr[1] != 'X') {
		return false
	}
	for _, r := range addr[2:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return !IsZeroAddress(addr)
}

// IsZeroAddress reports whether addr is the null address.
func IsZeroAddress(addr string) bool {
	return strings.EqualFold(addr, zeroAddress)
}

// NormalizeAddress lowercases an address so map lookups and comparisons are
// case-insensitive. Input is assumed to already be well-formed.
func NormalizeAddress(addr string) string {
	return strings.ToLower(addr)
}
