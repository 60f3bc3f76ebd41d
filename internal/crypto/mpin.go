// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "crypto/subtle"

// MpinMatches compares a presented MPIN with the stored one by exact value
// in constant time.
func MpinMatches(presented, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(stored)) == 1
}

// ValidMpinFormat reports whether mpin consists of exactly 4 or 6 ASCII digits.
func ValidMpinFormat(mpin string) bool {
	if len(mpin) != 4 && len(mpin) != 6 {
		return false
	}

	for i := 0; i < len(mpin); i++ {
		if mpin[i] < '0' || mpin[i] > '9' {
			return false
		}
	}

	return true
}
