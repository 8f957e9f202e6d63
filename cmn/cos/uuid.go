// Package cos provides common low-level types and utilities shared across
// the processor graph runtime: ID generation and structured error
// accumulation.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package cos

import (
	"crypto/rand"
	"sync"

	"github.com/teris-io/shortid"
)

const (
	// alphabet for generated ProcessorId/LinkId values, same shape as the
	// teacher's uuidABC: letters, digits, dash and underscore only so IDs
	// are safe to use as JSON object keys and in the JSON export schema.
	idABC = "-5nZJDft6LuzsjGNpPwY7rQa39vehq4i1cV2FROo8yHSlC0BUEdWbIxMmTgKXAk_"

	LenShortID = 9
	tooLongID  = 32
)

var (
	sidOnce sync.Once
	sid     *shortid.Shortid
)

func initShortID() {
	var seed uint64
	var b [8]byte
	if _, err := rand.Read(b[:]); err == nil {
		for _, c := range b {
			seed = seed<<8 | uint64(c)
		}
	}
	sid = shortid.MustNew(1 /*worker*/, idABC, seed)
}

// GenUUID returns a short, URL-safe, alphanumeric identifier used for both
// ProcessorId and LinkId. Collisions are astronomically unlikely within a
// single runtime's lifetime (see spec.md §3 ProcessorId: "stable string
// identifier... immutable").
func GenUUID() string {
	sidOnce.Do(initShortID)
	uuid := sid.MustGenerate()
	// idABC contains '-' and '_', which IsAlphaNice only accepts in the
	// interior; pad an id that starts or ends with one so it stays valid.
	if c := uuid[0]; c == '-' || c == '_' {
		uuid = "A" + uuid
	}
	if c := uuid[len(uuid)-1]; c == '-' || c == '_' {
		uuid += "z"
	}
	return uuid
}

func IsValidUUID(uuid string) bool {
	return len(uuid) >= LenShortID && len(uuid) <= tooLongID && IsAlphaNice(uuid)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsAlphaNice reports whether s is letters/digits with interior dash/underscore.
func IsAlphaNice(s string) bool {
	l := len(s)
	if l == 0 || l > tooLongID {
		return false
	}
	for i := 0; i < l; i++ {
		c := s[i]
		if isAlpha(c) || (c >= '0' && c <= '9') {
			continue
		}
		if c != '-' && c != '_' {
			return false
		}
		if i == 0 || i == l-1 {
			return false
		}
	}
	return true
}
