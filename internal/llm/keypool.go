package llm

import (
	"fmt"
	"strings"
)

// Credential pool discovery.
//
// Keys live in numbered slots so a household can stack several free-tier
// accounts: TINYHABITS_GEMINI_API_KEY_1 .. _10, tried in slot order. The
// single-slot TINYHABITS_GEMINI_API_KEY form predates the numbered slots
// and is appended last for compatibility. Values still carrying the
// "your-" placeholder from the sample .env are skipped.

const (
	keySlotPrefix = "TINYHABITS_GEMINI_API_KEY"
	placeholder   = "your-"
)

// poolFromEnv collects the ordered credential pool. getenv is injected so
// tests can run without touching the process environment.
func poolFromEnv(getenv func(string) string) []Credential {
	var pool []Credential
	seen := make(map[string]bool)

	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] || strings.HasPrefix(v, placeholder) {
			return
		}
		seen[v] = true
		pool = append(pool, Credential(v))
	}

	for i := 1; i <= maxKeySlots; i++ {
		add(getenv(fmt.Sprintf("%s_%d", keySlotPrefix, i)))
	}
	add(getenv(keySlotPrefix))

	return pool
}
