package llm

import "testing"

func TestPoolFromEnv_NumberedSlotsInOrder(t *testing.T) {
	env := map[string]string{
		"TINYHABITS_GEMINI_API_KEY_1": "key-one",
		"TINYHABITS_GEMINI_API_KEY_2": "key-two",
		"TINYHABITS_GEMINI_API_KEY_5": "key-five",
	}
	pool := poolFromEnv(func(k string) string { return env[k] })

	want := []Credential{"key-one", "key-two", "key-five"}
	if len(pool) != len(want) {
		t.Fatalf("pool length = %d, want %d", len(pool), len(want))
	}
	for i := range want {
		if pool[i] != want[i] {
			t.Errorf("pool[%d] = %q, want %q", i, pool[i], want[i])
		}
	}
}

func TestPoolFromEnv_LegacySlotLast(t *testing.T) {
	env := map[string]string{
		"TINYHABITS_GEMINI_API_KEY_2": "key-two",
		"TINYHABITS_GEMINI_API_KEY":   "legacy-key",
	}
	pool := poolFromEnv(func(k string) string { return env[k] })

	if len(pool) != 2 {
		t.Fatalf("pool length = %d, want 2", len(pool))
	}
	if pool[0] != "key-two" || pool[1] != "legacy-key" {
		t.Errorf("pool = %v, want [key-two legacy-key]", pool)
	}
}

func TestPoolFromEnv_DeduplicatesAndSkipsPlaceholders(t *testing.T) {
	env := map[string]string{
		"TINYHABITS_GEMINI_API_KEY_1": "same-key",
		"TINYHABITS_GEMINI_API_KEY_2": "your-api-key-here",
		"TINYHABITS_GEMINI_API_KEY_3": "  ",
		"TINYHABITS_GEMINI_API_KEY":   "same-key",
	}
	pool := poolFromEnv(func(k string) string { return env[k] })

	if len(pool) != 1 || pool[0] != "same-key" {
		t.Errorf("pool = %v, want [same-key]", pool)
	}
}

func TestPoolFromEnv_EmptyIsValid(t *testing.T) {
	pool := poolFromEnv(func(string) string { return "" })
	if len(pool) != 0 {
		t.Errorf("pool = %v, want empty", pool)
	}
}

func TestCredentialRedacted(t *testing.T) {
	if got := Credential("abcdefgh").Redacted(); got != "...efgh" {
		t.Errorf("Redacted() = %q, want %q", got, "...efgh")
	}
}
