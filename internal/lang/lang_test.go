package lang

import "testing"

func TestT(t *testing.T) {
	tests := []struct {
		language string
		key      string
		want     string
	}{
		{"en", KeyGroupChat, "Group chat"},
		{"pl", KeyGroupChat, "Czat grupowy"},
		{"pl", KeyPrivateChat, "Czat prywatny"},
		{"de", KeyGroupChat, "Group chat"}, // unknown language falls back to English
		{"en", "no_such_key", "no_such_key"},
	}
	for _, tt := range tests {
		if got := T(tt.language, tt.key); got != tt.want {
			t.Errorf("T(%q, %q) = %q, want %q", tt.language, tt.key, got, tt.want)
		}
	}
}

func TestLanguagesHaveCompleteTables(t *testing.T) {
	en := tables[DefaultLanguage]
	for _, code := range Languages() {
		table, ok := tables[code]
		if !ok {
			t.Errorf("language %q listed but has no table", code)
			continue
		}
		for key := range en {
			if _, ok := table[key]; !ok {
				t.Errorf("language %q missing key %q", code, key)
			}
		}
	}
}
