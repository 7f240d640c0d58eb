package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"session": map[string]any{
			"cookieName": "qid",
		},
		"resetToken": map[string]any{
			"linkBaseUrl": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SESSION_COOKIENAME", want: "session.cookieName"},
		{envKey: "RESETTOKEN_LINKBASEURL", want: "resetToken.linkBaseUrl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Session.CookieName != defaultCookieName {
		t.Fatalf("cookie name = %q, want %q", cfg.Session.CookieName, defaultCookieName)
	}
	if cfg.Session.TTL != defaultSessionTTL {
		t.Fatalf("session ttl = %v, want %v", cfg.Session.TTL, defaultSessionTTL)
	}
	if cfg.ResetToken.TTL != defaultResetTokenTTL {
		t.Fatalf("reset token ttl = %v, want %v", cfg.ResetToken.TTL, defaultResetTokenTTL)
	}
}
