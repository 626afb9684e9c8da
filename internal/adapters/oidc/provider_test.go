package oidc

import (
	"testing"

	"golang.org/x/oauth2"
)

func TestNewProvider_Validation(t *testing.T) {
	cases := []struct {
		name string
		cfg  ProviderConfig
	}{
		{"missing client id", ProviderConfig{}},
		{"missing client secret", ProviderConfig{ClientID: "id"}},
		{"missing redirect url", ProviderConfig{ClientID: "id", ClientSecret: "secret"}},
		{"missing discovery url", ProviderConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"}},
		{"missing backend", ProviderConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb", DiscoveryURL: "https://idp.example.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewProvider(tc.cfg); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}

func TestIDTokenFrom(t *testing.T) {
	if _, err := idTokenFrom(nil); err == nil {
		t.Fatal("expected error for nil token")
	}

	if _, err := idTokenFrom(&oauth2.Token{}); err == nil {
		t.Fatal("expected error for token without id_token")
	}

	tok := (&oauth2.Token{}).WithExtra(map[string]interface{}{"id_token": "raw.jwt.value"})
	raw, err := idTokenFrom(tok)
	if err != nil {
		t.Fatalf("idTokenFrom error: %v", err)
	}
	if raw != "raw.jwt.value" {
		t.Fatalf("unexpected id_token: %s", raw)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "a", "b"); got != "a" {
		t.Fatalf("unexpected value: %s", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Fatalf("expected empty, got: %s", got)
	}
}
