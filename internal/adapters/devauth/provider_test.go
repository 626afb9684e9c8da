package devauth

import (
	"context"
	"strings"
	"testing"

	"github.com/podomall/mall-ui-api/internal/ports"
	"github.com/podomall/mall-ui-api/internal/token"
)

func TestProvider_BeginAndExchange(t *testing.T) {
	prov, err := NewProvider(Config{DisplayName: "Dev Shopper", Roles: []string{"USER", "seller"}})
	if err != nil {
		t.Fatalf("NewProvider error: %v", err)
	}

	url, state, nonce, err := prov.Begin(context.Background(), ports.BeginInput{RedirectURL: "/"})
	if err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	if !strings.HasPrefix(url, "/auth/callback?") {
		t.Fatalf("unexpected authURL: %s", url)
	}
	if state == "" || nonce == "" {
		t.Fatal("state and nonce should be generated")
	}

	id, err := prov.Exchange(context.Background(), ports.ExchangeInput{Code: "dev", State: state, Nonce: nonce})
	if err != nil {
		t.Fatalf("Exchange error: %v", err)
	}
	if id.DisplayName != "Dev Shopper" {
		t.Fatalf("unexpected identity: %+v", id)
	}

	codec, err := token.NewCodec()
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	if codec.IsExpired(id.Credential) {
		t.Fatal("freshly minted credential should not be expired")
	}
	roles := codec.Roles(id.Credential)
	if len(roles) != 2 || roles[0] != "USER" || roles[1] != "SELLER" {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestNewProvider_RequiresDisplayName(t *testing.T) {
	if _, err := NewProvider(Config{}); err == nil {
		t.Fatal("expected error for missing display name")
	}
}
