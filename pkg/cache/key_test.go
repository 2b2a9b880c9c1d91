package cache

import (
	"testing"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "simple path",
			key:  Key{URL: "https://acme.zendesk.com/api/v2/help_center/categories.json"},
			want: "hc:acme.zendesk.com:api/v2/help_center/categories.json",
		},
		{
			name: "query params sorted",
			key:  Key{URL: "https://acme.zendesk.com/list?page=2&include=users"},
			want: "hc:acme.zendesk.com:list:include=users:page=2",
		},
		{
			name: "trailing slash normalized",
			key:  Key{URL: "https://acme.zendesk.com/list/"},
			want: "hc:acme.zendesk.com:list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey_String_Deterministic(t *testing.T) {
	a := Key{URL: "https://acme.zendesk.com/list?b=2&a=1"}
	b := Key{URL: "https://acme.zendesk.com/list?a=1&b=2"}

	if a.String() != b.String() {
		t.Errorf("equivalent URLs produced different keys: %q vs %q", a.String(), b.String())
	}
}
