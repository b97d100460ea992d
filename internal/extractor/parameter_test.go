package extractor

import (
	"reflect"
	"testing"
)

// TestParameters tests query parameter name extraction and filtering.
func TestParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want []string
	}{
		{"html escaped separator", "http://x.com/?a=1&amp;b=2", []string{"a", "b"}},
		{"filter is name level", "http://x.com/?redir=http://evil.com&ok=1", []string{"ok", "redir"}},
		{"duplicates collapse", "http://x.com/p?id=1&id=2&q=x", []string{"id", "q"}},
		{"sorted output", "http://x.com/?z=1&a=1&m=1", []string{"a", "m", "z"}},
		{"blank values ignored", "http://x.com/?a=&b=1&c", []string{"b"}},
		{"name with url dropped", "http://x.com/?http://y.com/x=1&k=v", []string{"k"}},
		{"name with slash dropped", "http://x.com/?a/b=1&c=2", []string{"c"}},
		{"name with backslash dropped", `http://x.com/?a\b=1&c=2`, []string{"c"}},
		{"name with inner space dropped", "http://x.com/?a+b=1&c=2", []string{"c"}},
		{"surrounding space trimmed", "http://x.com/?+name+=1", []string{"name"}},
		{"entity remnant dropped", "http://x.com/?a=1&amp;amp;b=2&nbsp;x=1&gt;y=1&lt;z=1", []string{"a"}},
		{"percent encoded name decoded", "http://x.com/?user%5Bid%5D=1", []string{"user[id]"}},
		{"invalid escape kept raw", "http://x.com/?bad%zz=1", []string{"bad%zz"}},
		{"fragment not part of query", "http://x.com/?a=1#b=2", []string{"a"}},
		{"question mark after fragment", "http://x.com/#x?a=1", nil},
		{"no query", "http://x.com/a/b", nil},
		{"semicolon is not a separator", "http://x.com/?a=1;b=2", []string{"a"}},
		{"scheme-less record", "x.com/search?q=go", []string{"q"}},
		{"unbalanced ipv6 bracket skipped", "http://[::1/?a=1", nil},
		{"invalid port skipped", "http://x.com:port/?a=1", nil},
		{"stray percent in path still parsed", "http://x.com/100%/?a=1", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Parameters(tt.url)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parameters(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

// TestParametersDeterministic tests that repeated extraction is identical.
func TestParametersDeterministic(t *testing.T) {
	t.Parallel()

	const u = "http://x.com/?c=1&b=2&a=3&b=4"
	first := Parameters(u)
	for range 10 {
		if got := Parameters(u); !reflect.DeepEqual(got, first) {
			t.Fatalf("Parameters is not deterministic: %v vs %v", got, first)
		}
	}
}
