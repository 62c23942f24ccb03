package format

import "testing"

func TestEscapeMarkdownV2(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a_b", `a\_b`},
		{"x.y!z", `x\.y\!z`},
		{"[link](url)", `\[link\]\(url\)`},
		{"1+1=2", `1\+1\=2`},
	}
	for _, tc := range cases {
		if got := EscapeMarkdownV2(tc.in); got != tc.want {
			t.Errorf("EscapeMarkdownV2(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeMarkdownV1(t *testing.T) {
	got, err := EscapeMarkdown("a*b_c", MarkdownV1)
	if err != nil {
		t.Fatal(err)
	}
	if got != `a\*b\_c` {
		t.Errorf("got %q", got)
	}
}

func TestEscapeMarkdownUnsupportedVersion(t *testing.T) {
	if _, err := EscapeMarkdown("x", 3); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}
