package argfmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"safe_passthrough", "abc.def_1-2", "abc.def_1-2"},
		{"number", "0.001", "0.001"},
		{"empty", "", "''"},
		{"spaces", "two words", "'two words'"},
		{"dollar", "$HOME", "'$HOME'"},
		{"double_quotes", `say "hi"`, `'say "hi"'`},
		{"single_quote", "it's", `'it'"'"'s'`},
		{"semicolon", "a;rm -rf", "'a;rm -rf'"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Quote(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestQuote_RejectsNUL(t *testing.T) {
	t.Parallel()

	_, err := Quote("a\x00b")
	require.Error(t, err)
}
