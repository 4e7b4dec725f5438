package keon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternal-io/keon/kerr"
	"github.com/eternal-io/keon/value"
)

// TestErrorLocations folds original_source/tests/error_location.rs and
// error_locate.rs's single shared fixture table into one run.
func TestErrorLocations(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		line      int
		col       int
		hasColumn bool
	}{
		{"empty", "", 1, 1, true},
		{"backtick after ident", "asdf`", 1, 5, true},
		{"unit inside struct missing fat arrow", "{\n            (foo)}", 2, 18, true},
		{
			"trailing garbage after commented map",
			"\n            // some comment\n            {\n                (foo) => /* unit */ (bar),\n            }   quinn\n            ",
			5, 17, true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := value.Parse("t.keon", []byte(tc.input))
			require.Error(t, err)
			var ke *kerr.Error
			require.ErrorAs(t, err, &ke)
			assert.Equal(t, tc.line, ke.Pos.Line)
			assert.Equal(t, tc.hasColumn, ke.Pos.HasColumn)
			if tc.hasColumn {
				assert.Equal(t, tc.col, ke.Pos.Column)
			}
		})
	}
}

// TestErrorLocationOmitsColumnAfterDeferredNewline mirrors the
// `"broken!\n...\""` fixture: a bare newline inside a quoted string is not
// reported until the closing quote is found, and without a column.
func TestErrorLocationOmitsColumnAfterDeferredNewline(t *testing.T) {
	_, err := value.Parse("t.keon", []byte("\"broken!\n            ...\"\""))
	require.Error(t, err)
	var ke *kerr.Error
	require.ErrorAs(t, err, &ke)
	assert.True(t, kerr.Is(err, kerr.UnexpectedNewline))
	assert.Equal(t, 2, ke.Pos.Line)
	assert.False(t, ke.Pos.HasColumn)
}
