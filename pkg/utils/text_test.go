package utils_test

import (
	"bytes"
	"testing"

	"github.com/pseudomuto/cmdreg/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestTrim(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(string, rune) string
		in       string
		chr      rune
		expected string
	}{
		{name: "ltrim", fn: utils.LTrim, in: "xxabcxx", chr: 'x', expected: "abcxx"},
		{name: "rtrim", fn: utils.RTrim, in: "xxabcxx", chr: 'x', expected: "xxabc"},
		{name: "trim", fn: utils.Trim, in: "xxabcxx", chr: 'x', expected: "abc"},
		{name: "trim slashes", fn: utils.RTrim, in: "/lib/scripts//", chr: '/', expected: "/lib/scripts"},
		{name: "nothing to trim", fn: utils.Trim, in: "abc", chr: 'x', expected: "abc"},
		{name: "all trimmed", fn: utils.Trim, in: "xxx", chr: 'x', expected: ""},
		{name: "empty", fn: utils.Trim, in: "", chr: 'x', expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.fn(tt.in, tt.chr))
		})
	}
}

func TestCoalesce(t *testing.T) {
	require.Equal(t, "", utils.Coalesce())
	require.Equal(t, "", utils.Coalesce("", ""))
	require.Equal(t, "b", utils.Coalesce("", "b", "c"))
	require.Equal(t, "a", utils.Coalesce("a", "b"))
}

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, utils.WriteLine(&buf, "hello"))
	require.NoError(t, utils.WriteLine(&buf, ""))
	require.Equal(t, "hello\n\n", buf.String())
}
