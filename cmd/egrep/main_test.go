package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr string
	}{
		{"pattern only", []string{"abc"}, options{pattern: "abc", files: []string{}}, ""},
		{"pattern and files", []string{"abc", "a.txt", "-"}, options{pattern: "abc", files: []string{"a.txt", "-"}}, ""},
		{"debug", []string{"-d", "x"}, options{debug: true, pattern: "x", files: []string{}}, ""},
		{"color always", []string{"--color=always", "x"}, options{color: colorAlways, pattern: "x", files: []string{}}, ""},
		{"color never", []string{"--color=never", "x"}, options{color: colorNever, pattern: "x", files: []string{}}, ""},
		{"dash dash", []string{"--", "-x"}, options{pattern: "-x", files: []string{}}, ""},
		{"help", []string{"-h"}, options{help: true}, ""},
		{"version", []string{"--version"}, options{version: true}, ""},
		{"missing pattern", []string{"-d"}, options{}, "missing pattern"},
		{"unknown flag", []string{"-q", "x"}, options{}, "flag provided but not defined: -q"},
		{"bad color", []string{"--color=rainbow", "x"}, options{}, `invalid argument "rainbow" for --color`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func runWith(t *testing.T, opts options, colorize bool, stdin string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(opts, colorize, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Stdin(t *testing.T) {
	input := "abbbb\nbbbb\na\nabbba\n"

	code, out, errOut := runWith(t, options{pattern: "a+b*"}, false, input)
	assert.Equal(t, 0, code)
	assert.Equal(t, "abbbb\na\nabbba\n", out)
	assert.Empty(t, errOut)

	code, out, _ = runWith(t, options{pattern: "zzz"}, false, input)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
}

func TestRun_NoTrailingNewline(t *testing.T) {
	code, out, _ := runWith(t, options{pattern: "def$"}, false, "abc\ndef")
	assert.Equal(t, 0, code)
	assert.Equal(t, "def\n", out)
}

func TestRun_CRLF(t *testing.T) {
	code, out, _ := runWith(t, options{pattern: "abc$"}, false, "abc\r\nxabc\r\nabcd\r\n")
	assert.Equal(t, 0, code)
	assert.Equal(t, "abc\nxabc\n", out)
}

func TestTrimNewline(t *testing.T) {
	for in, want := range map[string]string{
		"abc\n":   "abc",
		"abc\r\n": "abc",
		"abc\r":   "abc",
		"abc":     "abc",
		"\r\n":    "",
		"a\rb\n":  "a\rb",
	} {
		assert.Equal(t, want, string(trimNewline([]byte(in))), "trimNewline(%q)", in)
	}
}

func TestRun_InvalidPattern(t *testing.T) {
	code, out, errOut := runWith(t, options{pattern: "(ab"}, false, "ab\n")
	assert.Equal(t, 2, code)
	assert.Empty(t, out)
	assert.True(t, strings.HasPrefix(errOut, "egrep: Invalid pattern syntax: "), errOut)
}

func TestRun_Files(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("apple\nbanana\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("cherry\npineapple\n"), 0o600))

	code, out, _ := runWith(t, options{pattern: "apple", files: []string{first}}, false, "")
	assert.Equal(t, 0, code)
	assert.Equal(t, "apple\n", out)

	code, out, _ = runWith(t, options{pattern: "apple", files: []string{first, second, "-"}}, false, "apple pie\n")
	assert.Equal(t, 0, code)
	assert.Equal(t, first+":apple\n"+second+":pineapple\n(standard input):apple pie\n", out)
}

func TestRun_MissingFile(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(present, []byte("match\n"), 0o600))
	missing := filepath.Join(dir, "missing.txt")

	code, out, errOut := runWith(t, options{pattern: "match", files: []string{missing, present}}, false, "")
	assert.Equal(t, 2, code)
	assert.Equal(t, present+":match\n", out)
	assert.Contains(t, errOut, "missing.txt")
}

func TestRun_Color(t *testing.T) {
	code, out, _ := runWith(t, options{pattern: "b+"}, true, "abbc\nxyz\n")
	assert.Equal(t, 0, code)
	assert.Equal(t, "a"+colorMatch+"bb"+colorReset+"c\n", out)

	// Empty matches print the line unchanged.
	_, out, _ = runWith(t, options{pattern: "q*"}, true, "abc\n")
	assert.Equal(t, "abc\n", out)
}

func TestRun_Debug(t *testing.T) {
	code, _, errOut := runWith(t, options{pattern: "ab", debug: true}, false, "ab\n")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "tree: Concat(NonGreedyRepeat(Wild),Save(Concat(Literal('a'),Literal('b'))))")
	assert.Contains(t, errOut, "strategy: UsePrefilter")
	assert.Contains(t, errOut, `prefilter: memmem("ab")`)
}
