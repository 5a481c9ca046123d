package digester_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/byte4ever/scaffolder/digester"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestBytes_returns_sha256(t *testing.T) {
	t.Parallel()

	// sha256("hello")
	assert.Equal(
		t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		digester.DigestBytes([]byte("hello")),
	)
}

func TestMatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pa := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(pa, []byte("package main\n"), 0o600))

	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{name: "identical", path: pa, content: "package main\n", want: true},
		{name: "same size different bytes", path: pa, content: "package main\t", want: false},
		{name: "different size", path: pa, content: "package other\n", want: false},
		{name: "missing file", path: filepath.Join(dir, "missing"), content: "", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := digester.Matches(tc.path, []byte(tc.content))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatches_empty_file(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(pa, nil, 0o600))

	got, err := digester.Matches(pa, nil)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestMatches_directory(t *testing.T) {
	t.Parallel()

	_, err := digester.Matches(t.TempDir(), []byte("x"))
	assert.ErrorContains(t, err, "is a directory")
}
