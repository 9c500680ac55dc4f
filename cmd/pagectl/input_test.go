package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveText(t *testing.T) {
	t.Run("positional wins over stdin", func(t *testing.T) {
		got, err := resolveText([]string{"Release", "day!"}, strings.NewReader("ignored"), false)
		require.NoError(t, err)
		assert.Equal(t, "Release day!", got)
	})

	t.Run("dash reads stdin", func(t *testing.T) {
		got, err := resolveText([]string{"-"}, strings.NewReader("  Hello from the pipe\n"), false)
		require.NoError(t, err)
		assert.Equal(t, "Hello from the pipe", got)
	})

	t.Run("empty args read stdin", func(t *testing.T) {
		got, err := resolveText(nil, strings.NewReader("piped"), false)
		require.NoError(t, err)
		assert.Equal(t, "piped", got)
	})

	t.Run("interactive terminal refuses to block", func(t *testing.T) {
		_, err := resolveText(nil, strings.NewReader("never read"), true)
		assert.Error(t, err)
	})

	t.Run("blank stdin is an error", func(t *testing.T) {
		_, err := resolveText(nil, strings.NewReader("   \n"), false)
		assert.Error(t, err)
	})
}

func TestResolveIDList(t *testing.T) {
	t.Run("positional args join", func(t *testing.T) {
		got, err := resolveIDList([]string{"c-1", "c-2,c-3"}, strings.NewReader(""), false)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff([]string{"c-1", "c-2", "c-3"}, got))
	})

	t.Run("stdin newline separated", func(t *testing.T) {
		got, err := resolveIDList(nil, strings.NewReader("a-1\na-2\n\na-3\n"), false)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff([]string{"a-1", "a-2", "a-3"}, got))
	})

	t.Run("no ids anywhere", func(t *testing.T) {
		_, err := resolveIDList(nil, strings.NewReader("\n ,\n"), false)
		assert.Error(t, err)
	})
}

func TestSplitIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"mixed separators", "a, b,\nc", []string{"a", "b", "c"}},
		{"windows newlines", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank segments dropped", ",, a ,,", []string{"a"}},
		{"empty", "  \n ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitIDs(tt.raw)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}
