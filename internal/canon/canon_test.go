package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int64", int64(-100), "-100"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"array", []any{int64(1), "x", true}, `[1,"x",true]`},
		{"no html escaping", "a<b&c>d", `"a<b&c>d"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestMarshalSortedKeys(t *testing.T) {
	got, err := Marshal(map[string]any{
		"zebra": int64(1),
		"alpha": map[string]any{"b": int64(2), "a": int64(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":{"a":3,"b":2},"zebra":1}`, string(got))
}

func TestMarshalRejects(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"null", nil},
		{"float", 1.5},
		{"float32", float32(1)},
		{"nested null", map[string]any{"a": nil}},
		{"struct", struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestMarshalNFCNormalization(t *testing.T) {
	// U+0065 U+0301 (e + combining acute) normalizes to U+00E9.
	decomposed, err := Marshal("e\u0301")
	require.NoError(t, err)
	precomposed, err := Marshal("\u00e9")
	require.NoError(t, err)
	assert.Equal(t, string(precomposed), string(decomposed))
}

func TestHashWithDomain(t *testing.T) {
	a := HashWithDomain("flam/decision/v1", []byte("payload"))
	b := HashWithDomain("flam/decision/v1", []byte("payload"))
	c := HashWithDomain("flam/other/v1", []byte("payload"))

	assert.Equal(t, a, b, "hash must be deterministic")
	assert.NotEqual(t, a, c, "domains must separate")
	assert.Len(t, a, 64)
}
