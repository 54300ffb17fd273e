package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigits(t *testing.T) {
	require.Equal(t, "5", Digits("Course n°5"))
	require.Equal(t, "12", Digits(" 1 2 "))
	require.Equal(t, "", Digits("abc"))
}

func TestIsDigits(t *testing.T) {
	require.True(t, IsDigits("3"))
	require.True(t, IsDigits("0123"))
	require.False(t, IsDigits(""))
	require.False(t, IsDigits("47,80"))
	require.False(t, IsDigits("-1"))
	require.False(t, IsDigits("١٢"))
}

func TestRemoveSpaces(t *testing.T) {
	require.Equal(t, "Attelé-", RemoveSpaces("\n  Attelé -"))
	require.Equal(t, "ab", RemoveSpaces("a\u00a0b"))
}

func TestCollapseSpaces(t *testing.T) {
	require.Equal(t, "a b c", CollapseSpaces("  a \n\t b   c "))
}

func TestRemoveThousandsSeparators(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "1 200,00 €", expected: "1200,00 €"},
		{input: "1\u00a0234\u00a0567,50", expected: "1234567,50"},
		{input: "12 345", expected: "12345"},
		{input: "47,80 €", expected: "47,80 €"},
		{input: "1 = 2", expected: "1 = 2"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, RemoveThousandsSeparators(test.input), test.input)
	}
}
