package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageList(t *testing.T) {
	pages, err := parsePageList("1, 3,5")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, pages)

	pages, err = parsePageList("7")
	require.NoError(t, err)
	assert.Equal(t, []int{7}, pages)

	_, err = parsePageList("1,two,3")
	assert.Error(t, err)

	pages, err = parsePageList(" , ,")
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestParseRanges(t *testing.T) {
	ranges, err := parseRanges("1-3,5,7-9")
	require.NoError(t, err)
	assert.Equal(t, []pageRange{{1, 3}, {5, 5}, {7, 9}}, ranges)

	_, err = parseRanges("3-1")
	assert.Error(t, err, "descending range")

	_, err = parseRanges("a-b")
	assert.Error(t, err)
}

func TestOriginalNameFromToken(t *testing.T) {
	cases := map[string]string{
		"d2719f8a-1111-4222-8333-444455556666_report.pdf":           "report.pdf",
		"deleted_pages_d2719f8a-1111-4222-8333-444455556666_a.pdf":  "a.pdf",
		"merged_d2719f8a-1111-4222-8333-444455556666_my_notes.pdf":  "my_notes.pdf",
		"plain-token.pdf":                                           "plain-token.pdf",
	}
	for token, want := range cases {
		assert.Equal(t, want, originalNameFromToken(token), "token %q", token)
	}
}
