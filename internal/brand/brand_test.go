package brand

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAccepts(t *testing.T) {
	cases := []struct{ in, want string }{
		{"설화수", "설화수"},
		{"  라운드랩  ", "라운드랩"},
		{"토리든\t어워즈", "토리든 어워즈"},
		{"메디힐 브랜드 썸네일", "메디힐"},
		{"이니스프리\u200b", "이니스프리"},
		{"\ufeff헤라", "헤라"},
		{"Dr. Jart", "Dr. Jart"},
		{"숯", "숯"},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.in)
		require.True(t, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestNormalizeRejects(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"\u200b\u200b",
		"A00688",
		"A1234",
		"12345",
		"1234",
		"에이프릴스킨2",
		strings.Repeat("가", 31),
		"one two three four five six seven",
		"b",
		"X",
		"brand",
		"Brand",
		"LOGO",
		"image",
		"title",
		"브랜드",
		"로고 화이트",
		"이미지",
		"타이틀",
	}
	for _, in := range cases {
		_, ok := Normalize(in)
		assert.False(t, ok, "input %q should be rejected", in)
	}
}

func TestNormalizeShortCodesSurvive(t *testing.T) {
	// Codes need four or more digits; short alphanumerics are rejected by
	// the digit rule anyway, so only pure-letter short tokens pass.
	got, ok := Normalize("VDL")
	require.True(t, ok)
	assert.Equal(t, "VDL", got)
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"설화수", "메디힐 브랜드 썸네일", "  토리든  ", "라네즈", "어노브 브랜드썸네일"}
	for _, in := range inputs {
		first, ok := Normalize(in)
		require.True(t, ok, "input %q", in)
		again, ok := Normalize(first)
		require.True(t, ok, "normalized %q", first)
		assert.Equal(t, first, again)
	}
}

func TestListDedupesAndCaps(t *testing.T) {
	l := NewList()
	assert.True(t, l.Add("설화수"))
	assert.False(t, l.Add("설화수"))
	assert.True(t, l.Add("라네즈"))
	assert.Equal(t, []string{"설화수", "라네즈"}, l.Names())

	for i := 0; l.Len() < MaxRank; i++ {
		l.Add(fmt.Sprintf("브랜드-%d", i))
	}
	require.Equal(t, MaxRank, l.Len())
	assert.False(t, l.Add("넘침"))
	assert.Equal(t, MaxRank, l.Len())
}

func TestMergeKeepsPrimaryOrder(t *testing.T) {
	primary := []string{"설화수", "라네즈"}
	extra := []string{"라네즈", "헤라", "설화수", "이니스프리"}
	got := Merge(primary, extra, 3)
	assert.Equal(t, []string{"설화수", "라네즈", "헤라"}, got)
}
