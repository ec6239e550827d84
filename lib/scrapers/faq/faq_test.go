package faq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRecordDerivesHash(t *testing.T) {
	r := NewRecord("hello", "world")

	// sha256 of the utf-8 question text, lowercase hex
	require.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", r.QuestionHash)
	require.Equal(t, "hello", r.Question)
	require.Equal(t, "world", r.Answer)
}

func TestNewRecordStability(t *testing.T) {
	a := NewRecord("同じ質問ですか？", "answer one")
	b := NewRecord("同じ質問ですか？", "answer two")

	// identity tracks the question, not the answer
	require.Equal(t, a.QuestionHash, b.QuestionHash)
	require.Len(t, a.QuestionHash, 64)

	c := NewRecord("別の質問ですか？", "answer one")
	require.NotEqual(t, a.QuestionHash, c.QuestionHash)
}
