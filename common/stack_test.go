package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	var s Stack[rune]
	assert.True(t, s.Empty())

	s.Push('(')
	s.Push('[')
	assert.Equal(t, 2, s.Len())

	top, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, '[', top)

	v, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, '[', v)
	v, ok = s.Pop()
	assert.True(t, ok)
	assert.Equal(t, '(', v)

	_, ok = s.Pop()
	assert.False(t, ok)
	_, ok = s.Peek()
	assert.False(t, ok)
}
