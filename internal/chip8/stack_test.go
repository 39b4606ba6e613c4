package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStackPushPop(t *testing.T) {
	var s Stack

	assert.NoError(t, s.Push(0x200))
	assert.NoError(t, s.Push(0x345))
	assert.Equal(t, 2, s.Depth())

	addr, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x345), addr)

	addr, err = s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x200), addr)
	assert.Equal(t, 0, s.Depth())
}

func TestStackOverflow(t *testing.T) {
	var s Stack

	for i := range StackDepth {
		assert.NoError(t, s.Push(uint16(0x200+i)))
	}

	err := s.Push(0x300)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, StackDepth, s.Depth())
}

func TestStackUnderflow(t *testing.T) {
	var s Stack

	_, err := s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
}
