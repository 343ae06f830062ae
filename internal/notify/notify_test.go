package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderDrainClearsQueue(t *testing.T) {
	r := NewRecorder()
	r.Notify(LevelWarning, MsgLoginToAdd)
	r.Notify(LevelSuccess, MsgCartUpdated)

	drained := r.Drain()

	require.Len(t, drained, 2)
	assert.Equal(t, Message{Level: LevelWarning, Text: MsgLoginToAdd}, drained[0])
	assert.Equal(t, Message{Level: LevelSuccess, Text: MsgCartUpdated}, drained[1])
	assert.Equal(t, 0, r.Count())
}

func TestRecorderLastOnEmpty(t *testing.T) {
	r := NewRecorder()

	_, ok := r.Last()

	assert.False(t, ok)
}

func TestFanoutForwardsToAll(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	fan := Fanout{a, b}

	fan.Notify(LevelError, MsgProductsUnreachable)

	for _, r := range []*Recorder{a, b} {
		msg, ok := r.Last()
		require.True(t, ok)
		assert.Equal(t, LevelError, msg.Level)
		assert.Equal(t, MsgProductsUnreachable, msg.Text)
	}
}
