package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasParticipant(t *testing.T) {
	chat := &Chat{Participants: []string{"user-a", "user-b"}}

	assert.True(t, chat.HasParticipant("user-a"))
	assert.True(t, chat.HasParticipant("user-b"))
	assert.False(t, chat.HasParticipant("user-c"))
	assert.False(t, chat.HasParticipant(""))
}

func TestOtherParticipant(t *testing.T) {
	chat := &Chat{Participants: []string{"user-a", "user-b"}}

	assert.Equal(t, "user-b", chat.OtherParticipant("user-a"))
	assert.Equal(t, "user-a", chat.OtherParticipant("user-b"))

	// For a non-participant the first participant comes back.
	assert.Equal(t, "user-a", chat.OtherParticipant("user-c"))
}

func TestMessageIndex(t *testing.T) {
	chat := &Chat{Messages: []Message{
		{ID: "msg-1"},
		{ID: "msg-2"},
	}}

	assert.Equal(t, 0, chat.MessageIndex("msg-1"))
	assert.Equal(t, 1, chat.MessageIndex("msg-2"))
	assert.Equal(t, -1, chat.MessageIndex("msg-3"))
}
