package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatMessageInvolves(t *testing.T) {
	m := ChatMessage{SenderID: "u1", ReceiverID: "admin"}
	assert.True(t, m.Involves("u1"))
	assert.True(t, m.Involves("admin"))
	assert.False(t, m.Involves("u2"))
	assert.False(t, m.Involves(""))
	assert.Equal(t, "u1", m.Peer("admin"))
}

func TestChatMessageValidate(t *testing.T) {
	assert.NoError(t, ChatMessage{Message: "hi"}.Validate())
	assert.NoError(t, ChatMessage{ImageURL: "https://img/x.png"}.Validate())
	assert.ErrorIs(t, ChatMessage{}.Validate(), ErrMessageBody)
	assert.ErrorIs(t, ChatMessage{Message: "hi", ImageURL: "https://img/x.png"}.Validate(), ErrMessageBody)
}
