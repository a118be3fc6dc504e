package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestOfflineWithoutAPIKey(t *testing.T) {
	a := New(context.Background(), "", "", zap.NewNop().Sugar())

	assert.False(t, a.Online())

	// No client is ever constructed, so no network call can happen.
	reply := a.Respond(context.Background(), "hello")
	assert.Equal(t, OfflineMessage, reply)
}

func TestOfflineReplyIsStable(t *testing.T) {
	a := New(context.Background(), "", "", zap.NewNop().Sugar())

	first := a.Respond(context.Background(), "what bots do you have?")
	second := a.Respond(context.Background(), "what bots do you have?")
	assert.Equal(t, first, second)
}
