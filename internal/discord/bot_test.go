package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/rostersync/internal/mocks"
	"github.com/dtroode/rostersync/internal/testutil"
)

type MockResumer struct {
	mock.Mock
}

func (m *MockResumer) Resume(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestNewSession(t *testing.T) {
	session, err := NewSession("token")
	require.NoError(t, err)
	assert.Equal(t, "Bot token", session.Token)
	assert.Equal(t, Intents, session.Identify.Intents)
}

func TestBot_onReady(t *testing.T) {
	session, err := NewSession("token")
	require.NoError(t, err)

	resumer := &MockResumer{}
	resumer.On("Resume", mock.Anything).Return(errors.New("store down")).Once()
	resumer.On("Resume", mock.Anything).Return(nil).Once()

	bot := NewBot(session, NewDirectory(session), mocks.NewAdminService(t), mocks.NewInfoProvider(t), resumer, "", testutil.MakeNoopLogger())
	bot.onReady(session, &discordgo.Ready{User: &discordgo.User{ID: "self", Username: "rostersync"}})
	bot.onResumed(session, &discordgo.Resumed{})

	assert.Equal(t, "self", bot.directory.self())
	resumer.AssertExpectations(t)
}
