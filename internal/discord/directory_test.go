package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/rostersync/internal/model"
)

func TestDirectory_Members(t *testing.T) {
	t.Run("single page excludes self", func(t *testing.T) {
		api := newFakeAPI()
		api.members = []*discordgo.Member{
			guildMember("1", "jsmith", "0", "r1"),
			guildMember("2", "legacy", "1234"),
			guildMember("99", "rostersync", "0"),
		}
		dir := NewDirectory(api)
		dir.SetSelf("99")

		members, err := dir.Members(context.Background(), "g1")
		require.NoError(t, err)
		require.Len(t, members, 2)

		assert.Equal(t, model.Member{ID: "1", Handle: "jsmith", Roles: []model.RoleID{"r1"}}, members[0])
		assert.Equal(t, "legacy#1234", members[1].Handle)
		assert.Equal(t, []string{""}, api.pageCalls)
	})

	t.Run("paginates past a full page", func(t *testing.T) {
		api := newFakeAPI()
		for i := 0; i < membersPageSize+5; i++ {
			api.members = append(api.members, guildMember(fmt.Sprintf("u%04d", i), fmt.Sprintf("user%d", i), ""))
		}
		dir := NewDirectory(api)

		members, err := dir.Members(context.Background(), "g1")
		require.NoError(t, err)
		assert.Len(t, members, membersPageSize+5)
		assert.Equal(t, []string{"", fmt.Sprintf("u%04d", membersPageSize-1)}, api.pageCalls)
	})

	t.Run("error maps to apply error", func(t *testing.T) {
		api := newFakeAPI()
		api.membersErr = restError(http.StatusForbidden)
		dir := NewDirectory(api)

		_, err := dir.Members(context.Background(), "g1")
		require.Error(t, err)

		var applyErr *model.ApplyError
		require.True(t, errors.As(err, &applyErr))
		assert.Equal(t, model.OpListMembers, applyErr.Op)
		assert.Equal(t, http.StatusForbidden, applyErr.StatusCode)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})
}

func TestDirectory_SetNickname(t *testing.T) {
	t.Run("truncates to the nickname limit", func(t *testing.T) {
		api := newFakeAPI()
		dir := NewDirectory(api)

		long := "Aleksandra Konstantinopolskaya-Ivanova"
		err := dir.SetNickname(context.Background(), "g1", "1", long)
		require.NoError(t, err)
		assert.Equal(t, string([]rune(long)[:maxNicknameLength]), api.nicknames["1"])
	})

	t.Run("keeps multibyte runes whole", func(t *testing.T) {
		api := newFakeAPI()
		dir := NewDirectory(api)

		err := dir.SetNickname(context.Background(), "g1", "1", "Жанна")
		require.NoError(t, err)
		assert.Equal(t, "Жанна", api.nicknames["1"])
	})

	t.Run("forbidden", func(t *testing.T) {
		api := newFakeAPI()
		api.nickErr["1"] = restError(http.StatusForbidden)
		dir := NewDirectory(api)

		err := dir.SetNickname(context.Background(), "g1", "1", "Jane")
		assert.ErrorIs(t, err, model.ErrForbidden)

		var applyErr *model.ApplyError
		require.True(t, errors.As(err, &applyErr))
		assert.Equal(t, model.OpSetNickname, applyErr.Op)
		assert.Equal(t, "1", applyErr.TargetID)
	})
}

func TestDirectory_Roles(t *testing.T) {
	api := newFakeAPI()
	dir := NewDirectory(api)

	require.NoError(t, dir.GrantRole(context.Background(), "g1", "1", "verified"))
	require.NoError(t, dir.RevokeRole(context.Background(), "g1", "2", "verified"))
	assert.Equal(t, []string{"1:verified"}, api.added)
	assert.Equal(t, []string{"2:verified"}, api.removed)

	api.roleErr = errors.New("connection reset")
	err := dir.GrantRole(context.Background(), "g1", "1", "verified")

	var applyErr *model.ApplyError
	require.True(t, errors.As(err, &applyErr))
	assert.Equal(t, model.OpGrantRole, applyErr.Op)
	assert.Zero(t, applyErr.StatusCode)
}
