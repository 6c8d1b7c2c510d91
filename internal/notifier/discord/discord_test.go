package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/metrics"
	"github.com/mauv0809/scrim-manager/internal/scrim"
	"github.com/mauv0809/scrim-manager/internal/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSession struct {
	sendFunc func(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
	embeds   []*discordgo.MessageEmbed
}

func (m *mockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.embeds = append(m.embeds, embed)
	if m.sendFunc != nil {
		return m.sendFunc(channelID, embed)
	}
	return &discordgo.Message{ID: "m1", ChannelID: channelID}, nil
}

func TestAnnounceMatchRecorded(t *testing.T) {
	api := &mockSession{}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "chan", m)

	err := n.AnnounceMatchRecorded(context.Background(), scrim.MatchSummary{
		ID: 5, Winner: scrim.TeamA, MapName: "Lotus", TeamA: []string{"Jett", "Sova"}, TeamB: []string{"Sage"},
	}, false)
	require.NoError(t, err)

	require.Len(t, api.embeds, 1)
	e := api.embeds[0]
	assert.Equal(t, "Team A wins on Lotus", e.Title)
	assert.Equal(t, "Jett\nSova", e.Fields[0].Value)
	assert.Equal(t, "Sage", e.Fields[1].Value)
	assert.Equal(t, "Match #5", e.Footer.Text)
	assert.Equal(t, 1, m.NotifSent(metrics.ChannelDiscord))
}

func TestSend_DryRun(t *testing.T) {
	api := &mockSession{}
	n := NewNotifierWithAPI(api, "chan", metrics.NewMock())

	require.NoError(t, n.AnnounceMatchDeleted(context.Background(), scrim.MatchSummary{ID: 1}, true))
	assert.Empty(t, api.embeds)
}

func TestSend_Failure(t *testing.T) {
	api := &mockSession{sendFunc: func(string, *discordgo.MessageEmbed) (*discordgo.Message, error) {
		return nil, errors.New("HTTP 403 Forbidden")
	}}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "chan", m)

	err := n.SendLeaderboard(context.Background(), nil, false)
	require.Error(t, err)
	assert.Equal(t, 1, m.NotifFailed(metrics.ChannelDiscord))
	assert.Equal(t, 0, m.NotifSent(metrics.ChannelDiscord))
}

func TestLeaderboardEmbed(t *testing.T) {
	entries := []club.LeaderboardEntry{
		{User: club.User{Name: "jett", DisplayName: "Jett", Tier: tier.Radiant, Wins: 9, TotalGames: 10}, Rank: 1, WinRate: 90},
	}
	e := leaderboardEmbed(entries)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "1. Jett (jett)", e.Fields[0].Name)
	assert.Equal(t, "Radiant · 90.0% (9/10)", e.Fields[0].Value)
	assert.Nil(t, e.Footer)

	many := make([]club.LeaderboardEntry, 30)
	e = leaderboardEmbed(many)
	assert.Len(t, e.Fields, maxFields)
	assert.Equal(t, "and 5 more", e.Footer.Text)

	assert.Equal(t, "No players yet. Run a roster sync first!", leaderboardEmbed(nil).Description)
}
