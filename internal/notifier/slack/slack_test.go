package slack

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/metrics"
	"github.com/mauv0809/scrim-manager/internal/scrim"
	"github.com/mauv0809/scrim-manager/internal/tier"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.NotifSent("slack"))
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(plain("hello"), nil, nil))
	_, _, err := notifier.sendMessage(context.Background(), message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent("slack"))
	assert.Equal(t, 0, metrics.NotifFailed("slack"))
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotifSent("slack"))
	assert.Equal(t, 1, metrics.NotifFailed("slack"))
}

func TestAnnounceMatchRecorded_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	err := notifier.AnnounceMatchRecorded(context.Background(), scrim.MatchSummary{ID: 1, Winner: scrim.TeamA}, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled)
}

func TestFormatMatchRecorded(t *testing.T) {
	m := scrim.MatchSummary{
		ID:        12,
		CreatedAt: time.Date(2025, 7, 9, 20, 0, 0, 0, time.UTC),
		Winner:    scrim.TeamB,
		MapName:   "Ascent",
		TeamA:     []string{"Jett", "Sova"},
		TeamB:     []string{"Sage"},
	}
	msg := (&Notifier{}).formatMatchRecorded(m)
	require.Len(t, msg.Blocks.BlockSet, 3)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "⚔️ Scrim recorded ⚔️", header.Text.Text)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	require.Len(t, section.Fields, 4)
	assert.Equal(t, "*Winner*\nTeam B", section.Fields[0].Text)
	assert.Equal(t, "*Map*\nAscent", section.Fields[1].Text)
	assert.Equal(t, "*Team A*\n• Jett\n• Sova", section.Fields[2].Text)
	assert.Equal(t, "*Team B*\n• Sage", section.Fields[3].Text)

	ctxBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok)
	el, ok := ctxBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Match #12 · Wed 09 Jul, 20:00", el.Text)
}

func TestFormatMatchDeleted(t *testing.T) {
	msg := (&Notifier{}).formatMatchDeleted(scrim.MatchSummary{ID: 4, Winner: scrim.TeamA, MapName: "Unknown"})
	require.Len(t, msg.Blocks.BlockSet, 2)
	section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "Match #4 on Unknown (Team A won) was deleted and stats reverted.", section.Text.Text)
}

func TestFormatLeaderboard(t *testing.T) {
	t.Run("ranks players with medals", func(t *testing.T) {
		entries := []club.LeaderboardEntry{
			{User: club.User{Name: "jett", DisplayName: "Jett", Tier: tier.Gold, Wins: 3, TotalGames: 4}, Rank: 1, WinRate: 75},
			{User: club.User{Name: "sova", DisplayName: "Sova", Tier: tier.Iron, Wins: 1, TotalGames: 2}, Rank: 2, WinRate: 50},
			{User: club.User{Name: "sage", DisplayName: "Sage", Tier: tier.Unranked}, Rank: 4, WinRate: 0},
		}
		msg := (&Notifier{}).formatLeaderboard(entries)
		require.Len(t, msg.Blocks.BlockSet, 4)

		first := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Equal(t, "1. 🥇 Jett (jett) [Gold]\n> Win Rate: 75.0% (3/4)", first.Text.Text)
		last := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
		assert.Equal(t, "4. Sage (sage) [Unranked]\n> Win Rate: 0.0% (0/0)", last.Text.Text)
	})

	t.Run("empty leaderboard", func(t *testing.T) {
		msg := (&Notifier{}).formatLeaderboard(nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Equal(t, "No players yet. Run a roster sync first!", section.Text.Text)
	})

	t.Run("truncates long boards", func(t *testing.T) {
		entries := make([]club.LeaderboardEntry, 40)
		for i := range entries {
			entries[i] = club.LeaderboardEntry{User: club.User{Name: fmt.Sprint(i)}, Rank: i + 1}
		}
		msg := (&Notifier{}).formatLeaderboard(entries)
		require.Len(t, msg.Blocks.BlockSet, 1+maxLeaderboardRows+1)
		ctxBlock := msg.Blocks.BlockSet[len(msg.Blocks.BlockSet)-1].(*slackapi.ContextBlock)
		assert.Equal(t, "…and 15 more", ctxBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject).Text)
	})
}

func TestFormatPlayerStats(t *testing.T) {
	u := &club.User{Name: "jett", DisplayName: "Jett", Tier: tier.Diamond, Wins: 2, TotalGames: 5}
	resp, err := (&Notifier{}).FormatPlayerStatsResponse(u, "jet")
	require.NoError(t, err)
	msg, ok := resp.(slackapi.Message)
	require.True(t, ok)

	header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	assert.Equal(t, "📊 Jett (jett)", header.Text.Text)
	section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "*Win Rate*\n40.0%", section.Fields[1].Text)
	assert.Equal(t, "*Losses*\n3", section.Fields[3].Text)
}

func TestFormatPlayerNotFound(t *testing.T) {
	resp, err := (&Notifier{}).FormatPlayerNotFoundResponse("nobody")
	require.NoError(t, err)
	msg := resp.(slackapi.Message)
	section := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	assert.Equal(t, `🤷 No player found matching "nobody".`, section.Text.Text)
}
