package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/metrics"
	"github.com/mauv0809/scrim-manager/internal/notifier"
	"github.com/mauv0809/scrim-manager/internal/scrim"
	"github.com/slack-go/slack"
)

// maxLeaderboardRows keeps messages below Slack's 50 block limit.
const maxLeaderboardRows = 25

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed(metrics.ChannelSlack)
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent(metrics.ChannelSlack)
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) AnnounceMatchRecorded(ctx context.Context, match scrim.MatchSummary, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatMatchRecorded(match), dryRun)
	return err
}

func (s *Notifier) AnnounceMatchDeleted(ctx context.Context, match scrim.MatchSummary, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatMatchDeleted(match), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(ctx context.Context, entries []club.LeaderboardEntry, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatLeaderboard(entries), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(entries []club.LeaderboardEntry) (any, error) {
	return s.formatLeaderboard(entries), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(user *club.User, query string) (any, error) {
	return s.formatPlayerStats(user), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

func markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("mrkdwn", text, false, false)
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇 "
	case 2:
		return "🥈 "
	case 3:
		return "🥉 "
	}
	return ""
}

func teamList(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return "• " + strings.Join(names, "\n• ")
}

func (s *Notifier) formatMatchRecorded(m scrim.MatchSummary) slack.Message {
	fields := []*slack.TextBlockObject{
		markdown(fmt.Sprintf("*Winner*\nTeam %s", m.Winner)),
		markdown(fmt.Sprintf("*Map*\n%s", m.MapName)),
		markdown("*Team A*\n" + teamList(m.TeamA)),
		markdown("*Team B*\n" + teamList(m.TeamB)),
	}
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(plain("⚔️ Scrim recorded ⚔️")),
		slack.NewSectionBlock(nil, fields, nil),
		slack.NewContextBlock("", plain(fmt.Sprintf("Match #%d · %s", m.ID, m.CreatedAt.Format("Mon 02 Jan, 15:04")))),
	)
}

func (s *Notifier) formatMatchDeleted(m scrim.MatchSummary) slack.Message {
	text := fmt.Sprintf("Match #%d on %s (Team %s won) was deleted and stats reverted.", m.ID, m.MapName, m.Winner)
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(plain("↩️ Scrim deleted")),
		slack.NewSectionBlock(plain(text), nil, nil),
	)
}

// formatLeaderboard creates the Slack message for the win rate leaderboard.
func (s *Notifier) formatLeaderboard(entries []club.LeaderboardEntry) slack.Message {
	blocks := []slack.Block{slack.NewHeaderBlock(plain("🏆 Scrim Leaderboard 🏆"))}

	if len(entries) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plain("No players yet. Run a roster sync first!"), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	shown := entries[:min(len(entries), maxLeaderboardRows)]
	for _, e := range shown {
		text := fmt.Sprintf("%d. %s%s [%s]\n> Win Rate: %.1f%% (%d/%d)",
			e.Rank, medal(e.Rank), e.Label(), e.Tier, e.WinRate, e.Wins, e.TotalGames)
		blocks = append(blocks, slack.NewSectionBlock(plain(text), nil, nil))
	}
	if rest := len(entries) - len(shown); rest > 0 {
		blocks = append(blocks, slack.NewContextBlock("", plain(fmt.Sprintf("…and %d more", rest))))
	}
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatPlayerStats(u *club.User) slack.Message {
	fields := []*slack.TextBlockObject{
		markdown(fmt.Sprintf("*Tier*\n%s", u.Tier)),
		markdown(fmt.Sprintf("*Win Rate*\n%.1f%%", u.WinRate())),
		markdown(fmt.Sprintf("*Wins*\n%d", u.Wins)),
		markdown(fmt.Sprintf("*Losses*\n%d", u.Losses())),
	}
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(plain("📊 "+u.Label())),
		slack.NewSectionBlock(nil, fields, nil),
		slack.NewContextBlock("", plain(fmt.Sprintf("%d scrims played", u.TotalGames))),
	)
}

func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	return slack.NewBlockMessage(
		slack.NewSectionBlock(plain(fmt.Sprintf("🤷 No player found matching %q.", query)), nil, nil),
	)
}
