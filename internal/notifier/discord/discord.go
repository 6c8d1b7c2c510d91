package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/metrics"
	"github.com/mauv0809/scrim-manager/internal/notifier"
	"github.com/mauv0809/scrim-manager/internal/scrim"
)

const (
	colorWin     = 0x2ecc71
	colorDeleted = 0xe74c3c
	colorBoard   = 0xf1c40f

	// Discord rejects embeds with more than 25 fields.
	maxFields = 25
)

// session is the subset of *discordgo.Session the notifier uses.
type session interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts embeds to a Discord channel with the bot account.
type Notifier struct {
	api       session
	channelID string
	metrics   metrics.Metrics
}

func NewNotifier(token, channelID string, m metrics.Metrics) (*Notifier, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return NewNotifierWithAPI(s, channelID, m), nil
}

func NewNotifierWithAPI(api session, channelID string, m metrics.Metrics) *Notifier {
	return &Notifier{api: api, channelID: channelID, metrics: m}
}

func (n *Notifier) send(ctx context.Context, embed *discordgo.MessageEmbed, dryRun bool) error {
	if dryRun {
		b, _ := json.MarshalIndent(embed, "", "  ")
		log.Info("[Dry Run] Would send Discord embed", "channel", n.channelID, "embed", string(b))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg, err := n.api.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		n.metrics.IncNotifFailed(metrics.ChannelDiscord)
		log.Error("Failed to send Discord embed", "error", err, "channel", n.channelID)
		return fmt.Errorf("failed to send embed: %w", err)
	}
	n.metrics.IncNotifSent(metrics.ChannelDiscord)
	log.Info("Successfully sent Discord embed", "channel", n.channelID, "message", msg.ID)
	return nil
}

func (n *Notifier) AnnounceMatchRecorded(ctx context.Context, match scrim.MatchSummary, dryRun bool) error {
	return n.send(ctx, matchRecordedEmbed(match), dryRun)
}

func (n *Notifier) AnnounceMatchDeleted(ctx context.Context, match scrim.MatchSummary, dryRun bool) error {
	return n.send(ctx, &discordgo.MessageEmbed{
		Title:       "Scrim deleted",
		Description: fmt.Sprintf("Match #%d on %s (Team %s won) was deleted and stats reverted.", match.ID, match.MapName, match.Winner),
		Color:       colorDeleted,
	}, dryRun)
}

func (n *Notifier) SendLeaderboard(ctx context.Context, entries []club.LeaderboardEntry, dryRun bool) error {
	return n.send(ctx, leaderboardEmbed(entries), dryRun)
}

func (n *Notifier) FormatLeaderboardResponse(entries []club.LeaderboardEntry) (any, error) {
	return leaderboardEmbed(entries), nil
}

func (n *Notifier) FormatPlayerStatsResponse(u *club.User, query string) (any, error) {
	return &discordgo.MessageEmbed{
		Title: u.Label(),
		Color: colorBoard,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tier", Value: string(u.Tier), Inline: true},
			{Name: "Win Rate", Value: fmt.Sprintf("%.1f%%", u.WinRate()), Inline: true},
			{Name: "Record", Value: fmt.Sprintf("%dW / %dL", u.Wins, u.Losses()), Inline: true},
		},
	}, nil
}

func (n *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return &discordgo.MessageEmbed{Description: fmt.Sprintf("No player found matching %q.", query)}, nil
}

func names(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(list, "\n")
}

func matchRecordedEmbed(m scrim.MatchSummary) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Team %s wins on %s", m.Winner, m.MapName),
		Color: colorWin,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Team A", Value: names(m.TeamA), Inline: true},
			{Name: "Team B", Value: names(m.TeamB), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Match #%d", m.ID)},
	}
	if !m.CreatedAt.IsZero() {
		e.Timestamp = m.CreatedAt.Format(time.RFC3339)
	}
	return e
}

func leaderboardEmbed(entries []club.LeaderboardEntry) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{Title: "Scrim Leaderboard", Color: colorBoard}
	if len(entries) == 0 {
		e.Description = "No players yet. Run a roster sync first!"
		return e
	}
	for _, entry := range entries[:min(len(entries), maxFields)] {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d. %s", entry.Rank, entry.Label()),
			Value: fmt.Sprintf("%s · %.1f%% (%d/%d)", entry.Tier, entry.WinRate, entry.Wins, entry.TotalGames),
		})
	}
	if rest := len(entries) - maxFields; rest > 0 {
		e.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("and %d more", rest)}
	}
	return e
}
