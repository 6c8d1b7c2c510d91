package roster

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/discord"
	"github.com/mauv0809/scrim-manager/internal/pubsub"
	"github.com/mauv0809/scrim-manager/internal/tier"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultExcludeName = "Scrim Bot"

	MsgNoMembers = "No members found."
	everyoneRole = "@everyone"
)

// Result summarises one sync run.
type Result struct {
	Synced   int      `json:"synced"`
	Removed  int      `json:"removed"`
	Warnings []string `json:"warnings,omitempty"`
}

// Message is the human readable outcome of a sync.
func (r Result) Message() string {
	if r.Synced == 0 {
		return MsgNoMembers
	}
	return fmt.Sprintf("Synced %d members!", r.Synced)
}

// Service mirrors the guild roster into the users table.
type Service struct {
	discord     discord.DiscordClient
	store       club.ClubStore
	events      pubsub.PubSubClient
	guildID     string
	excludeName string
}

// NewService wires a roster sync. events may be nil.
func NewService(client discord.DiscordClient, store club.ClubStore, events pubsub.PubSubClient, guildID, excludeName string) *Service {
	if excludeName == "" {
		excludeName = DefaultExcludeName
	}
	return &Service{
		discord:     client,
		store:       store,
		events:      events,
		guildID:     guildID,
		excludeName: excludeName,
	}
}

// Sync fetches roles and members, upserts every human member and removes bots.
func (s *Service) Sync(ctx context.Context) (Result, error) {
	var (
		res     Result
		roles   []*discord.Role
		members []*discord.Member
		roleErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// A failed role fetch only costs tier enrichment.
		roles, roleErr = s.discord.GetRoles(gctx)
		return nil
	})
	g.Go(func() error {
		var err error
		members, err = s.discord.GetMembers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("Failed to fetch guild members", "error", err)
		return res, err
	}

	roleNames := make(map[string]string, len(roles))
	if roleErr != nil {
		log.Warn("Failed to fetch guild roles, continuing without tiers", "error", roleErr)
		res.Warnings = append(res.Warnings, fmt.Sprintf("Could not fetch roles (%v); tiers were not resolved.", roleErr))
	} else {
		for _, r := range roles {
			if r.ID == s.guildID || r.Name == everyoneRole {
				continue
			}
			roleNames[r.ID] = r.Name
		}
	}

	users, botIDs := s.partition(members, roleNames, &res)

	if len(users) > 0 {
		if err := s.store.UpsertUsers(ctx, users); err != nil {
			log.Error("Failed to upsert roster", "error", err)
			return res, err
		}
	}
	res.Synced = len(users)

	if len(botIDs) > 0 {
		removed, err := s.store.DeleteUsers(ctx, botIDs)
		if err != nil {
			log.Warn("Failed to remove bot accounts", "ids", botIDs, "error", err)
			res.Warnings = append(res.Warnings, "Could not remove bot accounts.")
		} else {
			res.Removed = int(removed)
		}
	}

	log.Info("Roster synced", "synced", res.Synced, "removed", res.Removed, "warnings", len(res.Warnings))
	s.publish(ctx, res)
	return res, nil
}

func (s *Service) partition(members []*discord.Member, roleNames map[string]string, res *Result) ([]club.User, []int64) {
	users := make([]club.User, 0, len(members))
	var botIDs []int64

	for _, m := range members {
		if m == nil || m.User == nil {
			continue
		}
		id, err := strconv.ParseInt(m.User.ID, 10, 64)
		if err != nil {
			log.Warn("Skipping member with invalid id", "id", m.User.ID)
			res.Warnings = append(res.Warnings, fmt.Sprintf("Skipped member with invalid id %q.", m.User.ID))
			continue
		}

		display := discord.DisplayName(m)
		if m.User.Bot || display == s.excludeName {
			botIDs = append(botIDs, id)
			continue
		}

		names := make([]string, 0, len(m.Roles))
		for _, rid := range m.Roles {
			if name, ok := roleNames[rid]; ok {
				names = append(names, name)
			}
		}

		users = append(users, club.User{
			ID:          id,
			Name:        m.User.Username,
			DisplayName: display,
			Roles:       strings.Join(names, ", "),
			Tier:        tier.Resolve(names),
		})
	}
	return users, botIDs
}

func (s *Service) publish(ctx context.Context, res Result) {
	if s.events == nil {
		return
	}
	err := s.events.SendMessage(ctx, pubsub.EventRosterSynced, pubsub.RosterSyncedEvent{
		Synced:   res.Synced,
		Removed:  res.Removed,
		Warnings: res.Warnings,
		SyncedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Error("Failed to publish roster event", "error", err)
	}
}

// IsUpstream reports whether err came back from the Discord API.
func IsUpstream(err error) bool {
	var apiErr *discord.APIError
	return errors.As(err, &apiErr)
}
