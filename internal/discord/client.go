package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// APIClient reads guild data from the Discord REST API with a bot token.
type APIClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	BaseURL    string
	token      string
	guildID    string
}

// NewClient creates a client for one guild. An empty baseURL uses the public API.
func NewClient(token, guildID, baseURL string) DiscordClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Discord allows 50 requests per second per bot.
		limiter: rate.NewLimiter(rate.Limit(50), 5),
		BaseURL: baseURL,
		token:   token,
		guildID: guildID,
	}
}

var _ DiscordClient = (*APIClient)(nil)

// GetRoles fetches every role defined in the guild.
func (c *APIClient) GetRoles(ctx context.Context) ([]*Role, error) {
	var roles []*Role
	if err := c.get(ctx, fmt.Sprintf("/guilds/%s/roles", c.guildID), nil, &roles); err != nil {
		return nil, err
	}
	log.Debug("Fetched guild roles", "count", len(roles))
	return roles, nil
}

// GetMembers fetches all guild members, following the after cursor while full pages come back.
func (c *APIClient) GetMembers(ctx context.Context) ([]*Member, error) {
	var (
		all   []*Member
		after string
	)
	for {
		q := url.Values{}
		q.Set("limit", fmt.Sprint(memberPageSize))
		if after != "" {
			q.Set("after", after)
		}

		var page []*Member
		if err := c.get(ctx, fmt.Sprintf("/guilds/%s/members", c.guildID), q, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)
		log.Debug("Fetched member page", "count", len(page), "after", after)

		if len(page) < memberPageSize || page[len(page)-1].User == nil {
			break
		}
		after = page[len(page)-1].User.ID
	}
	log.Info("Fetched guild members", "count", len(all))
	return all, nil
}

func (c *APIClient) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "DiscordBot (scrim-manager, 1.0)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Discord API", "status", resp.StatusCode, "path", path)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
