package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	memberQuery  string
	matchMap     string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(deleteMatchCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(metricsCmd)

	membersCmd.Flags().StringVarP(&memberQuery, "query", "q", "", "Fuzzy-match members by name")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of matches to show")
	recordCmd.Flags().StringVarP(&matchMap, "map", "m", "", "Map the match was played on")

	mapsCmd.AddCommand(mapsAddCmd, mapsRemoveCmd, mapsRandomCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the roster from the Discord guild",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/sync", nil)
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the members in the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/members"
		if memberQuery != "" {
			endpoint += "?q=" + url.QueryEscape(memberQuery)
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/leaderboard", nil)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recent matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches?limit="+strconv.Itoa(historyLimit), nil)
	},
}

var recordCmd = &cobra.Command{
	Use:     "record <winner> <team-a ids> <team-b ids>",
	Short:   "Record a match",
	Example: "scrim-cli record A 1,2,3,4,5 6,7,8,9,10 --map Ascent",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		teamA, err := parseIDs(args[1])
		if err != nil {
			return err
		}
		teamB, err := parseIDs(args[2])
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/matches", map[string]any{
			"winner":   strings.ToUpper(args[0]),
			"team_a":   teamA,
			"team_b":   teamB,
			"map_name": matchMap,
		})
	},
}

var deleteMatchCmd = &cobra.Command{
	Use:   "delete-match <id>",
	Short: "Delete a match and revert its stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/matches/"+args[0], nil)
	},
}

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List the map pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/maps", nil)
	},
}

var mapsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a map to the pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/maps", map[string]string{"name": args[0]})
	},
}

var mapsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a map from the pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/maps/"+args[0], nil)
	},
}

var mapsRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Pick a random map",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/maps/random", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

func parseIDs(csv string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func performRequest(method, endpoint string, payload any) error {
	target := host + endpoint
	if dryRun {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		target += sep + "dry_run=true"
	}
	fmt.Printf("Making %s request to %s\n", method, target)

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
