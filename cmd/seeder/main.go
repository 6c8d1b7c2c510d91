package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/database"
	"github.com/mauv0809/scrim-manager/internal/scrim"
	"github.com/mauv0809/scrim-manager/internal/tier"
	"gopkg.in/yaml.v3"
)

//go:embed maps.yaml
var mapPoolYAML []byte

type mapPool struct {
	Maps []string `yaml:"maps"`
}

const (
	numPlayers = 30
	numMatches = 200
	teamSize   = 5
	// First id handed out to fake members; real Discord snowflakes are far larger.
	baseUserID int64 = 100000000000000000
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	config := map[string]string{"DB_NAME": "scrims.db"}
	for _, key := range []string{"DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "SEED"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func fakePlayers(f *gofakeit.Faker) []club.User {
	tiers := tier.All()
	users := make([]club.User, 0, numPlayers)
	for i := range numPlayers {
		t := tiers[f.Number(1, len(tiers)-1)]
		roles := []string{fmt.Sprintf("%s %d", t, f.Number(1, 3)), "Scrims"}
		users = append(users, club.User{
			ID:          baseUserID + int64(i),
			Name:        f.Username(),
			DisplayName: f.FirstName(),
			Roles:       roles[0] + ", " + roles[1],
			Tier:        tier.Resolve(roles),
		})
	}
	return users
}

func seedMaps(ctx context.Context, store club.ClubStore) error {
	var pool mapPool
	if err := yaml.Unmarshal(mapPoolYAML, &pool); err != nil {
		return fmt.Errorf("failed to parse map pool: %w", err)
	}
	for _, name := range pool.Maps {
		if _, err := store.AddMap(ctx, name); err != nil && !errors.Is(err, club.ErrMapExists) {
			return fmt.Errorf("failed to add map %s: %w", name, err)
		}
	}
	log.Info("Ensured map pool exists.", "maps", len(pool.Maps))
	return nil
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()
	ctx := context.Background()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	seed, _ := strconv.ParseUint(cfg["SEED"], 10, 64)
	f := gofakeit.New(seed)

	store := club.New(db)
	players := fakePlayers(f)
	if err := store.UpsertUsers(ctx, players); err != nil {
		log.Fatalf("Failed to insert fake players: %s", err)
	}
	log.Info("Ensured fake players exist.", "count", len(players))

	if err := seedMaps(ctx, store); err != nil {
		log.Fatalf("%s", err)
	}

	scrims := scrim.NewService(scrim.NewStore(db), nil)
	ids := make([]int64, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}

	log.Info("Preparing to record fake matches...", "total", numMatches)
	startTime := time.Now()
	for i := range numMatches {
		f.ShuffleAnySlice(ids)
		req := scrim.RecordRequest{
			TeamA:  append([]int64(nil), ids[:teamSize]...),
			TeamB:  append([]int64(nil), ids[teamSize:2*teamSize]...),
			Winner: scrim.TeamA,
		}
		if f.Bool() {
			req.Winner = scrim.TeamB
		}
		if m, err := store.RandomMap(ctx); err == nil {
			req.MapName = m.Name
		}
		if _, err := scrims.RecordMatch(ctx, req); err != nil {
			log.Fatalf("Failed to record match %d: %s", i+1, err)
		}
		if (i+1)%50 == 0 {
			log.Info("Recorded batch", "completed", i+1, "total", numMatches)
		}
	}

	log.Info("Successfully recorded all fake matches.", "duration", time.Since(startTime))
}
