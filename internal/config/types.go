package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port       string        `env:"PORT" envDefault:"8080"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	ProjectID  string        `env:"GCP_PROJECT"`

	Database DatabaseConfig
	Discord  DiscordConfig `envPrefix:"DISCORD_"`
	Slack    SlackConfig   `envPrefix:"SLACK_"`
	Google   GoogleConfig  `envPrefix:"GOOGLE_"`
	Roster   RosterConfig  `envPrefix:"ROSTER_"`
}

type DatabaseConfig struct {
	Driver      string      `env:"DB_DRIVER" envDefault:"sqlite"`
	Name        string      `env:"DB_NAME" envDefault:"scrims.db"`
	PostgresDSN string      `env:"DATABASE_URL"`
	Turso       TursoConfig `envPrefix:"TURSO_"`
}

type TursoConfig struct {
	PrimaryURL string `env:"PRIMARY_URL"`
	AuthToken  string `env:"AUTH_TOKEN"`
}

type DiscordConfig struct {
	Token             string `env:"TOKEN,required,notEmpty"`
	GuildID           string `env:"GUILD_ID,required,notEmpty"`
	APIBase           string `env:"API_BASE" envDefault:"https://discord.com/api/v10"`
	AnnounceChannelID string `env:"ANNOUNCE_CHANNEL_ID"`
}

type SlackConfig struct {
	Token         string `env:"BOT_TOKEN"`
	ChannelID     string `env:"CHANNEL_ID"`
	SigningSecret string `env:"SIGNING_SECRET"`
}

type GoogleConfig struct {
	CredentialsFile string `env:"CREDENTIALS_FILE"`
	SpreadsheetID   string `env:"SPREADSHEET_ID"`
}

type RosterConfig struct {
	ExcludeName string `env:"EXCLUDE_NAME" envDefault:"Scrim Bot"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SlackEnabled reports whether Slack announcements can be posted.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}

// DiscordAnnounceEnabled reports whether a Discord announce channel is configured.
func (c Config) DiscordAnnounceEnabled() bool {
	return c.Discord.AnnounceChannelID != ""
}

// SheetsEnabled reports whether the Google Sheets export is configured.
func (c Config) SheetsEnabled() bool {
	return c.Google.CredentialsFile != "" && c.Google.SpreadsheetID != ""
}
