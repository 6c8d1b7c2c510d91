package export

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-manager/internal/club"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Publisher pushes the leaderboard to a shared spreadsheet and returns its URL.
type Publisher interface {
	Publish(ctx context.Context, entries []club.LeaderboardEntry) (string, error)
}

type SheetsPublisher struct {
	srv           *sheets.Service
	spreadsheetID string
}

func NewSheetsPublisher(ctx context.Context, credentialsFile, spreadsheetID string) (*SheetsPublisher, error) {
	srv, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Sheets client: %w", err)
	}
	return &SheetsPublisher{srv: srv, spreadsheetID: spreadsheetID}, nil
}

var _ Publisher = (*SheetsPublisher)(nil)

func (p *SheetsPublisher) Publish(ctx context.Context, entries []club.LeaderboardEntry) (string, error) {
	rng := SheetName + "!A1:Z1000"
	if _, err := p.srv.Spreadsheets.Values.Clear(p.spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to clear sheet: %w", err)
	}

	vr := &sheets.ValueRange{Values: Rows(entries)}
	if _, err := p.srv.Spreadsheets.Values.Update(p.spreadsheetID, SheetName+"!A1", vr).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to update sheet: %w", err)
	}

	log.Info("Published leaderboard to Google Sheets", "rows", len(entries))
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", p.spreadsheetID), nil
}
