package export

import (
	"fmt"

	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Leaderboard"

var headers = []any{"Rank", "Player", "Tier", "Wins", "Matches", "Win Rate %"}

// Rows lays the leaderboard out as a header row followed by one row per player.
func Rows(entries []club.LeaderboardEntry) [][]any {
	rows := make([][]any, 0, len(entries)+1)
	rows = append(rows, headers)
	for _, e := range entries {
		rows = append(rows, []any{
			e.Rank,
			e.Label(),
			string(e.Tier),
			e.Wins,
			e.TotalGames,
			fmt.Sprintf("%.1f", e.WinRate),
		})
	}
	return rows
}

// Excel renders the leaderboard as an xlsx workbook.
func Excel(entries []club.LeaderboardEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for r, row := range Rows(entries) {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 8)
	_ = f.SetColWidth(SheetName, "B", "B", 32)
	_ = f.SetColWidth(SheetName, "C", "F", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
