package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"schoolPortal/internal/logging"
)

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// SheetsExporter appends report rows to Google Sheets on behalf of the
// account whose OAuth token is stored in tokenFile.
type SheetsExporter struct {
	oauth     *oauth2.Config
	tokenFile string
	log       *logging.Logger

	mu sync.Mutex
}

func NewSheetsExporter(config *Config, log *logging.Logger) *SheetsExporter {
	return &SheetsExporter{
		oauth: &oauth2.Config{
			ClientID:     config.GoogleClientID,
			ClientSecret: config.GoogleClientSecret,
			Scopes:       []string{sheets.SpreadsheetsScope},
			Endpoint:     google.Endpoint,
		},
		tokenFile: config.GoogleTokenFile,
		log:       log,
	}
}

// Export appends rows below the last filled row of the first sheet and
// returns how many rows were written.
func (e *SheetsExporter) Export(ctx context.Context, sheetURL string, rows [][]string) (int, error) {
	spreadsheetID, err := extractSpreadsheetID(sheetURL)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	token, err := e.token(ctx)
	if err != nil {
		return 0, err
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(e.oauth.Client(ctx, token)))
	if err != nil {
		return 0, fmt.Errorf("unable to retrieve Sheets client: %v", err)
	}

	resp, err := srv.Spreadsheets.Values.Append(spreadsheetID, "A:Z", &sheets.ValueRange{
		Values: toSheetValues(rows),
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to append to sheet: %v", err)
	}

	written := len(rows)
	if resp.Updates != nil {
		written = int(resp.Updates.UpdatedRows)
	}
	e.log.WithFields(map[string]interface{}{
		"spreadsheet_id": spreadsheetID,
		"rows":           written,
	}).Info("Report exported to Google Sheets")
	return written, nil
}

// token loads the stored token, refreshing and persisting it when it has
// expired.
func (e *SheetsExporter) token(ctx context.Context) (*oauth2.Token, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	data, err := os.ReadFile(e.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read token file: %v", err)
	}
	var stored oauth2.Token
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("unable to parse token file: %v", err)
	}

	fresh, err := e.oauth.TokenSource(ctx, &stored).Token()
	if err != nil {
		return nil, fmt.Errorf("unable to refresh token: %v", err)
	}

	if fresh.AccessToken != stored.AccessToken {
		if err := saveToken(e.tokenFile, fresh); err != nil {
			e.log.WithError(err).Warn("Could not persist refreshed token")
		}
	}
	return fresh, nil
}

func saveToken(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func extractSpreadsheetID(url string) (string, error) {
	matches := spreadsheetIDPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", fmt.Errorf("could not extract spreadsheet ID from URL")
	}
	return matches[1], nil
}

func toSheetValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	return values
}
