package mirror

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"edintake/internal/config"
	"edintake/internal/entity"

	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	tokenURL         = "https://oauth2.googleapis.com/token"
	spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

	// First sheet, first column; the Sheets API appends below existing rows.
	appendRange = "A1"
)

// SheetsSink appends application rows to a Google Sheets document through a
// service-account credential assembled from environment fields.
type SheetsSink struct {
	service *sheets.Service
	sheetID string
}

// NewSheetsSink builds the sink from config. Returns (nil, nil) when the
// credential or sheet id is absent so the caller can run with mirroring
// disabled.
func NewSheetsSink(ctx context.Context, cfg config.Config) (*SheetsSink, error) {
	sheetID := strings.TrimSpace(cfg.SheetID)
	clientEmail := strings.TrimSpace(cfg.SheetsClientEmail)
	privateKey := strings.TrimSpace(cfg.SheetsPrivateKey)

	if sheetID == "" || clientEmail == "" || privateKey == "" {
		return nil, nil
	}

	conf := &jwt.Config{
		Email: clientEmail,
		// Env values carry literal \n sequences inside the PEM block.
		PrivateKey:   []byte(strings.ReplaceAll(privateKey, `\n`, "\n")),
		PrivateKeyID: strings.TrimSpace(cfg.SheetsPrivateKeyID),
		Scopes:       []string{spreadsheetScope},
		TokenURL:     tokenURL,
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsSink{service: service, sheetID: sheetID}, nil
}

// Forward appends one flattened row to the configured spreadsheet.
func (s *SheetsSink) Forward(ctx context.Context, application *entity.DbApplication) error {
	if s == nil || s.service == nil {
		return errors.New("sheets sink not initialised")
	}
	if application == nil {
		return errors.New("application is nil")
	}

	values := &sheets.ValueRange{
		Values: [][]interface{}{RowValues(application)},
	}

	_, err := s.service.Spreadsheets.Values.
		Append(s.sheetID, appendRange, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

var _ Sink = (*SheetsSink)(nil)
