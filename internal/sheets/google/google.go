package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"finmo/internal/core"
	"finmo/internal/log"
	ports "finmo/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Config selects the spreadsheet and the service account used to write it.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger

	mu      sync.Mutex
	sheetID *int64
}

// Ensure interface conformance
var _ ports.Mirror = (*Client)(nil)

// NewClient creates a Sheets client authenticated with a service account.
func NewClient(ctx context.Context, cfg Config, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentSheets)

	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(cfg.SheetName) == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := newSheetsService(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		logger:        logger,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, cfg Config, logger *log.Logger) (*gsheet.Service, error) {
	var credentialsJSON []byte
	var err error

	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		logger.InfoContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(cfg.CredentialsJSON)
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		logger.InfoContext(ctx, "Reading credentials from file", "path", cfg.CredentialsFile)
		credentialsJSON, err = os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) rng(cells string) string {
	return fmt.Sprintf("'%s'!%s", c.sheetName, cells)
}

// EnsureHeader writes the header row when A1 is empty.
func (c *Client) EnsureHeader(ctx context.Context) error {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.rng("A1:H1")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}
	vr := &gsheet.ValueRange{Values: [][]any{header}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, c.rng("A1:H1"), vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	c.logger.InfoContext(ctx, "Header row written", "sheet", c.sheetName)
	return nil
}

func (c *Client) idValues(ctx context.Context) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.rng("A:A")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read ids from %s: %w", c.sheetName, err)
	}
	return resp.Values, nil
}

// AppendTransaction implements ports.TransactionWriter
func (c *Client) AppendTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	values, err := c.idValues(ctx)
	if err != nil {
		return "", err
	}
	if row := findRow(values, t.ID); row >= 0 {
		ref := c.rng(fmt.Sprintf("A%d:H%d", row+1, row+1))
		c.logger.DebugContext(ctx, "Transaction already mirrored", log.FieldTransactionID, t.ID, log.FieldSheetsRef, ref)
		return ref, nil
	}

	vr := &gsheet.ValueRange{Values: [][]any{transactionRow(t)}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.rng("A:H"), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to %s: %w", c.sheetName, err)
	}

	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	return ref, nil
}

// DeleteTransaction implements ports.TransactionDeleter
func (c *Client) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	values, err := c.idValues(ctx)
	if err != nil {
		return false, err
	}
	row := findRow(values, id)
	if row < 0 {
		return false, nil
	}

	sheetID, err := c.lookupSheetID(ctx)
	if err != nil {
		return false, err
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row),
					EndIndex:   int64(row + 1),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return false, fmt.Errorf("delete row %d: %w", row+1, err)
	}
	return true, nil
}

// ClearTransactions implements ports.TransactionClearer
func (c *Client) ClearTransactions(ctx context.Context) error {
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, c.rng("A2:H"), &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", c.sheetName, err)
	}
	return nil
}

// ListTransactionIDs implements ports.TransactionLister. Rows that do not
// parse are skipped and logged.
func (c *Client) ListTransactionIDs(ctx context.Context) ([]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.rng("A2:H")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.sheetName, err)
	}

	var ids []string
	for i, row := range resp.Values {
		id, _, _, err := parseRow(toStrings(row))
		if err != nil {
			c.logger.WarnContext(ctx, "Skipping unreadable row", "row", i+2, log.FieldError, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// lookupSheetID resolves the numeric sheet id needed by row deletions. Only
// successful lookups are remembered.
func (c *Client) lookupSheetID(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sheetID != nil {
		return *c.sheetID, nil
	}

	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == c.sheetName {
			id := s.Properties.SheetId
			c.sheetID = &id
			return id, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", c.sheetName)
}
