package gsheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"nikki/internal/adapters/credentials"
	"nikki/internal/application"
	"nikki/internal/domain"
	"nikki/internal/ports"
)

// Scopes requested for the service account
var Scopes = []string{sheets.SpreadsheetsScope, sheets.DriveScope}

// Sheet implements ports.Sheet on the first worksheet of a spreadsheet
type Sheet struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetID       int64
	title         string
}

// Ensure Sheet implements Sheet and Rewriter
var (
	_ ports.Sheet    = (*Sheet)(nil)
	_ ports.Rewriter = (*Sheet)(nil)
)

// Connect authenticates with a service account and opens the first worksheet
// of spreadsheetID. Credential and authorization failures are reported as
// application.ErrAuth, anything else as application.ErrConnection.
func Connect(ctx context.Context, sa *credentials.ServiceAccount, spreadsheetID string) (*Sheet, error) {
	keyJSON, err := sa.JSON()
	if err != nil {
		return nil, application.AuthError("encode credentials", err)
	}
	cfg, err := google.JWTConfigFromJSON(keyJSON, Scopes...)
	if err != nil {
		return nil, application.AuthError("load credentials", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, application.ConnectionError("create sheets client", err)
	}
	return Open(ctx, svc, spreadsheetID)
}

// Open resolves the first worksheet of spreadsheetID using an existing client
func Open(ctx context.Context, svc *sheets.Service, spreadsheetID string) (*Sheet, error) {
	ss, err := svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		if isAuthFailure(err) {
			return nil, application.AuthError("open spreadsheet", err)
		}
		return nil, application.ConnectionError("open spreadsheet", err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return nil, application.ConnectionError("open spreadsheet", fmt.Errorf("spreadsheet %s has no worksheets", spreadsheetID))
	}

	props := ss.Sheets[0].Properties
	return &Sheet{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetID:       props.SheetId,
		title:         props.Title,
	}, nil
}

// Title returns the worksheet title
func (s *Sheet) Title() string {
	return s.title
}

// Rows fetches every row as formatted text
func (s *Sheet) Rows(ctx context.Context) ([]domain.Row, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.a1()).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("read rows", err)
	}

	rows := make([]domain.Row, len(resp.Values))
	for i, vals := range resp.Values {
		row := make(domain.Row, len(vals))
		for j, v := range vals {
			row[j] = fmt.Sprint(v)
		}
		rows[i] = row
	}
	return rows, nil
}

// AppendRow appends row after the last non-empty row. Values are stored as
// entered, without spreadsheet parsing.
func (s *Sheet) AppendRow(ctx context.Context, row domain.Row) error {
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.a1(), valueRange(row)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return classify("append row", err)
}

// Clear removes every value from the worksheet
func (s *Sheet) Clear(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, s.a1(), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return classify("clear sheet", err)
}

// InsertRow inserts an empty row at position and fills it with row
func (s *Sheet) InsertRow(ctx context.Context, row domain.Row, position int) error {
	if position < 1 {
		return fmt.Errorf("invalid row position %d", position)
	}
	start := int64(position - 1)

	insert := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			InsertDimension: &sheets.InsertDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:         s.sheetID,
					Dimension:       "ROWS",
					StartIndex:      start,
					EndIndex:        start + 1,
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, insert).Context(ctx).Do(); err != nil {
		return classify("insert row", err)
	}

	target := fmt.Sprintf("%s!A%d", s.a1(), position)
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, target, valueRange(row)).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return classify("write row", err)
}

// ReplaceAll clears the worksheet and writes rows in a single batchUpdate.
// The service applies all requests of a batch or none of them.
func (s *Sheet) ReplaceAll(ctx context.Context, rows []domain.Row) error {
	data := make([]*sheets.RowData, len(rows))
	for i, r := range rows {
		cells := make([]*sheets.CellData, len(r))
		for j := range r {
			v := r[j]
			cells[j] = &sheets.CellData{UserEnteredValue: &sheets.ExtendedValue{StringValue: &v}}
		}
		data[i] = &sheets.RowData{Values: cells}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				UpdateCells: &sheets.UpdateCellsRequest{
					Range: &sheets.GridRange{
						SheetId:         s.sheetID,
						ForceSendFields: []string{"SheetId"},
					},
					Fields: "userEnteredValue",
				},
			},
			{
				UpdateCells: &sheets.UpdateCellsRequest{
					Start: &sheets.GridCoordinate{
						SheetId:         s.sheetID,
						RowIndex:        0,
						ColumnIndex:     0,
						ForceSendFields: []string{"SheetId", "RowIndex", "ColumnIndex"},
					},
					Rows:   data,
					Fields: "userEnteredValue",
				},
			},
		},
	}
	_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
	return classify("replace rows", err)
}

// a1 returns the quoted worksheet title used as an A1 range
func (s *Sheet) a1() string {
	return "'" + strings.ReplaceAll(s.title, "'", "''") + "'"
}

func valueRange(row domain.Row) *sheets.ValueRange {
	vals := make([]interface{}, len(row))
	for i, c := range row {
		vals[i] = c
	}
	return &sheets.ValueRange{Values: [][]interface{}{vals}}
}

// classify marks authorization failures as application.ErrAuth. Other errors
// are returned as is for the caller to classify.
func classify(op string, err error) error {
	if err != nil && isAuthFailure(err) {
		return application.AuthError(op, err)
	}
	return err
}

func isAuthFailure(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden
	}
	var tokenErr *oauth2.RetrieveError
	return errors.As(err, &tokenErr)
}
