// Package sheets reads roster rows from a Google Sheets range through the
// Sheets v4 values.get endpoint.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"github.com/goccy/go-json"

	"github.com/dtroode/rostersync/internal/model"
)

const (
	// DefaultEndpoint is the public Sheets API root.
	DefaultEndpoint = "https://sheets.googleapis.com"
	// ReadOnlyScope is the only scope the source needs.
	ReadOnlyScope = "https://www.googleapis.com/auth/spreadsheets.readonly"

	sourceName     = "sheets"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 64 << 10
)

var _ model.RosterSource = (*Source)(nil)

// Source fetches the configured range on every call.
type Source struct {
	tokens        auth.TokenProvider
	http          *http.Client
	endpoint      string
	spreadsheetID string
	readRange     string
}

// Option customizes a Source.
type Option func(*Source)

// WithEndpoint points the source at a different API root.
func WithEndpoint(endpoint string) Option {
	return func(s *Source) {
		if endpoint != "" {
			s.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Source) {
		s.http = client
	}
}

func NewSource(tokens auth.TokenProvider, spreadsheetID, readRange string, opts ...Option) *Source {
	s := &Source{
		tokens:        tokens,
		http:          &http.Client{Timeout: defaultTimeout},
		endpoint:      DefaultEndpoint,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDefaultSource resolves Application Default Credentials, or the given
// credentials file, with the read-only Sheets scope.
func NewDefaultSource(spreadsheetID, readRange, credentialsFile string, opts ...Option) (*Source, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes:          []string{ReadOnlyScope},
		CredentialsFile: credentialsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect google credentials: %w", err)
	}
	return NewSource(creds, spreadsheetID, readRange, opts...), nil
}

type valueRange struct {
	Range          string     `json:"range"`
	MajorDimension string     `json:"majorDimension"`
	Values         [][]string `json:"values"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Fetch returns the rows of the range. Every failure is a *model.FetchError.
func (s *Source) Fetch(ctx context.Context) ([]model.Row, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, &model.FetchError{Source: sourceName, Err: fmt.Errorf("failed to get access token: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.valuesURL(), nil)
	if err != nil {
		return nil, &model.FetchError{Source: sourceName, Err: err}
	}
	tokenType := token.Type
	if tokenType == "" {
		tokenType = "Bearer"
	}
	req.Header.Set("Authorization", tokenType+" "+token.Value)
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &model.FetchError{Source: sourceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.FetchError{
			Source:     sourceName,
			StatusCode: resp.StatusCode,
			Err:        readAPIError(resp.Body),
		}
	}

	var body valueRange
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &model.FetchError{Source: sourceName, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode values: %w", err)}
	}

	rows := make([]model.Row, 0, len(body.Values))
	for _, values := range body.Values {
		rows = append(rows, model.Row(values))
	}
	return rows, nil
}

func (s *Source) valuesURL() string {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		s.endpoint, url.PathEscape(s.spreadsheetID), url.PathEscape(s.readRange))

	q := url.Values{}
	q.Set("majorDimension", "ROWS")
	q.Set("valueRenderOption", "FORMATTED_VALUE")
	return u + "?" + q.Encode()
}

func readAPIError(r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return fmt.Errorf("failed to read error body: %w", err)
	}

	var apiErr apiError
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
		if apiErr.Error.Status != "" {
			return fmt.Errorf("%s: %s", apiErr.Error.Status, apiErr.Error.Message)
		}
		return errors.New(apiErr.Error.Message)
	}
	if text := strings.TrimSpace(string(data)); text != "" {
		return errors.New(text)
	}
	return errors.New("empty error response")
}
