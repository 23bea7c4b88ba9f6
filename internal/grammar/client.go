package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Request timeout for the rule server; checks run on short sentence pairs,
// so a slow server should fail fast rather than stall the pipeline.
const checkTimeout = 15 * time.Second

var (
	checkDialTimeout           = checkTimeout / 3
	checkTLSTimeout            = checkTimeout / 3
	checkResponseHeaderTimeout = checkTimeout / 2
)

// Cap on response bodies; a rule server answering with more than this is
// misbehaving.
const maxResponseBytes = 4 * 1024 * 1024

// DefaultLanguage is used when the caller does not pick one.
const DefaultLanguage = "en-US"

// Client talks to a LanguageTool-compatible HTTP server. The zero value is
// not usable; construct with NewClient. Safe for concurrent use.
type Client struct {
	baseURL  string
	language string
	client   *http.Client
}

// NewClient builds a checker for the server at baseURL (e.g.
// "http://localhost:8010"). An empty language selects DefaultLanguage.
func NewClient(baseURL, language string) *Client {
	if language == "" {
		language = DefaultLanguage
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		client: &http.Client{
			Timeout: checkTimeout,
			Transport: &http.Transport{
				Dial: (&net.Dialer{
					Timeout: checkDialTimeout,
				}).Dial,
				TLSHandshakeTimeout:   checkTLSTimeout,
				ResponseHeaderTimeout: checkResponseHeaderTimeout,
				// disable keep-alives to avoid connection reuse issues
				DisableKeepAlives: true,
			},
		},
	}
}

// checkResponse mirrors the wire format of /v2/check; only the fields the
// classifier needs are decoded.
type checkResponse struct {
	Matches []struct {
		Message string `json:"message"`
		Rule    struct {
			ID        string `json:"id"`
			IssueType string `json:"issueType"`
			Category  struct {
				ID string `json:"id"`
			} `json:"category"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check submits text to the rule server and returns every violation it
// reports, spelling rules included. Callers that only want grammar findings
// should filter with ExcludeSpelling.
func (c *Client) Check(ctx context.Context, text string) ([]Violation, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)

	endpoint := c.baseURL + "/v2/check"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "redline/0.1")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grammar check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("grammar server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded checkResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode grammar server response: %w", err)
	}

	violations := make([]Violation, 0, len(decoded.Matches))
	for _, m := range decoded.Matches {
		violations = append(violations, Violation{
			RuleID:     m.Rule.ID,
			CategoryID: m.Rule.Category.ID,
			IssueType:  m.Rule.IssueType,
			Message:    m.Message,
		})
	}

	slog.Debug("grammar check complete", "textLen", len(text), "violations", len(violations))
	return violations, nil
}
