// Package tracker provides the HTTP client for the external work-tracking
// card system. It issues one card per call and leaves deduplication to the
// caller.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/internal/leads/ports"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/config"
	"leadtrack_backend/platform/logger"
)

const sourceTag = "leadtrack-backend"

// Client is the HTTP client for the card tracking API.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	defaultListID string
	log           *logger.Logger
}

// New creates a new tracking API client from config.
func New(cfg config.TrackerConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: cfg.GetTrackerTimeout()},
		baseURL:       cfg.GetTrackerBaseURL(),
		apiKey:        cfg.GetTrackerAPIKey(),
		defaultListID: cfg.GetTrackerDefaultListID(),
		log:           log,
	}
}

// createCardRequest is the outbound payload for card creation.
type createCardRequest struct {
	Source      string `json:"source"`
	RequestedAt string `json:"requestedAt"`
	ActorID     string `json:"actorId"`
	LeadCode    string `json:"leadCode"`
	JobID       string `json:"jobId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ListID      string `json:"listId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// CreateCard renders the card description and issues one card in the external
// tracker. Any transport failure, non-2xx response, or body without a card id
// is reported as an external service error.
func (c *Client) CreateCard(ctx context.Context, cc ports.CardContext) (domain.CardReference, error) {
	const op = "tracker.CreateCard"

	payload := createCardRequest{
		Source:      sourceTag,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
		ActorID:     cc.ActorLabel,
		LeadCode:    cc.LeadCode,
		JobID:       cc.JobID.String(),
		Title:       cardTitle(cc),
		Description: renderDescription(cc),
		ListID:      c.defaultListID,
		Name:        cc.CustomerName,
		Email:       cc.CustomerEmail,
		Phone:       cc.CustomerPhone,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.CardReference{}, apperr.Wrap(apperr.KindInternal, "failed to encode card request", err).WithOp(op)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cards", bytes.NewReader(body))
	if err != nil {
		return domain.CardReference{}, apperr.Wrap(apperr.KindInternal, "failed to create card request", err).WithOp(op)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("tracker request failed", "error", err, "leadCode", cc.LeadCode)
		return domain.CardReference{}, apperr.Wrap(apperr.KindExternal, "card tracking system unreachable", err).WithOp(op)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.CardReference{}, apperr.Wrap(apperr.KindExternal, "failed to read tracker response", err).WithOp(op)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("tracker returned non-success status",
			"status", resp.StatusCode,
			"leadCode", cc.LeadCode,
		)
		return domain.CardReference{}, apperr.Wrap(apperr.KindExternal,
			"card tracking system rejected the request",
			fmt.Errorf("status %d", resp.StatusCode)).WithOp(op)
	}

	card, ok := parseCardResponse(raw)
	if !ok {
		c.log.Error("tracker response missing card id", "leadCode", cc.LeadCode)
		return domain.CardReference{}, apperr.Wrap(apperr.KindExternal,
			"card tracking system returned an unusable response",
			fmt.Errorf("no card id in response body")).WithOp(op)
	}
	if card.ListID == "" {
		card.ListID = c.defaultListID
	}

	c.log.Info("tracking card created",
		"cardId", card.CardID,
		"leadCode", cc.LeadCode,
		"jobId", cc.JobID.String(),
	)
	return card, nil
}

// cardResponse covers the field-name variants known tracker deployments use.
type cardResponse struct {
	CardID    string `json:"cardId"`
	CardIDAlt string `json:"card_id"`
	ID        string `json:"id"`
	CardURL   string `json:"cardUrl"`
	CardURLs  string `json:"card_url"`
	URL       string `json:"url"`
	ShortURL  string `json:"shortUrl"`
	ListID    string `json:"listId"`
}

// parseCardResponse normalizes the tracker response into a CardReference.
// The card id and url are each accepted under several field names, tried in
// order. A body without any card id yields ok=false.
func parseCardResponse(raw []byte) (domain.CardReference, bool) {
	var body cardResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return domain.CardReference{}, false
	}

	var card domain.CardReference
	for _, id := range []string{body.CardID, body.CardIDAlt, body.ID} {
		if id != "" {
			card.CardID = id
			break
		}
	}
	if card.CardID == "" {
		return domain.CardReference{}, false
	}
	for _, u := range []string{body.CardURL, body.CardURLs, body.URL, body.ShortURL} {
		if u != "" {
			card.CardURL = u
			break
		}
	}
	card.ListID = body.ListID
	return card, true
}

// Compile-time check that Client implements the issuer port.
var _ ports.CardIssuer = (*Client)(nil)
