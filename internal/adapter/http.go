package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/adaptsync/adaptsync/internal/config"
	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/internal/utils"
	"github.com/adaptsync/adaptsync/models"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// checkToken inspects the exp claim of the stored bearer token without
// verifying the signature. An expired token fails fast with ErrTokenExpired
// (wrapping ErrUnauthorized) so the caller can re-authenticate before any
// network round trip is wasted. Tokens that are empty or not JWTs are left
// for the server to judge.
func (h *httpServerAdapter) checkToken() error {
	token := h.Token()
	if token == "" {
		return nil
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return fmt.Errorf("%w: %w", ErrUnauthorized, ErrTokenExpired)
	}

	return nil
}

// Push implements [ServerAdapter]. It POSTs the batch to /api/sync/push and
// decodes the successful/failed/conflicts partition.
func (h *httpServerAdapter) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	var out models.PushResponse

	resp, err := h.authedJSON(ctx, &out)
	if err != nil {
		return models.PushResponse{}, err
	}
	httpResp, err := resp.SetBody(req).Post("/api/sync/push")
	if err != nil {
		return models.PushResponse{}, wrapTransport("push request", err)
	}
	if err = mapHTTPError(httpResp); err != nil {
		return models.PushResponse{}, err
	}

	return out, nil
}

// Pull implements [ServerAdapter]. It POSTs the pull criteria to
// /api/sync/pull and decodes the per-entity-type payload map.
func (h *httpServerAdapter) Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	var out models.PullResponse

	resp, err := h.authedJSON(ctx, &out)
	if err != nil {
		return models.PullResponse{}, err
	}
	httpResp, err := resp.SetBody(req).Post("/api/sync/pull")
	if err != nil {
		return models.PullResponse{}, wrapTransport("pull request", err)
	}
	if err = mapHTTPError(httpResp); err != nil {
		return models.PullResponse{}, err
	}

	return out, nil
}

// SmartPull implements [ServerAdapter]. It POSTs the cursor criteria to
// /api/sync/smart-pull.
func (h *httpServerAdapter) SmartPull(ctx context.Context, req models.SmartPullRequest) (models.SmartPullResponse, error) {
	var out models.SmartPullResponse

	resp, err := h.authedJSON(ctx, &out)
	if err != nil {
		return models.SmartPullResponse{}, err
	}
	httpResp, err := resp.SetBody(req).Post("/api/sync/smart-pull")
	if err != nil {
		return models.SmartPullResponse{}, wrapTransport("smart pull request", err)
	}
	if err = mapHTTPError(httpResp); err != nil {
		return models.SmartPullResponse{}, err
	}

	return out, nil
}

// CheckUpdates implements [ServerAdapter]. It GETs /api/sync/check-updates
// with user, device and app type query parameters.
func (h *httpServerAdapter) CheckUpdates(ctx context.Context, userID int64, deviceID, appType string) (models.CheckUpdatesResponse, error) {
	var out models.CheckUpdatesResponse

	resp, err := h.authedJSON(ctx, &out)
	if err != nil {
		return models.CheckUpdatesResponse{}, err
	}
	httpResp, err := resp.
		SetQueryParam("user_id", strconv.FormatInt(userID, 10)).
		SetQueryParam("device_id", deviceID).
		SetQueryParam("app_type", appType).
		Get("/api/sync/check-updates")
	if err != nil {
		return models.CheckUpdatesResponse{}, wrapTransport("check updates request", err)
	}
	if err = mapHTTPError(httpResp); err != nil {
		return models.CheckUpdatesResponse{}, err
	}

	return out, nil
}

// ResolveConflicts implements [ServerAdapter]. It POSTs resolution decisions
// to /api/sync/resolve-conflicts.
func (h *httpServerAdapter) ResolveConflicts(ctx context.Context, req models.ResolveConflictsRequest) (models.ResolveConflictsResponse, error) {
	var out models.ResolveConflictsResponse

	resp, err := h.authedJSON(ctx, &out)
	if err != nil {
		return models.ResolveConflictsResponse{}, err
	}
	httpResp, err := resp.SetBody(req).Post("/api/sync/resolve-conflicts")
	if err != nil {
		return models.ResolveConflictsResponse{}, wrapTransport("resolve conflicts request", err)
	}
	if err = mapHTTPError(httpResp); err != nil {
		return models.ResolveConflictsResponse{}, err
	}

	return out, nil
}

// SyncState implements [ServerAdapter]. It GETs /api/sync/state for the
// device.
func (h *httpServerAdapter) SyncState(ctx context.Context, deviceID string) (models.SyncStateResponse, error) {
	var out models.SyncStateResponse

	resp, err := h.authedJSON(ctx, &out)
	if err != nil {
		return models.SyncStateResponse{}, err
	}
	httpResp, err := resp.
		SetQueryParam("device_id", deviceID).
		Get("/api/sync/state")
	if err != nil {
		return models.SyncStateResponse{}, wrapTransport("sync state request", err)
	}
	if err = mapHTTPError(httpResp); err != nil {
		return models.SyncStateResponse{}, err
	}

	return out, nil
}

// Reset implements [ServerAdapter]. It POSTs /api/sync/reset for the device
// and checks the success flag.
func (h *httpServerAdapter) Reset(ctx context.Context, deviceID string) error {
	var out models.ResetResponse

	resp, err := h.authedJSON(ctx, &out)
	if err != nil {
		return err
	}
	httpResp, err := resp.
		SetBody(map[string]string{"device_id": deviceID}).
		Post("/api/sync/reset")
	if err != nil {
		return wrapTransport("reset request", err)
	}
	if err = mapHTTPError(httpResp); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("reset rejected for device %s", deviceID)
	}

	return nil
}

// Ack implements [ServerAdapter]. It POSTs the acknowledged cursor position
// to /api/sync/ack.
func (h *httpServerAdapter) Ack(ctx context.Context, req models.AckRequest) error {
	resp, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	httpResp, err := resp.
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/sync/ack")
	if err != nil {
		return wrapTransport("ack request", err)
	}

	return mapHTTPError(httpResp)
}

// Query implements [ServerAdapter]. It POSTs the generic query to
// /api/query. A 400 whose body names an invalid projection field surfaces as
// ErrBadRequest carrying the body text, which the field-fallback strategy
// parses.
func (h *httpServerAdapter) Query(ctx context.Context, req models.QueryRequest) (models.QueryResponse, error) {
	resp, err := h.authedRequest(ctx)
	if err != nil {
		return models.QueryResponse{}, err
	}
	httpResp, err := resp.
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/query")
	if err != nil {
		return models.QueryResponse{}, wrapTransport("query request", err)
	}
	if err = mapHTTPError(httpResp); err != nil {
		return models.QueryResponse{}, err
	}

	var out models.QueryResponse
	if err = json.Unmarshal(httpResp.Body(), &out); err != nil {
		return models.QueryResponse{}, fmt.Errorf("decode query response: %w", err)
	}

	return out, nil
}

// DescribeFields implements [ServerAdapter]. It GETs /api/schema/fields for
// the entity type and decodes the field name → metadata map.
func (h *httpServerAdapter) DescribeFields(ctx context.Context, entityType string) (models.FieldSchema, error) {
	resp, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}
	httpResp, err := resp.
		SetQueryParam("entity_type", entityType).
		Get("/api/schema/fields")
	if err != nil {
		return nil, wrapTransport("describe fields request", err)
	}
	if err = mapHTTPError(httpResp); err != nil {
		return nil, err
	}

	var schema models.FieldSchema
	if err = json.Unmarshal(httpResp.Body(), &schema); err != nil {
		return nil, fmt.Errorf("decode field schema: %w", err)
	}

	return schema, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	if err := h.checkToken(); err != nil {
		return nil, err
	}

	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (h *httpServerAdapter) authedJSON(ctx context.Context, result any) (*resty.Request, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}
	return req.
		SetHeader("Content-Type", "application/json").
		SetResult(result), nil
}
