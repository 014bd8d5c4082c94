package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/utils"
	"github.com/MKhiriev/go-cred-vault/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from address and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(address string, timeout time.Duration, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
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
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/user/register. Registration does not start a session: the caller
// still has to Login.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.RegisterResponse, error) {
	var registered models.RegisterResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&registered).
		Post("/api/user/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	return registered, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/user/login. When the account has no TOTP enrolled, the bearer
// token is extracted from the Authorization response header and stored via
// SetToken. When TOTP is enrolled, the response carries MFARequired and no
// token is issued until VerifyTOTP succeeds.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.LoginResponse, error) {
	var loginResponse models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&loginResponse).
		Post("/api/user/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	if loginResponse.MFARequired {
		return loginResponse, nil
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return loginResponse, nil
}

// Logout implements [ServerAdapter]. It POSTs to POST /api/user/logout with
// the held bearer token, revoking it server-side, and clears the token from
// the adapter on success.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/user/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

// SetupTOTP implements [ServerAdapter]. It POSTs the username to
// POST /api/totp/setup and returns the provisioning QR code PNG bytes.
func (h *httpServerAdapter) SetupTOTP(ctx context.Context, username string) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"username": username}).
		Post("/api/totp/setup")
	if err != nil {
		return nil, fmt.Errorf("totp setup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// VerifyTOTP implements [ServerAdapter]. It POSTs the username and code to
// POST /api/totp/verify. On success the issued token from the response body
// is stored via SetToken.
func (h *httpServerAdapter) VerifyTOTP(ctx context.Context, username, code string) (models.TOTPVerifyResponse, error) {
	var verifyResponse models.TOTPVerifyResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"username": username, "code": code}).
		SetResult(&verifyResponse).
		Post("/api/totp/verify")
	if err != nil {
		return models.TOTPVerifyResponse{}, fmt.Errorf("totp verify request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TOTPVerifyResponse{}, err
	}

	h.SetToken(verifyResponse.JWT)
	return verifyResponse, nil
}

// CreateEntry implements [ServerAdapter]. It POSTs the entry to
// POST /api/entries and returns the stored record. Requires a valid bearer
// token.
func (h *httpServerAdapter) CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	var created models.Entry

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(entry).
		SetResult(&created).
		Post("/api/entries")
	if err != nil {
		return models.Entry{}, fmt.Errorf("create entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Entry{}, err
	}

	return created, nil
}

// GetAllEntries implements [ServerAdapter]. It GETs GET /api/entries and
// decodes the response into a slice of [models.Entry]. Requires a valid
// bearer token.
func (h *httpServerAdapter) GetAllEntries(ctx context.Context) ([]models.Entry, error) {
	resp, err := h.authedRequest(ctx).Get("/api/entries")
	if err != nil {
		return nil, fmt.Errorf("get entries request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var entries []models.Entry
	if err = json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("decode entries response: %w", err)
	}

	return entries, nil
}

// GetEntry implements [ServerAdapter]. It GETs GET /api/entries/{entryID}.
// Returns [ErrNotFound] (wrapped) when no such entry exists. Requires a valid
// bearer token.
func (h *httpServerAdapter) GetEntry(ctx context.Context, entryID int64) (models.Entry, error) {
	var entry models.Entry

	resp, err := h.authedRequest(ctx).
		SetResult(&entry).
		Get("/api/entries/" + strconv.FormatInt(entryID, 10))
	if err != nil {
		return models.Entry{}, fmt.Errorf("get entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Entry{}, err
	}

	return entry, nil
}

// UpdateEntry implements [ServerAdapter]. It PUTs the changed fields to
// PUT /api/entries/{entryID} and returns the updated record. Requires a valid
// bearer token.
func (h *httpServerAdapter) UpdateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	var updated models.Entry

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(entry).
		SetResult(&updated).
		Put("/api/entries/" + strconv.FormatInt(entry.EntryID, 10))
	if err != nil {
		return models.Entry{}, fmt.Errorf("update entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Entry{}, err
	}

	return updated, nil
}

// DeleteEntry implements [ServerAdapter]. It sends DELETE
// /api/entries/{entryID}. Returns [ErrNotFound] (wrapped) when no such entry
// exists. Requires a valid bearer token.
func (h *httpServerAdapter) DeleteEntry(ctx context.Context, entryID int64) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/entries/" + strconv.FormatInt(entryID, 10))
	if err != nil {
		return fmt.Errorf("delete entry request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
