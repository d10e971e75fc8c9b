// internal/platform/rest/client.go
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"fostercare-intake/internal/common/config"
	apierrors "fostercare-intake/internal/common/errors"
	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/common/metrics"
	"fostercare-intake/internal/models"
	"fostercare-intake/internal/platform/cache"
)

// Client talks to the agency data service over its JSON API. It implements
// platform.RecordService. The cache store is optional; when present,
// overview and candidate reads go through it and mutations invalidate it.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	store      *cache.Store
	log        logger.Logger
}

func NewClient(cfg config.DataServiceConfig, store *cache.Store, log logger.Logger) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		apiToken: cfg.APIToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		store: store,
		log:   log.WithFields(map[string]interface{}{"component": "rest-client"}),
	}
}

// FetchOverview pulls the household overview projection, consulting the cache
// first.
func (c *Client) FetchOverview(ctx context.Context, accountID string) (*models.OverviewProjection, error) {
	if c.store != nil {
		if cached := c.store.GetOverview(ctx, accountID); cached != nil {
			return cached, nil
		}
	}

	var projection models.OverviewProjection
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/households/%s/overview", accountID), nil, &projection); err != nil {
		return nil, apierrors.NewOverviewFetchFailedError(accountID, err)
	}

	if c.store != nil {
		if err := c.store.SetOverview(ctx, accountID, &projection); err != nil {
			c.log.Warn("failed to cache overview", map[string]interface{}{
				"accountId": accountID,
				"error":     err.Error(),
			})
		}
	}
	return &projection, nil
}

// FetchCandidates pulls the caseworker candidate list, consulting the cache
// first.
func (c *Client) FetchCandidates(ctx context.Context) ([]models.CaseworkerCandidate, error) {
	if c.store != nil {
		if cached := c.store.GetCandidates(ctx); cached != nil {
			return cached, nil
		}
	}

	var candidates []models.CaseworkerCandidate
	if err := c.doJSON(ctx, http.MethodGet, "/caseworkers/candidates", nil, &candidates); err != nil {
		return nil, apierrors.NewCandidateFetchFailedError(err)
	}

	if c.store != nil {
		if err := c.store.SetCandidates(ctx, candidates); err != nil {
			c.log.Warn("failed to cache candidates", map[string]interface{}{"error": err.Error()})
		}
	}
	return candidates, nil
}

// AssignCaseworker assigns a caseworker to the household and invalidates the
// cached projection and candidate list.
func (c *Client) AssignCaseworker(ctx context.Context, accountID, caseworkerID string) error {
	body := map[string]string{"caseworkerId": caseworkerID}
	err := c.mutate(ctx, "assign_caseworker", http.MethodPost, fmt.Sprintf("/households/%s/caseworker", accountID), body)
	if err != nil {
		return apierrors.NewAssignmentFailedError(caseworkerID, err)
	}
	c.invalidateAccount(ctx, accountID)
	if c.store != nil {
		_ = c.store.InvalidateCandidates(ctx)
	}
	return nil
}

// FetchPrimaryContact pulls the contact record bound to the current case.
func (c *Client) FetchPrimaryContact(ctx context.Context) (*models.ContactSummary, error) {
	var contact models.ContactSummary
	if err := c.doJSON(ctx, http.MethodGet, "/contacts/primary", nil, &contact); err != nil {
		return nil, apierrors.NewContactFetchFailedError(err)
	}
	return &contact, nil
}

// FetchFamilyMembers pulls the full member list for the account. The list is
// replaced wholesale on every delivery; no field-level merging happens here.
func (c *Client) FetchFamilyMembers(ctx context.Context, accountID string) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/households/%s/members", accountID), nil, &members); err != nil {
		return nil, apierrors.NewMemberListFailedError(err)
	}
	return members, nil
}

func (c *Client) CreateFamilyMember(ctx context.Context, accountID string, member models.FamilyMember) error {
	err := c.mutate(ctx, "create_member", http.MethodPost, fmt.Sprintf("/households/%s/members", accountID), member)
	if err != nil {
		return apierrors.NewMemberSaveFailedError(err)
	}
	c.invalidateAccount(ctx, accountID)
	return nil
}

func (c *Client) UpdateFamilyMember(ctx context.Context, accountID string, member models.FamilyMember) error {
	if member.ID == "" {
		return apierrors.NewMemberSaveFailedError(errors.New("member id is required for update"))
	}
	err := c.mutate(ctx, "update_member", http.MethodPut, fmt.Sprintf("/members/%s", member.ID), member)
	if err != nil {
		return apierrors.NewMemberSaveFailedError(err)
	}
	c.invalidateAccount(ctx, accountID)
	return nil
}

func (c *Client) DeleteFamilyMember(ctx context.Context, memberID string) error {
	err := c.mutate(ctx, "delete_member", http.MethodDelete, fmt.Sprintf("/members/%s", memberID), nil)
	if err != nil {
		return apierrors.NewMemberDeleteFailedError(memberID, err)
	}
	return nil
}

// SubmitApplication posts the assembled intake payload. Conversion into
// household/contact records happens server-side.
func (c *Client) SubmitApplication(ctx context.Context, payload models.ApplicationPayload) error {
	err := c.mutate(ctx, "submit_application", http.MethodPost, "/applications", payload)
	if err != nil {
		return apierrors.NewApplicationSubmitFailedError(err)
	}
	return nil
}

// ==========================
// Internals
// ==========================

func (c *Client) invalidateAccount(ctx context.Context, accountID string) {
	if c.store == nil {
		return
	}
	if err := c.store.InvalidateOverview(ctx, accountID); err != nil {
		c.log.Warn("failed to invalidate overview cache", map[string]interface{}{
			"accountId": accountID,
			"error":     err.Error(),
		})
	}
}

func (c *Client) mutate(ctx context.Context, operation, method, path string, body interface{}) error {
	start := time.Now()
	err := c.doJSON(ctx, method, path, body, nil)
	metrics.MutationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MutationsTotal.WithLabelValues(operation, "error").Inc()
		return err
	}
	metrics.MutationsTotal.WithLabelValues(operation, "ok").Inc()
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if msg := apierrors.ExtractRemoteMessage(respBody, ""); msg != "" {
			return &apierrors.RemoteError{StatusCode: resp.StatusCode, Message: msg}
		}
		return fmt.Errorf("request failed (status %d)", resp.StatusCode)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
