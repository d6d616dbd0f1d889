package syncjobs

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sethvargo/go-retry"

	"github.com/karimelbaz/photodesk-backend/pkg/config"
	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
)

// Payload is the wire shape the external payroll API expects. Field
// names follow its contract, casing included.
type Payload struct {
	EmployeeName    string `json:"employeeName"`
	PayAmount       string `json:"pay_amount"`
	OrderPrefixCode string `json:"orderprefixcode"`
	Status          string `json:"status"`
	ShiftName       string `json:"shift_name"`
	OrderPhone      string `json:"orderphone"`
	NumberOfPhotos  int    `json:"number_of_photos"`
}

// PayloadFromJob maps a queued row onto the external contract.
func PayloadFromJob(job *models.SyncJob) Payload {
	return Payload{
		EmployeeName:    job.EmployeeName,
		PayAmount:       job.PayAmount.StringFixed(2),
		OrderPrefixCode: job.OrderPrefixCode,
		Status:          string(job.Status),
		ShiftName:       job.ShiftName,
		OrderPhone:      job.OrderPhone,
		NumberOfPhotos:  job.NumberOfPhotos,
	}
}

// Client pushes sync jobs to the external API.
type Client struct {
	http        *http.Client
	baseURL     string
	bearerToken string
	maxAttempts int
	backoff     retry.Backoff
}

// NewClient builds the external API client. The remote endpoint sits
// behind a self-signed certificate, hence the TLS verification toggle.
func NewClient(cfg config.SyncConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("sync base url required")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.SkipTLSVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		bearerToken: cfg.BearerToken,
		maxAttempts: maxAttempts,
		backoff:     retry.NewConstant(cfg.RetryBackoff),
	}, nil
}

// Push delivers one job payload, retrying transport and 5xx failures
// with constant backoff up to the configured attempt count.
func (c *Client) Push(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sync payload: %w", err)
	}

	backoff := retry.WithMaxRetries(uint64(c.maxAttempts-1), c.backoff)
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sync-jobs", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.bearerToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.bearerToken)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer func() {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("sync endpoint returned %d", resp.StatusCode))
		default:
			return fmt.Errorf("sync endpoint returned %d", resp.StatusCode)
		}
	})
}
