// Package pocketbase implements the store interfaces on top of the
// PocketBase records API, so a family garden can sync between devices
// through a shared PocketBase instance.
package pocketbase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const listPageSize = 200

type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

func NewClient(baseURL, token string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	if token != "" {
		client.SetHeader("Authorization", token)
	}

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// do runs an operation with backoff, giving up immediately on errors that a
// retry cannot fix, such as validation failures and version conflicts.
func (client *Client) do(ctx context.Context, operation func() error) error {
	return retry.Do(
		func() error {
			if err := operation(); err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// recordTime is the date representation of the PocketBase API. Responses use
// "2006-01-02 15:04:05.000Z" while writes also accept RFC3339, so parsing
// falls back through both.
type recordTime struct {
	time.Time
}

const recordTimeFormat = "2006-01-02 15:04:05.000Z"

func (t recordTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(recordTimeFormat))), nil
}

func (t *recordTime) UnmarshalJSON(data []byte) error {
	value, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("strconv.Unquote(%s) > %w", data, err)
	}
	if value == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(recordTimeFormat, value)
	if err != nil {
		// Fall back to RFC3339
		parsed, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return fmt.Errorf("time.Parse(%s) > %w", value, err)
		}
	}
	t.Time = parsed
	return nil
}

func newRecordTime(t time.Time) recordTime {
	return recordTime{Time: t}
}

// newRecordTimePtr maps a nullable store time onto the wire representation,
// where nil serializes to the empty string.
func newRecordTimePtr(t *time.Time) recordTime {
	if t == nil {
		return recordTime{}
	}
	return recordTime{Time: *t}
}

// timePtr maps the wire representation back, empty becoming nil.
func (t recordTime) timePtr() *time.Time {
	if t.IsZero() {
		return nil
	}
	parsed := t.Time
	return &parsed
}

// quoteFilterValue escapes a value for a PocketBase filter expression.
func quoteFilterValue(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `\'`) + "'"
}

func filterTime(t time.Time) string {
	return quoteFilterValue(t.UTC().Format(recordTimeFormat))
}

type listResponse[T any] struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
	Items      []T `json:"items"`
}

// listRecords pages through all records of a collection matching the filter.
func listRecords[T any](ctx context.Context, client *Client, collection, filter, sort string) ([]T, error) {
	var items []T
	for page := 1; ; page++ {
		request := client.httpClient.R().
			SetContext(ctx).
			SetQueryParam("page", strconv.Itoa(page)).
			SetQueryParam("perPage", strconv.Itoa(listPageSize)).
			SetResult(&listResponse[T]{})
		if filter != "" {
			request.SetQueryParam("filter", filter)
		}
		if sort != "" {
			request.SetQueryParam("sort", sort)
		}

		response, err := request.Get("/api/collections/" + collection + "/records")
		if err != nil {
			return nil, fmt.Errorf("httpClient.Get > %w", err)
		}
		if response.IsError() {
			return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}

		body := response.Result().(*listResponse[T])
		items = append(items, body.Items...)
		if len(body.Items) == 0 || page >= body.TotalPages {
			return items, nil
		}
	}
}

// firstRecord returns the first record matching the filter, or nil when the
// collection has none.
func firstRecord[T any](ctx context.Context, client *Client, collection, filter string) (*T, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParam("page", "1").
		SetQueryParam("perPage", "1").
		SetQueryParam("filter", filter).
		SetResult(&listResponse[T]{}).
		Get("/api/collections/" + collection + "/records")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	body := response.Result().(*listResponse[T])
	if len(body.Items) == 0 {
		return nil, nil
	}
	return &body.Items[0], nil
}

// getRecord fetches a record by its ID, or nil when it does not exist.
func getRecord[T any](ctx context.Context, client *Client, collection, id string) (*T, error) {
	var result T
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/collections/" + collection + "/records/" + id)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	return &result, nil
}

// createRecord inserts a record and returns it with the server assigned ID.
func createRecord[T any](ctx context.Context, client *Client, collection string, record T) (*T, error) {
	var result T
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(record).
		SetResult(&result).
		Post("/api/collections/" + collection + "/records")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	return &result, nil
}

// patchRecord overwrites the fields of an existing record.
func patchRecord[T any](ctx context.Context, client *Client, collection, id string, record T) (*T, error) {
	var result T
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(record).
		SetResult(&result).
		Patch("/api/collections/" + collection + "/records/" + id)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Patch > %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}
	return &result, nil
}
