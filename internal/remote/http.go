package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aanand-mishra/enrollment-intake/internal/types"
)

// maxErrorBody caps how much of an error response is kept for diagnostics.
const maxErrorBody = 1 << 10

// HTTPWriter posts enrollments to the remote intake service as JSON.
type HTTPWriter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPWriter creates a writer for the service at baseURL.
// apiKey is sent as a bearer token when non-empty.
func NewHTTPWriter(baseURL, apiKey string, timeout time.Duration) *HTTPWriter {
	return &HTTPWriter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type writeRequest struct {
	Record     types.EnrollmentRecord `json:"record"`
	Status     string                 `json:"status"`
	CapturedAt time.Time              `json:"capturedAt"`
}

type writeResponse struct {
	ID string `json:"id"`
}

// WriteRecord sends rec to POST {baseURL}/enrollments and returns the id
// the service assigned. The service stamps its own submission time.
func (w *HTTPWriter) WriteRecord(ctx context.Context, rec types.EnrollmentRecord, meta types.Metadata) (string, error) {
	body, err := json.Marshal(writeRequest{
		Record:     rec,
		Status:     meta.Status,
		CapturedAt: meta.CapturedAt,
	})
	if err != nil {
		return "", NewError(KindInvalidArgument, "encode record", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/enrollments", bytes.NewReader(body))
	if err != nil {
		return "", NewError(KindOther, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.apiKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return "", NewError(KindUnavailable, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", NewError(kindForStatus(resp.StatusCode),
			fmt.Sprintf("service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), nil)
	}

	var out writeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", NewError(KindOther, "decode response", err)
	}
	if out.ID == "" {
		return "", NewError(KindOther, "response carried no id", nil)
	}
	return out.ID, nil
}

func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindPermissionDenied
	case code == http.StatusBadRequest, code == http.StatusConflict,
		code == http.StatusUnprocessableEntity, code == http.StatusRequestEntityTooLarge:
		return KindInvalidArgument
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests, code >= 500:
		return KindUnavailable
	default:
		return KindOther
	}
}
