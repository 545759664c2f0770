package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		// GitHub reports primary rate limits as 403 with a zero remaining quota.
		if resp.Header().Get("X-RateLimit-Remaining") == "0" {
			return fmt.Errorf("%w: %s", ErrRateLimited, body)
		}
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrUnprocessable, body)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, body)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrBadGateway, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, resp.StatusCode(), body)
	}
}

// asVersionConflict rewrites err to [ErrVersionConflict] when match reports
// that the host rejected a write because the supplied version is stale.
func asVersionConflict(err error, match func(error) bool) error {
	if err == nil || !match(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrVersionConflict, err)
}

// isGitHubStaleWrite matches the contents API responses for a stale or
// missing "sha": 409 for a mismatch and 422 when a file already exists.
func isGitHubStaleWrite(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrUnprocessable)
}

// isGitLabStaleWrite matches the files API 400 responses for a
// last_commit_id mismatch or a create over an existing file.
func isGitLabStaleWrite(err error) bool {
	if !errors.Is(err, ErrBadRequest) {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "has changed since") ||
		strings.Contains(msg, "already exists")
}

func requestError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransportFailure, err)
}
