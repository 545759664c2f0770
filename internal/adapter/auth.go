// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"crypto/rsa"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-req-sync/internal/utils"
)

// tokenSource yields the credential attached to every provider call.
type tokenSource interface {
	Token(ctx context.Context) (string, error)
}

type staticToken string

func (s staticToken) Token(context.Context) (string, error) {
	return string(s), nil
}

// appTokenSource authenticates as a GitHub App installation. The app JWT is
// exchanged for an installation token which is cached until shortly before
// it expires. client must not carry the authorize middleware.
type appTokenSource struct {
	client         *utils.HTTPClient
	appID          string
	installationID string
	key            *rsa.PrivateKey
	now            func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// installationTokenRefreshMargin renews the token this long before expiry.
const installationTokenRefreshMargin = time.Minute

type installationTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newAppTokenSource(client *utils.HTTPClient, appID, installationID string, key *rsa.PrivateKey) *appTokenSource {
	return &appTokenSource{
		client:         client,
		appID:          appID,
		installationID: installationID,
		key:            key,
		now:            time.Now,
	}
}

func (a *appTokenSource) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	if a.token != "" && now.Add(installationTokenRefreshMargin).Before(a.expires) {
		return a.token, nil
	}

	appJWT, err := utils.GenerateAppJWT(a.appID, a.key, now)
	if err != nil {
		return "", err
	}

	var result installationTokenResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+appJWT).
		SetPathParam("installation", a.installationID).
		SetResult(&result).
		Post("/app/installations/{installation}/access_tokens")
	if err != nil {
		return "", requestError("installation token request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("installation token: %w", err)
	}
	if result.Token == "" {
		return "", fmt.Errorf("installation token: %w", ErrInvalidResponse)
	}

	a.token = result.Token
	a.expires = result.ExpiresAt
	return a.token, nil
}

// authorize installs a request middleware attaching the credential produced
// by src under header, using scheme as value prefix ("Bearer " or "").
func authorize(client *utils.HTTPClient, src tokenSource, header, scheme string) {
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(header) != "" {
			return nil
		}
		token, err := src.Token(req.Context())
		if err != nil {
			return err
		}
		if token != "" {
			req.SetHeader(header, scheme+token)
		}
		return nil
	})
}
