// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/MKhiriev/go-req-sync/internal/config"
	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/utils"
)

const (
	retryWait    = 500 * time.Millisecond
	retryMaxWait = 10 * time.Second
)

// NewRemoteHost builds the [RemoteHost] selected by cfg.Provider. The HTTP
// client gets the configured base URL, timeout, retry policy and credentials.
//
// Returns an error wrapping [ErrInvalidConfig] if the provider is unknown,
// the base URL is invalid, or the GitHub App private key cannot be loaded.
func NewRemoteHost(cfg config.Remote, log *logger.Logger) (RemoteHost, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %v", ErrInvalidConfig, err)
	}

	client := newClient(baseURL, cfg)

	switch cfg.Provider {
	case config.ProviderGitHub:
		var src tokenSource = staticToken(cfg.Token)
		if cfg.UsesApp() {
			pemBytes, err := os.ReadFile(cfg.PrivateKeyPath)
			if err != nil {
				return nil, fmt.Errorf("%w: read private key: %v", ErrInvalidConfig, err)
			}
			key, err := utils.ParseRSAPrivateKey(pemBytes)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
			src = newAppTokenSource(newClient(baseURL, cfg), cfg.AppID, cfg.InstallationID, key)
		}
		authorize(client, src, "Authorization", "Bearer ")

		return NewGitHubHost(client, GitHubConfig{
			Owner:      cfg.Owner,
			Repository: cfg.Repository,
			Branch:     cfg.Branch,
		}, log), nil

	case config.ProviderGitLab:
		authorize(client, staticToken(cfg.Token), "PRIVATE-TOKEN", "")

		return NewGitLabHost(client, GitLabConfig{
			Project: cfg.Repository,
			Branch:  cfg.Branch,
		}, log), nil

	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
}

func newClient(baseURL string, cfg config.Remote) *utils.HTTPClient {
	client := utils.NewHTTPClient().WithRetries(cfg.RetryCount, retryWait, retryMaxWait)
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("User-Agent", "go-req-sync")
	return client
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
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
