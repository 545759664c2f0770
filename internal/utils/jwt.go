// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// appJWTLifetime is the validity window of a GitHub App JWT. GitHub rejects
// tokens valid for more than ten minutes.
const appJWTLifetime = 9 * time.Minute

// appJWTClockSkew back-dates "iat" to tolerate clock drift between the
// client and the host.
const appJWTClockSkew = 60 * time.Second

// ParseRSAPrivateKey decodes a PEM-encoded RSA private key as issued for a
// GitHub App.
func ParseRSAPrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("error parsing app private key: %w", err)
	}
	return key, nil
}

// GenerateAppJWT creates an RS256-signed JWT that authenticates a GitHub App.
//
// The token includes the following standard claims:
//   - Issuer    (iss): the App id
//   - IssuedAt  (iat): now minus a one-minute skew allowance
//   - ExpiresAt (exp): now plus nine minutes
//
// The resulting token is exchanged for a short-lived installation token.
//
// Example usage:
//
//	signed, err := utils.GenerateAppJWT("123456", key, time.Now())
func GenerateAppJWT(appID string, key *rsa.PrivateKey, now time.Time) (string, error) {
	if appID == "" || key == nil {
		return "", errors.New("invalid params for generating app JWT")
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    appID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-appJWTClockSkew)),
		ExpiresAt: jwt.NewNumericDate(now.Add(appJWTLifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing app JWT: %w", err)
	}

	return signed, nil
}
