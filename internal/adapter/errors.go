// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("remote host unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrVersionConflict     = errors.New("version conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrRateLimited         = errors.New("rate limited")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	ErrInvalidConfig     = errors.New("invalid remote host configuration")
	ErrInvalidResponse   = errors.New("invalid response from remote host")
	ErrEmptyRepository   = errors.New("repository has no commits on the target branch")
	ErrTransportFailure  = errors.New("remote host request failed")
	ErrUnsupportedBranch = errors.New("target branch does not exist")
)
