// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package projection

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-req-sync/models"
)

// Sanitizer blanks sensitive values before a record is written. It is applied
// to collection variables and to request headers, query parameters and auth
// parameters.
type Sanitizer interface {
	SanitizeValues(values []models.KeyValue) []models.KeyValue
}

// DefaultSensitivePatterns match key names that usually carry credentials.
var DefaultSensitivePatterns = []string{
	`token`,
	`passw(or)?d`,
	`secret`,
	`api[-_]?key`,
	`authorization`,
	`cookie`,
	`credential`,
	`private[-_]?key`,
	`session`,
	`bearer`,
}

var placeholderRe = regexp.MustCompile(`\{\{\s*[^{}]+\s*\}\}`)

// KeySanitizer blanks the value of every key matching a sensitive pattern,
// unless the value references a {{variable}} placeholder, which is kept
// verbatim.
type KeySanitizer struct {
	patterns []*regexp.Regexp
}

// NewKeySanitizer compiles the default patterns plus extra ones. Matching is
// case-insensitive.
func NewKeySanitizer(extra ...string) (*KeySanitizer, error) {
	all := make([]string, 0, len(DefaultSensitivePatterns)+len(extra))
	all = append(all, DefaultSensitivePatterns...)
	all = append(all, extra...)

	s := &KeySanitizer{patterns: make([]*regexp.Regexp, 0, len(all))}
	for _, p := range all {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("invalid sensitive key pattern %q: %w", p, err)
		}
		s.patterns = append(s.patterns, re)
	}
	return s, nil
}

// IsSensitive reports whether key looks like it names a credential.
func (s *KeySanitizer) IsSensitive(key string) bool {
	for _, re := range s.patterns {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

// SanitizeValues returns a copy of values with sensitive entries blanked.
func (s *KeySanitizer) SanitizeValues(values []models.KeyValue) []models.KeyValue {
	if values == nil {
		return nil
	}
	out := make([]models.KeyValue, len(values))
	for i, kv := range values {
		out[i] = kv
		if kv.Value == "" || placeholderRe.MatchString(kv.Value) {
			continue
		}
		if s.IsSensitive(kv.Key) {
			out[i].Value = ""
		}
	}
	return out
}

func sanitizeRequest(s Sanitizer, rec requestRecord) requestRecord {
	if s == nil {
		return rec
	}
	rec.Headers = s.SanitizeValues(rec.Headers)
	rec.QueryParams = s.SanitizeValues(rec.QueryParams)
	if rec.Auth != nil {
		auth := *rec.Auth
		auth.Params = s.SanitizeValues(auth.Params)
		rec.Auth = &auth
	}
	return rec
}

func sanitizeCollection(s Sanitizer, rec collectionRecord) collectionRecord {
	if s == nil {
		return rec
	}
	rec.Variables = s.SanitizeValues(rec.Variables)
	return rec
}
