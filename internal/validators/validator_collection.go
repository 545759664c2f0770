package validators

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/MKhiriev/go-req-sync/internal/projection"
	"github.com/MKhiriev/go-req-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the client-chosen id of the entity.
	FieldID = "id"

	// FieldCollectionID targets the owning collection reference.
	FieldCollectionID = "collection_id"

	// FieldName targets the display name.
	FieldName = "name"

	// FieldOrder targets the sibling position.
	FieldOrder = "order"

	// FieldMethod targets the HTTP method of a request.
	FieldMethod = "method"

	// FieldURL targets the request url.
	FieldURL = "url"

	// FieldKeyValues targets variables, headers and query parameters.
	FieldKeyValues = "key_values"

	// FieldTree targets the whole folder/request tree of a collection.
	FieldTree = "tree"
)

var allowedMethods = []string{
	"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS", "TRACE", "CONNECT",
}

// CollectionValidator implements Validator for collections, folders,
// requests and environments. Both values and pointers are accepted.
type CollectionValidator struct {
}

func NewCollectionValidator() Validator {
	return &CollectionValidator{}
}

func (v *CollectionValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Collection:
		return v.validateCollection(ctx, value, fields...)
	case *models.Collection:
		return v.validateCollection(ctx, *value, fields...)

	case models.Folder:
		return v.validateFolder(ctx, value, fields...)
	case *models.Folder:
		return v.validateFolder(ctx, *value, fields...)

	case models.Request:
		return v.validateRequest(ctx, value, fields...)
	case *models.Request:
		return v.validateRequest(ctx, *value, fields...)

	case models.Environment:
		return v.validateEnvironment(ctx, value, fields...)
	case *models.Environment:
		return v.validateEnvironment(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *CollectionValidator) validateCollection(ctx context.Context, c models.Collection, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldKeyValues, FieldTree}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if !isValidID(c.ID) {
				return ErrInvalidID
			}
		case FieldName:
			if strings.TrimSpace(c.Name) == "" {
				return ErrEmptyName
			}
		case FieldKeyValues:
			if err := validateKeyValues(c.Variables); err != nil {
				return fmt.Errorf("variables: %w", err)
			}
		case FieldTree:
			if err := v.validateTree(ctx, c); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateTree walks the nested tree checking every node, unique ids,
// parent references and the projection depth limit.
func (v *CollectionValidator) validateTree(ctx context.Context, c models.Collection) error {
	seen := map[string]struct{}{c.ID: {}}

	var walk func(folders []models.Folder, requests []models.Request, parentID string, depth int) error
	walk = func(folders []models.Folder, requests []models.Request, parentID string, depth int) error {
		for _, r := range requests {
			if err := v.validateRequest(ctx, r); err != nil {
				return fmt.Errorf("request %s: %w", r.ID, err)
			}
			if r.CollectionID != c.ID || r.FolderID != parentID {
				return fmt.Errorf("request %s: %w", r.ID, ErrParentMismatch)
			}
			if _, dup := seen[r.ID]; dup {
				return fmt.Errorf("request %s: %w", r.ID, ErrDuplicateID)
			}
			seen[r.ID] = struct{}{}
		}

		for _, f := range folders {
			if depth+1 > projection.MaxDepth {
				return fmt.Errorf("folder %s: %w", f.ID, ErrTreeTooDeep)
			}
			if err := v.validateFolder(ctx, f); err != nil {
				return fmt.Errorf("folder %s: %w", f.ID, err)
			}
			if f.CollectionID != c.ID || f.ParentID != parentID {
				return fmt.Errorf("folder %s: %w", f.ID, ErrParentMismatch)
			}
			if _, dup := seen[f.ID]; dup {
				return fmt.Errorf("folder %s: %w", f.ID, ErrDuplicateID)
			}
			seen[f.ID] = struct{}{}

			if err := walk(f.Folders, f.Requests, f.ID, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	return walk(c.Folders, c.Requests, "", 0)
}

func (v *CollectionValidator) validateFolder(ctx context.Context, f models.Folder, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldCollectionID, FieldName, FieldOrder}
	}

	for _, field := range fields {
		switch field {
		case FieldID:
			if !isValidID(f.ID) {
				return ErrInvalidID
			}
		case FieldCollectionID:
			if !isValidID(f.CollectionID) {
				return ErrInvalidCollectionID
			}
		case FieldName:
			if strings.TrimSpace(f.Name) == "" {
				return ErrEmptyName
			}
		case FieldOrder:
			if f.Order < 0 {
				return ErrInvalidOrder
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CollectionValidator) validateRequest(ctx context.Context, r models.Request, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldCollectionID, FieldName, FieldOrder, FieldMethod, FieldURL, FieldKeyValues}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if !isValidID(r.ID) {
				return ErrInvalidID
			}
		case FieldCollectionID:
			if !isValidID(r.CollectionID) {
				return ErrInvalidCollectionID
			}
		case FieldName:
			if strings.TrimSpace(r.Name) == "" {
				return ErrEmptyName
			}
		case FieldOrder:
			if r.Order < 0 {
				return ErrInvalidOrder
			}
		case FieldMethod:
			if !isAllowedMethod(r.Method) {
				return ErrInvalidMethod
			}
		case FieldURL:
			if strings.TrimSpace(r.URL) == "" {
				return ErrEmptyURL
			}
		case FieldKeyValues:
			if err := validateKeyValues(r.Headers); err != nil {
				return fmt.Errorf("headers: %w", err)
			}
			if err := validateKeyValues(r.QueryParams); err != nil {
				return fmt.Errorf("query params: %w", err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CollectionValidator) validateEnvironment(ctx context.Context, e models.Environment, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldKeyValues}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if !isValidID(e.ID) {
				return ErrInvalidID
			}
		case FieldName:
			if strings.TrimSpace(e.Name) == "" {
				return ErrEmptyName
			}
		case FieldKeyValues:
			if err := validateKeyValues(e.Variables); err != nil {
				return fmt.Errorf("variables: %w", err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// isValidID accepts ids that are usable as a single path segment and do
// not collide with the reserved projection file names.
func isValidID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	switch id + projection.FileExt {
	case projection.MetadataFile, projection.FolderFile, projection.OrderFile:
		return false
	}
	return !strings.ContainsAny(id, `/\`) && path.Clean(id) == id
}

func isAllowedMethod(method string) bool {
	for _, m := range allowedMethods {
		if method == m {
			return true
		}
	}
	return false
}

func validateKeyValues(values []models.KeyValue) error {
	for i, kv := range values {
		if strings.TrimSpace(kv.Key) == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyKey)
		}
	}
	return nil
}
