// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/models"
)

// collectionRepository is the SQL implementation of [CollectionRepository].
// Trees are stored as flat folder and request rows keyed by collection id
// and rebuilt on read.
type collectionRepository struct {
	*DB
	logger *logger.Logger
}

// NewCollectionRepository constructs a [CollectionRepository] backed by db.
func NewCollectionRepository(db *DB, logger *logger.Logger) CollectionRepository {
	return &collectionRepository{
		DB:     db,
		logger: logger,
	}
}

// ListCollections returns collection rows matching filter, ordered by name.
// Folders and requests are not loaded.
func (c *collectionRepository) ListCollections(ctx context.Context, filter CollectionFilter) ([]models.Collection, error) {
	log := logger.FromContext(ctx)

	query := c.builder.
		Select(collectionColumns).
		From("collections").
		OrderBy("name", "id")
	if len(filter.IDs) > 0 {
		query = query.Where(sq.Eq{"id": filter.IDs})
	}
	if filter.OnlySyncEnabled {
		query = query.Where(sq.Eq{"sync_enabled": true})
	}
	if filter.OnlyDirty {
		query = query.Where(sq.Eq{"is_dirty": true})
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		log.Err(err).Str("func", "collectionRepository.ListCollections").Msg("failed to build query")
		return nil, wrapErr(ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).Str("func", "collectionRepository.ListCollections").Msg("failed to execute query for listing collections")
		return nil, wrapErr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	collections := make([]models.Collection, 0, 16)
	for rows.Next() {
		collection, scanErr := scanCollection(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "collectionRepository.ListCollections").Msg("failed to scan collection row")
			return nil, scanErr
		}
		collections = append(collections, collection)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "collectionRepository.ListCollections").Msg("error occurred during rows iteration")
		return nil, wrapErr(ErrScanningRows, rowsErr)
	}

	return collections, nil
}

// GetCollection loads the collection row and rebuilds its tree.
func (c *collectionRepository) GetCollection(ctx context.Context, id string) (models.Collection, error) {
	log := logger.FromContext(ctx)

	collection, err := scanCollection(c.DB.QueryRowContext(ctx, c.rebind(getCollection), id))
	if err != nil {
		if errors.Is(err, ErrCollectionNotFound) {
			return models.Collection{}, err
		}
		log.Err(err).
			Str("func", "collectionRepository.GetCollection").
			Str("collection_id", id).
			Msg("failed to get collection")
		return models.Collection{}, err
	}

	folders, err := c.loadFolders(ctx, c.DB, id)
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.GetCollection").
			Str("collection_id", id).
			Msg("failed to load folders")
		return models.Collection{}, err
	}

	requests, err := c.loadRequests(ctx, id)
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.GetCollection").
			Str("collection_id", id).
			Msg("failed to load requests")
		return models.Collection{}, err
	}

	assembleTree(&collection, folders, requests)
	return collection, nil
}

// CreateCollection inserts the collection row together with any tree it
// already carries.
func (c *collectionRepository) CreateCollection(ctx context.Context, collection models.Collection) error {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	if collection.CreatedAt == nil {
		collection.CreatedAt = &now
	}
	collection.UpdatedAt = &now

	args, err := collectionArgs(collection)
	if err != nil {
		return err
	}

	err = c.inTx(ctx, func(tx *sql.Tx) error {
		if _, execErr := tx.ExecContext(ctx, c.rebind(insertCollection), args...); execErr != nil {
			if isUniqueViolation(execErr) {
				return ErrCollectionAlreadyExists
			}
			return wrapErr(ErrExecutingStatement, execErr)
		}
		return c.insertTree(ctx, tx, collection)
	})
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.CreateCollection").
			Str("collection_id", collection.ID).
			Msg("failed to create collection")
		return err
	}

	return nil
}

// UpdateCollection updates the collection metadata. The tree and the sync
// state are left untouched.
func (c *collectionRepository) UpdateCollection(ctx context.Context, collection models.Collection) error {
	log := logger.FromContext(ctx)

	variables, err := toJSON(collection.Variables)
	if err != nil {
		return err
	}
	envIDs, err := toJSON(collection.EnvironmentIDs)
	if err != nil {
		return err
	}

	res, err := c.DB.ExecContext(ctx, c.rebind(updateCollection),
		collection.Name, collection.Description, variables, envIDs, time.Now().UTC(), collection.ID)
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.UpdateCollection").
			Str("collection_id", collection.ID).
			Msg("failed to update collection")
		return wrapErr(ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrCollectionNotFound)
}

// DeleteCollection removes the collection and every folder and request
// under it.
func (c *collectionRepository) DeleteCollection(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	err := c.inTx(ctx, func(tx *sql.Tx) error {
		if err := c.deleteTree(ctx, tx, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, c.rebind(deleteCollection), id)
		if err != nil {
			return wrapErr(ErrExecutingStatement, err)
		}
		return expectAffected(res, ErrCollectionNotFound)
	})
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.DeleteCollection").
			Str("collection_id", id).
			Msg("failed to delete collection")
		return err
	}

	return nil
}

// ReplaceCollectionTree upserts the collection row including its sync state
// and swaps the whole folder/request tree in one transaction.
func (c *collectionRepository) ReplaceCollectionTree(ctx context.Context, collection models.Collection) error {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	if collection.CreatedAt == nil {
		collection.CreatedAt = &now
	}
	collection.UpdatedAt = &now

	args, err := collectionArgs(collection)
	if err != nil {
		return err
	}

	err = c.withRetry(ctx, func() error {
		return c.inTx(ctx, func(tx *sql.Tx) error {
			if _, execErr := tx.ExecContext(ctx, c.rebind(upsertCollection), args...); execErr != nil {
				return wrapErr(ErrExecutingStatement, execErr)
			}
			if delErr := c.deleteTree(ctx, tx, collection.ID); delErr != nil {
				return delErr
			}
			return c.insertTree(ctx, tx, collection)
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.ReplaceCollectionTree").
			Str("collection_id", collection.ID).
			Msg("failed to replace collection tree")
		return err
	}

	log.Debug().
		Str("func", "collectionRepository.ReplaceCollectionTree").
		Str("collection_id", collection.ID).
		Msg("collection tree replaced")
	return nil
}

// SaveFolder inserts or updates a single folder row. A folder id owned by
// another collection is reported as [ErrFolderNotFound].
func (c *collectionRepository) SaveFolder(ctx context.Context, folder models.Folder) error {
	log := logger.FromContext(ctx)

	query, err := c.folderInsert([]models.Folder{folder})
	if err != nil {
		return err
	}

	sqlQuery, args, err := query.Suffix(folderUpsertSuffix).ToSql()
	if err != nil {
		return wrapErr(ErrBuildingSQLQuery, err)
	}

	res, err := c.DB.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.SaveFolder").
			Str("collection_id", folder.CollectionID).
			Str("folder_id", folder.ID).
			Msg("failed to save folder")
		return wrapErr(ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrFolderNotFound)
}

// DeleteFolder removes the folder with all nested folders and requests.
func (c *collectionRepository) DeleteFolder(ctx context.Context, collectionID, folderID string) error {
	log := logger.FromContext(ctx)

	err := c.inTx(ctx, func(tx *sql.Tx) error {
		folders, err := c.loadFolders(ctx, tx, collectionID)
		if err != nil {
			return err
		}

		found := false
		for _, f := range folders {
			if f.ID == folderID {
				found = true
				break
			}
		}
		if !found {
			return ErrFolderNotFound
		}

		ids := subtreeIDs(folders, folderID)

		reqQuery, reqArgs, err := c.builder.Delete("requests").
			Where(sq.Eq{"collection_id": collectionID, "folder_id": ids}).
			ToSql()
		if err != nil {
			return wrapErr(ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, reqQuery, reqArgs...); err != nil {
			return wrapErr(ErrExecutingStatement, err)
		}

		folderQuery, folderArgs, err := c.builder.Delete("folders").
			Where(sq.Eq{"collection_id": collectionID, "id": ids}).
			ToSql()
		if err != nil {
			return wrapErr(ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, folderQuery, folderArgs...); err != nil {
			return wrapErr(ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.DeleteFolder").
			Str("collection_id", collectionID).
			Str("folder_id", folderID).
			Msg("failed to delete folder")
		return err
	}

	return nil
}

// SaveRequest inserts or updates a single request row.
func (c *collectionRepository) SaveRequest(ctx context.Context, request models.Request) error {
	log := logger.FromContext(ctx)

	query, err := c.requestInsert([]models.Request{request})
	if err != nil {
		return err
	}

	sqlQuery, args, err := query.Suffix(requestUpsertSuffix).ToSql()
	if err != nil {
		return wrapErr(ErrBuildingSQLQuery, err)
	}

	res, err := c.DB.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.SaveRequest").
			Str("collection_id", request.CollectionID).
			Str("request_id", request.ID).
			Msg("failed to save request")
		return wrapErr(ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrRequestNotFound)
}

func (c *collectionRepository) DeleteRequest(ctx context.Context, collectionID, requestID string) error {
	log := logger.FromContext(ctx)

	res, err := c.DB.ExecContext(ctx, c.rebind(deleteRequest), requestID, collectionID)
	if err != nil {
		log.Err(err).
			Str("func", "collectionRepository.DeleteRequest").
			Str("collection_id", collectionID).
			Str("request_id", requestID).
			Msg("failed to delete request")
		return wrapErr(ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrRequestNotFound)
}

func (c *collectionRepository) deleteTree(ctx context.Context, tx *sql.Tx, collectionID string) error {
	if _, err := tx.ExecContext(ctx, c.rebind(deleteCollectionRequests), collectionID); err != nil {
		return wrapErr(ErrExecutingStatement, err)
	}
	if _, err := tx.ExecContext(ctx, c.rebind(deleteCollectionFolders), collectionID); err != nil {
		return wrapErr(ErrExecutingStatement, err)
	}
	return nil
}

func (c *collectionRepository) insertTree(ctx context.Context, tx *sql.Tx, collection models.Collection) error {
	folders, requests := flattenTree(collection)

	for start := 0; start < len(folders); start += insertBatchSize {
		query, err := c.folderInsert(folders[start:min(start+insertBatchSize, len(folders))])
		if err != nil {
			return err
		}
		if err = execBuilder(ctx, tx, query); err != nil {
			return err
		}
	}

	for start := 0; start < len(requests); start += insertBatchSize {
		query, err := c.requestInsert(requests[start:min(start+insertBatchSize, len(requests))])
		if err != nil {
			return err
		}
		if err = execBuilder(ctx, tx, query); err != nil {
			return err
		}
	}

	return nil
}

func (c *collectionRepository) folderInsert(folders []models.Folder) (sq.InsertBuilder, error) {
	query := c.builder.Insert("folders").Columns(folderColumns...)
	for _, f := range folders {
		envIDs, err := toJSON(f.EnvironmentIDs)
		if err != nil {
			return query, err
		}
		query = query.Values(f.ID, f.CollectionID, nullString(f.ParentID), f.Name, f.Order, envIDs)
	}
	return query, nil
}

func (c *collectionRepository) requestInsert(requests []models.Request) (sq.InsertBuilder, error) {
	query := c.builder.Insert("requests").Columns(requestColumns...)
	for _, r := range requests {
		headers, err := toJSON(r.Headers)
		if err != nil {
			return query, err
		}
		params, err := toJSON(r.QueryParams)
		if err != nil {
			return query, err
		}
		auth, err := authToColumn(r.Auth)
		if err != nil {
			return query, err
		}
		query = query.Values(
			r.ID, r.CollectionID, nullString(r.FolderID), r.Name, r.Order, r.Method, r.URL,
			headers, params, r.Body, r.BodyType, r.PreRequestScript, r.TestScript, auth,
		)
	}
	return query, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (c *collectionRepository) loadFolders(ctx context.Context, q queryer, collectionID string) ([]models.Folder, error) {
	rows, err := q.QueryContext(ctx, c.rebind(selectFolders), collectionID)
	if err != nil {
		return nil, wrapErr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var (
			f        models.Folder
			parentID sql.NullString
			envIDs   string
		)
		if err = rows.Scan(&f.ID, &f.CollectionID, &parentID, &f.Name, &f.Order, &envIDs); err != nil {
			return nil, wrapErr(ErrScanningRow, err)
		}
		f.ParentID = parentID.String
		if f.EnvironmentIDs, err = fromJSON[string](envIDs); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr(ErrScanningRows, err)
	}
	return folders, nil
}

func (c *collectionRepository) loadRequests(ctx context.Context, collectionID string) ([]models.Request, error) {
	rows, err := c.DB.QueryContext(ctx, c.rebind(selectRequests), collectionID)
	if err != nil {
		return nil, wrapErr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		var (
			r                models.Request
			folderID, auth   sql.NullString
			headers, queries string
		)
		err = rows.Scan(
			&r.ID, &r.CollectionID, &folderID, &r.Name, &r.Order, &r.Method, &r.URL,
			&headers, &queries, &r.Body, &r.BodyType, &r.PreRequestScript, &r.TestScript, &auth,
		)
		if err != nil {
			return nil, wrapErr(ErrScanningRow, err)
		}
		r.FolderID = folderID.String
		if r.Headers, err = fromJSON[models.KeyValue](headers); err != nil {
			return nil, err
		}
		if r.QueryParams, err = fromJSON[models.KeyValue](queries); err != nil {
			return nil, err
		}
		if r.Auth, err = authFromColumn(auth); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr(ErrScanningRows, err)
	}
	return requests, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCollection(row rowScanner) (models.Collection, error) {
	var (
		c                 models.Collection
		variables, envIDs string
		lastSyncedAt      sql.NullTime
		createdAt         sql.NullTime
		updatedAt         sql.NullTime
	)

	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &variables, &envIDs,
		&c.Sync.Enabled, &c.Sync.IsDirty, &c.Sync.RemoteVersionID, &lastSyncedAt, &c.Sync.FileState,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Collection{}, ErrCollectionNotFound
	}
	if err != nil {
		return models.Collection{}, wrapErr(ErrScanningRow, err)
	}

	if c.Variables, err = fromJSON[models.KeyValue](variables); err != nil {
		return models.Collection{}, err
	}
	if c.EnvironmentIDs, err = fromJSON[string](envIDs); err != nil {
		return models.Collection{}, err
	}
	c.Sync.LastSyncedAt = timePtr(lastSyncedAt)
	c.CreatedAt = timePtr(createdAt)
	c.UpdatedAt = timePtr(updatedAt)

	return c, nil
}

func collectionArgs(c models.Collection) ([]any, error) {
	variables, err := toJSON(c.Variables)
	if err != nil {
		return nil, err
	}
	envIDs, err := toJSON(c.EnvironmentIDs)
	if err != nil {
		return nil, err
	}
	fileState, err := c.Sync.FileState.Value()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}

	return []any{
		c.ID, c.Name, c.Description, variables, envIDs,
		c.Sync.Enabled, c.Sync.IsDirty, c.Sync.RemoteVersionID, nullTime(c.Sync.LastSyncedAt), fileState,
		nullTime(c.CreatedAt), nullTime(c.UpdatedAt),
	}, nil
}

func execBuilder(ctx context.Context, tx *sql.Tx, query sq.InsertBuilder) error {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return wrapErr(ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapErr(ErrExecutingStatement, err)
	}
	return nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(ErrExecutingStatement, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
