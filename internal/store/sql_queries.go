package store

// Static queries are written with "?" placeholders and passed through
// [DB.rebind] before execution.
const (
	collectionColumns = `id, name, description, variables, environment_ids, sync_enabled, is_dirty, remote_version_id, last_synced_at, file_state, created_at, updated_at`

	getCollection = `SELECT ` + collectionColumns + ` FROM collections WHERE id = ?`

	insertCollection = `INSERT INTO collections (` + collectionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	upsertCollection = insertCollection + `
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			variables = excluded.variables,
			environment_ids = excluded.environment_ids,
			sync_enabled = excluded.sync_enabled,
			is_dirty = excluded.is_dirty,
			remote_version_id = excluded.remote_version_id,
			last_synced_at = excluded.last_synced_at,
			file_state = excluded.file_state,
			updated_at = excluded.updated_at`

	updateCollection = `UPDATE collections
		SET name = ?, description = ?, variables = ?, environment_ids = ?, updated_at = ?
		WHERE id = ?`

	deleteCollection         = `DELETE FROM collections WHERE id = ?`
	deleteCollectionFolders  = `DELETE FROM folders WHERE collection_id = ?`
	deleteCollectionRequests = `DELETE FROM requests WHERE collection_id = ?`

	selectFolders = `SELECT id, collection_id, parent_id, name, sort_order, environment_ids
		FROM folders
		WHERE collection_id = ?
		ORDER BY sort_order, id`

	selectRequests = `SELECT id, collection_id, folder_id, name, sort_order, method, url, headers, query_params, body, body_type, pre_request_script, test_script, auth
		FROM requests
		WHERE collection_id = ?
		ORDER BY sort_order, id`

	deleteRequest = `DELETE FROM requests WHERE id = ? AND collection_id = ?`

	folderUpsertSuffix = `ON CONFLICT (id) DO UPDATE SET
			parent_id = excluded.parent_id,
			name = excluded.name,
			sort_order = excluded.sort_order,
			environment_ids = excluded.environment_ids
		WHERE folders.collection_id = excluded.collection_id`

	requestUpsertSuffix = `ON CONFLICT (id) DO UPDATE SET
			folder_id = excluded.folder_id,
			name = excluded.name,
			sort_order = excluded.sort_order,
			method = excluded.method,
			url = excluded.url,
			headers = excluded.headers,
			query_params = excluded.query_params,
			body = excluded.body,
			body_type = excluded.body_type,
			pre_request_script = excluded.pre_request_script,
			test_script = excluded.test_script,
			auth = excluded.auth
		WHERE requests.collection_id = excluded.collection_id`

	getSyncState = `SELECT sync_enabled, is_dirty, remote_version_id, last_synced_at, file_state
		FROM collections
		WHERE id = ?`

	saveSyncState = `UPDATE collections
		SET is_dirty = ?, remote_version_id = ?, last_synced_at = ?, file_state = ?
		WHERE id = ?`

	markDirty = `UPDATE collections SET is_dirty = ? WHERE id = ? AND sync_enabled = ?`

	enableSync  = `UPDATE collections SET sync_enabled = ?, is_dirty = ? WHERE id = ?`
	disableSync = `UPDATE collections SET sync_enabled = ? WHERE id = ?`

	listEnvironments = `SELECT id, name, external_path, variables FROM environments ORDER BY name, id`
	getEnvironment   = `SELECT id, name, external_path, variables FROM environments WHERE id = ?`
	upsertEnvironment = `INSERT INTO environments (id, name, external_path, variables)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			external_path = excluded.external_path,
			variables = excluded.variables`
	deleteEnvironment = `DELETE FROM environments WHERE id = ?`
)

var (
	folderColumns = []string{"id", "collection_id", "parent_id", "name", "sort_order", "environment_ids"}

	requestColumns = []string{
		"id", "collection_id", "folder_id", "name", "sort_order", "method", "url",
		"headers", "query_params", "body", "body_type", "pre_request_script", "test_script", "auth",
	}
)

// insertBatchSize bounds the rows of one multi-row INSERT so that the
// statement stays below the engine's bound-parameter limit.
const insertBatchSize = 100
