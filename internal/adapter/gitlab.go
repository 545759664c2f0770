// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/utils"
	"github.com/MKhiriev/go-req-sync/models"
)

const gitlabPageSize = 100

// GitLabConfig locates one branch of one GitLab project. Project is either
// the numeric id or the full "group/project" path.
type GitLabConfig struct {
	Project string
	Branch  string
}

type gitlabHost struct {
	client *utils.HTTPClient
	cfg    GitLabConfig
	logger *logger.Logger
}

// NewGitLabHost constructs a [RemoteHost] backed by the GitLab REST API v4.
// client must already carry the base URL (".../api/v4") and authentication
// middleware.
func NewGitLabHost(client *utils.HTTPClient, cfg GitLabConfig, log *logger.Logger) RemoteHost {
	return &gitlabHost{client: client, cfg: cfg, logger: log}
}

type gitlabTreeItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

type gitlabFile struct {
	FilePath     string `json:"file_path"`
	Content      string `json:"content"`
	Encoding     string `json:"encoding"`
	BlobID       string `json:"blob_id"`
	CommitID     string `json:"commit_id"`
	LastCommitID string `json:"last_commit_id"`
}

type gitlabCommitAction struct {
	Action   string `json:"action"`
	FilePath string `json:"file_path"`
	Content  string `json:"content,omitempty"`
	Encoding string `json:"encoding,omitempty"`
}

type gitlabCommit struct {
	ID string `json:"id"`
}

func (g *gitlabHost) request(ctx context.Context) *resty.Request {
	return g.client.R().
		SetContext(ctx).
		SetPathParam("project", g.cfg.Project)
}

// filesRoute returns the files API route for p; the whole path is one
// URL-encoded segment.
func filesRoute(p string) string {
	return "/projects/{project}/repository/files/" + url.PathEscape(strings.Trim(p, "/"))
}

// VersionKind implements [RemoteHost]. The files API expects the last
// commit id touching the file.
func (g *gitlabHost) VersionKind() models.VersionKind {
	return models.VersionCommit
}

// TestConnection implements [RemoteHost] via GET /projects/{project}.
func (g *gitlabHost) TestConnection(ctx context.Context) (bool, error) {
	resp, err := g.request(ctx).Get("/projects/{project}")
	if err != nil {
		return false, requestError("test connection", err)
	}
	err = mapHTTPError(resp)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden), errors.Is(err, ErrNotFound):
		g.logger.Warn().Str("func", "gitlabHost.TestConnection").Err(err).Msg("project not reachable")
		return false, nil
	default:
		return false, err
	}
}

// ListDirectoryRecursive implements [RemoteHost] by walking every page of
// the repository tree endpoint.
func (g *gitlabHost) ListDirectoryRecursive(ctx context.Context, dir string) ([]models.RemoteItem, error) {
	items := make([]models.RemoteItem, 0)
	page := 1
	for page > 0 {
		var batch []gitlabTreeItem
		resp, err := g.request(ctx).
			SetQueryParams(map[string]string{
				"path":      strings.Trim(dir, "/"),
				"ref":       g.cfg.Branch,
				"recursive": "true",
				"per_page":  strconv.Itoa(gitlabPageSize),
				"page":      strconv.Itoa(page),
			}).
			SetResult(&batch).
			Get("/projects/{project}/repository/tree")
		if err != nil {
			return nil, requestError("list directory", err)
		}
		if err = mapHTTPError(resp); err != nil {
			if errors.Is(err, ErrNotFound) {
				return items, nil
			}
			return nil, fmt.Errorf("list directory %s: %w", dir, err)
		}

		for _, e := range batch {
			item := models.RemoteItem{Path: e.Path, VersionID: e.ID, Type: models.RemoteFile}
			switch e.Type {
			case "blob":
			case "tree":
				item.Type = models.RemoteDirectory
			default:
				continue
			}
			items = append(items, item)
		}

		page, _ = strconv.Atoi(resp.Header().Get("X-Next-Page"))
	}
	return items, nil
}

// GetDirectoryTree implements [RemoteHost]: one listing followed by one file
// fetch per file, so that every entry carries its last commit id.
func (g *gitlabHost) GetDirectoryTree(ctx context.Context, dir string) ([]models.FileContent, error) {
	items, err := g.ListDirectoryRecursive(ctx, dir)
	if err != nil {
		return nil, err
	}

	files := make([]models.FileContent, 0, len(items))
	for _, item := range items {
		if item.Type != models.RemoteFile {
			continue
		}
		f, err := g.GetFile(ctx, item.Path)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, fmt.Errorf("fetch %s: %w: listed file vanished", item.Path, ErrNotFound)
		}
		files = append(files, *f)
	}
	return files, nil
}

// GetFile implements [RemoteHost] via the repository files API.
func (g *gitlabHost) GetFile(ctx context.Context, p string) (*models.FileContent, error) {
	var f gitlabFile
	resp, err := g.request(ctx).
		SetQueryParam("ref", g.cfg.Branch).
		SetResult(&f).
		Get(filesRoute(p))
	if err != nil {
		return nil, requestError("get file", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get file %s: %w", p, err)
	}

	content, err := decodeContent(f.Content, f.Encoding)
	if err != nil {
		return nil, err
	}
	return &models.FileContent{
		Path:      p,
		Content:   content,
		VersionID: f.BlobID,
		CommitID:  f.LastCommitID,
	}, nil
}

// CreateFile implements [RemoteHost].
func (g *gitlabHost) CreateFile(ctx context.Context, p string, content []byte, message string) (models.FileVersion, error) {
	return g.writeFile(ctx, p, content, "", message, true)
}

// UpdateFile implements [RemoteHost]. A blob token cannot be honored by the
// files API and is rejected; an empty token writes unconditionally.
func (g *gitlabHost) UpdateFile(ctx context.Context, p string, content []byte, token models.VersionToken, message string) (models.FileVersion, error) {
	if token.Kind != models.VersionCommit && !token.IsZero() {
		return models.FileVersion{}, fmt.Errorf("%w: gitlab expects a commit token, got %s", ErrInvalidConfig, token.Kind)
	}
	return g.writeFile(ctx, p, content, token.Value, message, false)
}

func (g *gitlabHost) writeFile(ctx context.Context, p string, content []byte, lastCommitID, message string, create bool) (models.FileVersion, error) {
	body := map[string]string{
		"branch":         g.cfg.Branch,
		"content":        string(content),
		"commit_message": message,
	}
	if lastCommitID != "" {
		body["last_commit_id"] = lastCommitID
	}

	req := g.request(ctx).SetBody(body)
	var (
		resp *resty.Response
		err  error
	)
	if create {
		resp, err = req.Post(filesRoute(p))
	} else {
		resp, err = req.Put(filesRoute(p))
	}
	if err != nil {
		return models.FileVersion{}, requestError("write file", err)
	}
	if err = asVersionConflict(mapHTTPError(resp), isGitLabStaleWrite); err != nil {
		return models.FileVersion{}, fmt.Errorf("write file %s: %w", p, err)
	}

	// the files API answers with the path only; read back the new ids
	f, err := g.GetFile(ctx, p)
	if err != nil {
		return models.FileVersion{}, err
	}
	if f == nil {
		return models.FileVersion{VersionID: utils.BlobID(content)}, nil
	}
	return models.FileVersion{VersionID: f.VersionID, CommitID: f.CommitID}, nil
}

// CommitMultipleFiles implements [RemoteHost] with the commits API, which
// applies all actions atomically. Existing paths are detected with a
// listing of their top-level directories so that each write is sent as
// "create" or "update" as the API requires.
func (g *gitlabHost) CommitMultipleFiles(ctx context.Context, files map[string][]byte, message string, deletePaths []string) (string, error) {
	existing, err := g.existingFiles(ctx, files)
	if err != nil {
		return "", err
	}

	actions := make([]gitlabCommitAction, 0, len(files)+len(deletePaths))
	for _, p := range sortedPaths(files) {
		action := "create"
		if existing[p] {
			action = "update"
		}
		actions = append(actions, gitlabCommitAction{
			Action:   action,
			FilePath: p,
			Content:  string(files[p]),
			Encoding: "text",
		})
	}
	for _, p := range deletePaths {
		actions = append(actions, gitlabCommitAction{Action: "delete", FilePath: p})
	}

	var commit gitlabCommit
	resp, err := g.request(ctx).
		SetBody(map[string]any{
			"branch":         g.cfg.Branch,
			"commit_message": message,
			"actions":        actions,
		}).
		SetResult(&commit).
		Post("/projects/{project}/repository/commits")
	if err != nil {
		return "", requestError("create commit", err)
	}
	if err = asVersionConflict(mapHTTPError(resp), isGitLabStaleWrite); err != nil {
		return "", fmt.Errorf("create commit: %w", err)
	}
	if commit.ID == "" {
		return "", fmt.Errorf("create commit: %w: empty commit id", ErrInvalidResponse)
	}
	return commit.ID, nil
}

func (g *gitlabHost) existingFiles(ctx context.Context, files map[string][]byte) (map[string]bool, error) {
	roots := make(map[string]bool)
	for p := range files {
		root := strings.Trim(p, "/")
		if i := strings.IndexByte(root, '/'); i >= 0 {
			root = root[:i]
		} else {
			root = ""
		}
		roots[root] = true
	}

	existing := make(map[string]bool)
	for root := range roots {
		items, err := g.ListDirectoryRecursive(ctx, root)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.Type == models.RemoteFile {
				existing[item.Path] = true
			}
		}
	}
	return existing, nil
}

// DeleteDirectory implements [RemoteHost] as a single deletion commit.
func (g *gitlabHost) DeleteDirectory(ctx context.Context, dir, message string) error {
	items, err := g.ListDirectoryRecursive(ctx, dir)
	if err != nil {
		return err
	}
	var paths []string
	for _, item := range items {
		if item.Type == models.RemoteFile {
			paths = append(paths, item.Path)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("delete directory %s: %w", dir, ErrNotFound)
	}

	_, err = g.CommitMultipleFiles(ctx, nil, message, paths)
	return err
}
