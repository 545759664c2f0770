// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-req-sync/internal/logger"
	"github.com/MKhiriev/go-req-sync/internal/utils"
	"github.com/MKhiriev/go-req-sync/models"
)

const (
	githubAccept     = "application/vnd.github+json"
	githubAPIVersion = "2022-11-28"
	githubFileMode   = "100644"
)

// GitHubConfig locates one branch of one GitHub repository.
type GitHubConfig struct {
	Owner      string
	Repository string
	Branch     string
}

type githubHost struct {
	client *utils.HTTPClient
	cfg    GitHubConfig
	logger *logger.Logger
}

// NewGitHubHost constructs a [RemoteHost] backed by the GitHub REST API.
// client must already carry the base URL and authentication middleware.
func NewGitHubHost(client *utils.HTTPClient, cfg GitHubConfig, log *logger.Logger) RemoteHost {
	client.
		SetHeader("Accept", githubAccept).
		SetHeader("X-GitHub-Api-Version", githubAPIVersion)

	return &githubHost{client: client, cfg: cfg, logger: log}
}

type githubTree struct {
	SHA       string            `json:"sha"`
	Tree      []githubTreeEntry `json:"tree"`
	Truncated bool              `json:"truncated"`
}

type githubTreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

type githubContent struct {
	Type     string `json:"type"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type githubBlob struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type githubWriteResult struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

type githubRef struct {
	Object struct {
		SHA string `json:"sha"`
	} `json:"object"`
}

type githubCommit struct {
	SHA  string `json:"sha"`
	Tree struct {
		SHA string `json:"sha"`
	} `json:"tree"`
}

func (g *githubHost) request(ctx context.Context) *resty.Request {
	return g.client.R().
		SetContext(ctx).
		SetPathParam("owner", g.cfg.Owner).
		SetPathParam("repo", g.cfg.Repository)
}

// VersionKind implements [RemoteHost]. The contents API expects the blob sha
// of the file being replaced.
func (g *githubHost) VersionKind() models.VersionKind {
	return models.VersionBlob
}

// TestConnection implements [RemoteHost] via GET /repos/{owner}/{repo}.
func (g *githubHost) TestConnection(ctx context.Context) (bool, error) {
	resp, err := g.request(ctx).Get("/repos/{owner}/{repo}")
	if err != nil {
		return false, requestError("test connection", err)
	}
	err = mapHTTPError(resp)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden), errors.Is(err, ErrNotFound):
		g.logger.Warn().Str("func", "githubHost.TestConnection").Err(err).Msg("repository not reachable")
		return false, nil
	default:
		return false, err
	}
}

// ListDirectoryRecursive implements [RemoteHost] using one recursive tree
// request on the branch head, filtered to dir.
func (g *githubHost) ListDirectoryRecursive(ctx context.Context, dir string) ([]models.RemoteItem, error) {
	var tree githubTree
	resp, err := g.request(ctx).
		SetPathParam("branch", g.cfg.Branch).
		SetQueryParam("recursive", "1").
		SetResult(&tree).
		Get("/repos/{owner}/{repo}/git/trees/{branch}")
	if err != nil {
		return nil, requestError("list directory", err)
	}
	if err = mapHTTPError(resp); err != nil {
		// 404: missing branch; 409: empty repository
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
			return []models.RemoteItem{}, nil
		}
		return nil, fmt.Errorf("list directory %s: %w", dir, err)
	}
	// a partial listing would read as remote deletions
	if tree.Truncated {
		g.logger.Error().Str("func", "githubHost.ListDirectoryRecursive").
			Str("dir", dir).Msg("tree listing truncated by host")
		return nil, fmt.Errorf("list directory %s: %w: tree truncated", dir, ErrInvalidResponse)
	}

	prefix := strings.Trim(dir, "/")
	items := make([]models.RemoteItem, 0)
	for _, e := range tree.Tree {
		if prefix != "" && !strings.HasPrefix(e.Path, prefix+"/") {
			continue
		}
		item := models.RemoteItem{Path: e.Path, VersionID: e.SHA, Type: models.RemoteFile}
		switch e.Type {
		case "blob":
		case "tree":
			item.Type = models.RemoteDirectory
		default:
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// GetDirectoryTree implements [RemoteHost]: one listing followed by one blob
// fetch per file.
func (g *githubHost) GetDirectoryTree(ctx context.Context, dir string) ([]models.FileContent, error) {
	items, err := g.ListDirectoryRecursive(ctx, dir)
	if err != nil {
		return nil, err
	}

	files := make([]models.FileContent, 0, len(items))
	for _, item := range items {
		if item.Type != models.RemoteFile {
			continue
		}
		content, err := g.getBlob(ctx, item.VersionID)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", item.Path, err)
		}
		files = append(files, models.FileContent{Path: item.Path, Content: content, VersionID: item.VersionID})
	}
	return files, nil
}

func (g *githubHost) getBlob(ctx context.Context, sha string) ([]byte, error) {
	var blob githubBlob
	resp, err := g.request(ctx).
		SetPathParam("sha", sha).
		SetResult(&blob).
		Get("/repos/{owner}/{repo}/git/blobs/{sha}")
	if err != nil {
		return nil, requestError("get blob", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return decodeContent(blob.Content, blob.Encoding)
}

// GetFile implements [RemoteHost] via the contents API.
func (g *githubHost) GetFile(ctx context.Context, p string) (*models.FileContent, error) {
	var c githubContent
	resp, err := g.request(ctx).
		SetQueryParam("ref", g.cfg.Branch).
		SetResult(&c).
		Get("/repos/{owner}/{repo}/contents/" + escapePath(p))
	if err != nil {
		return nil, requestError("get file", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get file %s: %w", p, err)
	}
	if c.Type != "file" {
		return nil, fmt.Errorf("get file %s: %w: not a file", p, ErrInvalidResponse)
	}

	content, err := decodeContent(c.Content, c.Encoding)
	if err != nil {
		return nil, err
	}
	return &models.FileContent{Path: p, Content: content, VersionID: c.SHA}, nil
}

// CreateFile implements [RemoteHost].
func (g *githubHost) CreateFile(ctx context.Context, p string, content []byte, message string) (models.FileVersion, error) {
	return g.putFile(ctx, p, content, "", message)
}

// UpdateFile implements [RemoteHost]. A commit token is accepted only if it
// carries no value, in which case the write is unconditional.
func (g *githubHost) UpdateFile(ctx context.Context, p string, content []byte, token models.VersionToken, message string) (models.FileVersion, error) {
	if token.Kind != models.VersionBlob && !token.IsZero() {
		return models.FileVersion{}, fmt.Errorf("%w: github expects a blob token, got %s", ErrInvalidConfig, token.Kind)
	}
	return g.putFile(ctx, p, content, token.Value, message)
}

func (g *githubHost) putFile(ctx context.Context, p string, content []byte, sha, message string) (models.FileVersion, error) {
	body := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  g.cfg.Branch,
	}
	if sha != "" {
		body["sha"] = sha
	}

	var result githubWriteResult
	resp, err := g.request(ctx).
		SetBody(body).
		SetResult(&result).
		Put("/repos/{owner}/{repo}/contents/" + escapePath(p))
	if err != nil {
		return models.FileVersion{}, requestError("put file", err)
	}
	if err = asVersionConflict(mapHTTPError(resp), isGitHubStaleWrite); err != nil {
		return models.FileVersion{}, fmt.Errorf("put file %s: %w", p, err)
	}
	return models.FileVersion{VersionID: result.Content.SHA, CommitID: result.Commit.SHA}, nil
}

// CommitMultipleFiles implements [RemoteHost] with the Git data API: a new
// tree on top of the branch head, a commit, and a fast-forward-only ref
// update. A concurrent push makes the ref update fail with
// [ErrVersionConflict] and leaves the branch untouched.
func (g *githubHost) CommitMultipleFiles(ctx context.Context, files map[string][]byte, message string, deletePaths []string) (string, error) {
	head, err := g.headCommit(ctx)
	if err != nil {
		return "", err
	}

	entries := make([]map[string]any, 0, len(files)+len(deletePaths))
	for _, p := range sortedPaths(files) {
		entries = append(entries, map[string]any{
			"path":    p,
			"mode":    githubFileMode,
			"type":    "blob",
			"content": string(files[p]),
		})
	}
	for _, p := range deletePaths {
		entries = append(entries, map[string]any{
			"path": p,
			"mode": githubFileMode,
			"type": "blob",
			"sha":  nil,
		})
	}

	var tree githubTree
	resp, err := g.request(ctx).
		SetBody(map[string]any{"base_tree": head.Tree.SHA, "tree": entries}).
		SetResult(&tree).
		Post("/repos/{owner}/{repo}/git/trees")
	if err != nil {
		return "", requestError("create tree", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("create tree: %w", err)
	}

	var commit githubCommit
	resp, err = g.request(ctx).
		SetBody(map[string]any{"message": message, "tree": tree.SHA, "parents": []string{head.SHA}}).
		SetResult(&commit).
		Post("/repos/{owner}/{repo}/git/commits")
	if err != nil {
		return "", requestError("create commit", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("create commit: %w", err)
	}

	resp, err = g.request(ctx).
		SetPathParam("branch", g.cfg.Branch).
		SetBody(map[string]any{"sha": commit.SHA, "force": false}).
		Patch("/repos/{owner}/{repo}/git/refs/heads/{branch}")
	if err != nil {
		return "", requestError("update ref", err)
	}
	if err = asVersionConflict(mapHTTPError(resp), func(err error) bool {
		return errors.Is(err, ErrUnprocessable) || errors.Is(err, ErrConflict)
	}); err != nil {
		return "", fmt.Errorf("update ref: %w", err)
	}

	return commit.SHA, nil
}

func (g *githubHost) headCommit(ctx context.Context) (githubCommit, error) {
	var ref githubRef
	resp, err := g.request(ctx).
		SetPathParam("branch", g.cfg.Branch).
		SetResult(&ref).
		Get("/repos/{owner}/{repo}/git/ref/heads/{branch}")
	if err != nil {
		return githubCommit{}, requestError("get ref", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
			return githubCommit{}, fmt.Errorf("branch %s: %w", g.cfg.Branch, ErrEmptyRepository)
		}
		return githubCommit{}, fmt.Errorf("get ref: %w", err)
	}

	var commit githubCommit
	resp, err = g.request(ctx).
		SetPathParam("sha", ref.Object.SHA).
		SetResult(&commit).
		Get("/repos/{owner}/{repo}/git/commits/{sha}")
	if err != nil {
		return githubCommit{}, requestError("get commit", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return githubCommit{}, fmt.Errorf("get commit: %w", err)
	}
	commit.SHA = ref.Object.SHA
	return commit, nil
}

// DeleteDirectory implements [RemoteHost] as a single deletion commit.
func (g *githubHost) DeleteDirectory(ctx context.Context, dir, message string) error {
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

func decodeContent(content, encoding string) ([]byte, error) {
	if encoding != "" && encoding != "base64" {
		return []byte(content), nil
	}
	// the host wraps base64 payloads at 60 columns
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return raw, nil
}

// escapePath escapes each segment of a repository path for use in a URL
// path, keeping the separators.
func escapePath(p string) string {
	segments := strings.Split(strings.Trim(path.Clean("/"+p), "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func sortedPaths(files map[string][]byte) []string {
	out := make([]string, 0, len(files))
	for p := range files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
