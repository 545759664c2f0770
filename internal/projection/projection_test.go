// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package projection

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-req-sync/models"
)

func sampleCollection() models.Collection {
	return models.Collection{
		ID:             "c1",
		Name:           "Users API",
		Description:    "user endpoints",
		Variables:      []models.KeyValue{{Key: "baseUrl", Value: "https://api.example.com"}, {Key: "apiToken", Value: "s3cr3t"}},
		EnvironmentIDs: []string{"env-1"},
		Requests: []models.Request{
			{ID: "r-root", CollectionID: "c1", Name: "Health", Order: 1, Method: "GET", URL: "{{baseUrl}}/health"},
		},
		Folders: []models.Folder{
			{
				ID: "f1", CollectionID: "c1", Name: "Users", Order: 0,
				Requests: []models.Request{
					{
						ID: "r1", CollectionID: "c1", FolderID: "f1", Name: "List users", Order: 0,
						Method: "GET", URL: "{{baseUrl}}/users",
						Headers:     []models.KeyValue{{Key: "Authorization", Value: "Bearer {{token}}"}, {Key: "X-Api-Key", Value: "plain"}},
						QueryParams: []models.KeyValue{{Key: "page", Value: "1"}, {Key: "limit", Value: "10", Disabled: true}},
						Body:        `{"a":1}`,
						BodyType:    "json",
						TestScript:  "expect(status).toBe(200)",
						Auth:        &models.Auth{Type: "basic", Params: []models.KeyValue{{Key: "username", Value: "bob"}, {Key: "password", Value: "hunter2"}}},
					},
				},
			},
		},
	}
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestSerialize_Layout(t *testing.T) {
	files, err := Serialize(sampleCollection(), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"c1/_order.yaml",
		"c1/collection.yaml",
		"c1/f1/_order.yaml",
		"c1/f1/folder.yaml",
		"c1/f1/r1.yaml",
		"c1/r-root.yaml",
	}, sortedKeys(files))
	assert.Contains(t, string(files["c1/_order.yaml"]), "id: f1")
}

func TestSerialize_OneFolderOneRequestIsFiveFiles(t *testing.T) {
	c := models.Collection{
		ID:   "c1",
		Name: "New",
		Folders: []models.Folder{{
			ID: "f1", Name: "F",
			Requests: []models.Request{{ID: "r1", Name: "R", Method: "GET", URL: "http://x"}},
		}},
	}

	files, err := Serialize(c, Options{})
	require.NoError(t, err)
	assert.Len(t, files, 5)
}

func TestSerialize_ByteStable(t *testing.T) {
	a, err := Serialize(sampleCollection(), Options{})
	require.NoError(t, err)
	b, err := Serialize(sampleCollection(), Options{})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSerialize_EmptyID(t *testing.T) {
	_, err := Serialize(models.Collection{Name: "x"}, Options{})
	assert.ErrorIs(t, err, ErrEmptyID)

	c := sampleCollection()
	c.Requests[0].ID = ""
	_, err = Serialize(c, Options{})
	assert.ErrorIs(t, err, ErrEmptyID)
}

// nest builds a chain of depth folders, each holding one request.
func nest(depth int) models.Collection {
	c := models.Collection{ID: "deep", Name: "Deep"}
	var build func(level int) []models.Folder
	build = func(level int) []models.Folder {
		if level > depth {
			return nil
		}
		id := fmt.Sprintf("f%d", level)
		return []models.Folder{{
			ID:       id,
			Name:     "Folder " + id,
			Folders:  build(level + 1),
			Requests: []models.Request{{ID: "r" + id, Name: "R", Method: "POST", URL: "http://x/" + id}},
		}}
	}
	c.Folders = build(1)
	return c
}

func TestSerialize_DepthLimit(t *testing.T) {
	_, err := Serialize(nest(MaxDepth), Options{})
	require.NoError(t, err)

	_, err = Serialize(nest(MaxDepth+1), Options{})
	assert.ErrorIs(t, err, ErrTreeTooDeep)
}

func TestRoundTrip(t *testing.T) {
	envs := []models.Environment{{ID: "env-1", Name: "dev"}}

	tests := []struct {
		name string
		c    models.Collection
	}{
		{name: "sample", c: sampleCollection()},
		{name: "max depth", c: nest(MaxDepth)},
		{name: "empty collection", c: models.Collection{ID: "e", Name: "Empty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Serialize(tt.c, Options{Environments: envs})
			require.NoError(t, err)

			got, err := Deserialize(files, nil, envs)
			require.NoError(t, err)

			again, err := Serialize(got, Options{Environments: envs})
			require.NoError(t, err)
			assert.Equal(t, files, again)

			assert.Equal(t, tt.c.Name, got.Name)
			assert.Equal(t, tt.c.Variables, got.Variables)
			assert.Equal(t, len(tt.c.Folders), len(got.Folders))
		})
	}
}

func TestRoundTrip_RequestFields(t *testing.T) {
	orig := sampleCollection()
	files, err := Serialize(orig, Options{})
	require.NoError(t, err)

	got, err := Deserialize(files, nil, []models.Environment{{ID: "env-1"}})
	require.NoError(t, err)

	require.Len(t, got.Folders, 1)
	require.Len(t, got.Folders[0].Requests, 1)
	want := orig.Folders[0].Requests[0]
	have := got.Folders[0].Requests[0]
	assert.Equal(t, want, have)
	assert.Equal(t, orig.Requests[0], got.Requests[0])
	assert.Equal(t, []string{"env-1"}, got.EnvironmentIDs)
}

func TestDeserialize_OrderFollowsManifest(t *testing.T) {
	files := map[string][]byte{
		"c1/collection.yaml": []byte("id: c1\nname: C\n"),
		"c1/_order.yaml": []byte(`items:
  - type: request
    id: b
  - type: request
    id: ghost
  - type: folder
    id: f
  - type: request
    id: a
`),
		"c1/a.yaml":        []byte("id: a\nname: A\nmethod: GET\nurl: http://a\n"),
		"c1/b.yaml":        []byte("id: b\nname: B\nmethod: GET\nurl: http://b\n"),
		"c1/z.yaml":        []byte("id: z\nname: Z\nmethod: GET\nurl: http://z\n"),
		"c1/f/folder.yaml": []byte("id: f\nname: F\n"),
	}

	got, err := Deserialize(files, nil, nil)
	require.NoError(t, err)

	require.Len(t, got.Requests, 3)
	assert.Equal(t, "b", got.Requests[0].ID)
	assert.Equal(t, 0, got.Requests[0].Order)
	require.Len(t, got.Folders, 1)
	assert.Equal(t, 1, got.Folders[0].Order)
	assert.Equal(t, "a", got.Requests[1].ID)
	assert.Equal(t, 2, got.Requests[1].Order)
	// unlisted files come last
	assert.Equal(t, "z", got.Requests[2].ID)
	assert.Equal(t, 3, got.Requests[2].Order)
}

func TestDeserialize_PrefixedKeys(t *testing.T) {
	files, err := Serialize(sampleCollection(), Options{})
	require.NoError(t, err)

	prefixed := make(map[string][]byte, len(files))
	for k, v := range files {
		prefixed[Rebase(k, "", "collections")] = v
	}

	got, err := Deserialize(prefixed, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	assert.Len(t, got.Folders, 1)
}

func TestDeserialize_Errors(t *testing.T) {
	_, err := Deserialize(map[string][]byte{"c1/_order.yaml": []byte("items: []\n")}, nil, nil)
	assert.ErrorIs(t, err, ErrMetadataNotFound)

	_, err = Deserialize(map[string][]byte{
		"a/collection.yaml": []byte("id: a\n"),
		"b/collection.yaml": []byte("id: b\n"),
	}, nil, nil)
	assert.ErrorIs(t, err, ErrMultipleMetadata)

	_, err = Deserialize(map[string][]byte{"c1/collection.yaml": []byte("id: [oops\n")}, nil, nil)
	assert.ErrorIs(t, err, ErrMalformedFile)

	_, err = Deserialize(map[string][]byte{"c1/collection.yaml": []byte("id: c1\n")}, &models.Collection{ID: "other"}, nil)
	assert.ErrorIs(t, err, ErrCollectionIDMismatch)
}

func TestDeserialize_KeepsExistingSyncMetadata(t *testing.T) {
	files, err := Serialize(sampleCollection(), Options{})
	require.NoError(t, err)

	existing := &models.Collection{
		ID:   "c1",
		Name: "Stale name",
		Sync: models.SyncMetadata{Enabled: true, RemoteVersionID: "v1"},
	}

	got, err := Deserialize(files, existing, nil)
	require.NoError(t, err)
	assert.Equal(t, "Users API", got.Name)
	assert.True(t, got.Sync.Enabled)
	assert.Equal(t, "v1", got.Sync.RemoteVersionID)
}

func TestDeserialize_EnvironmentRelinkByHint(t *testing.T) {
	c := sampleCollection()
	files, err := Serialize(c, Options{Environments: []models.Environment{{ID: "env-1", ExternalPath: "vault/dev"}}})
	require.NoError(t, err)
	assert.Contains(t, string(files["c1/collection.yaml"]), "vault/dev")

	tests := []struct {
		name string
		envs []models.Environment
		want []string
	}{
		{name: "same id", envs: []models.Environment{{ID: "env-1"}}, want: []string{"env-1"}},
		{name: "recreated under new id", envs: []models.Environment{{ID: "env-9", ExternalPath: "vault/dev"}}, want: []string{"env-9"}},
		{name: "no match is dropped", envs: []models.Environment{{ID: "env-2", ExternalPath: "vault/prod"}}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Deserialize(files, nil, tt.envs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.EnvironmentIDs)
		})
	}
}

func TestDeserialize_DepthLimit(t *testing.T) {
	files, err := Serialize(nest(MaxDepth), Options{})
	require.NoError(t, err)

	// graft one more level below the deepest folder
	deepest := "deep"
	for i := 1; i <= MaxDepth; i++ {
		deepest += fmt.Sprintf("/f%d", i)
	}
	files[deepest+"/extra/folder.yaml"] = []byte("id: extra\nname: extra\n")

	_, err = Deserialize(files, nil, nil)
	assert.ErrorIs(t, err, ErrTreeTooDeep)
}

func TestSerializeRequest_MatchesFullSerialization(t *testing.T) {
	c := sampleCollection()
	san, err := NewKeySanitizer()
	require.NoError(t, err)
	opts := Options{Sanitizer: san}

	files, err := Serialize(c, opts)
	require.NoError(t, err)

	p, content, err := SerializeRequest(c, "r1", opts)
	require.NoError(t, err)
	assert.Equal(t, "c1/f1/r1.yaml", p)
	assert.Equal(t, files[p], content)

	_, _, err = SerializeRequest(c, "missing", opts)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
