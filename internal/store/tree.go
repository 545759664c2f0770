package store

import "github.com/MKhiriev/go-req-sync/models"

// flattenTree returns every folder and request of c with their parent links
// filled in. Folders are listed parents first.
func flattenTree(c models.Collection) ([]models.Folder, []models.Request) {
	var (
		folders  []models.Folder
		requests []models.Request
	)

	for _, r := range c.Requests {
		r.CollectionID = c.ID
		r.FolderID = ""
		requests = append(requests, r)
	}

	var walk func(parentID string, level []models.Folder)
	walk = func(parentID string, level []models.Folder) {
		for _, f := range level {
			children, leaves := f.Folders, f.Requests

			f.CollectionID = c.ID
			f.ParentID = parentID
			f.Folders, f.Requests = nil, nil
			folders = append(folders, f)

			for _, r := range leaves {
				r.CollectionID = c.ID
				r.FolderID = f.ID
				requests = append(requests, r)
			}
			walk(f.ID, children)
		}
	}
	walk("", c.Folders)

	return folders, requests
}

// assembleTree attaches flat folder and request rows to c. Rows are
// expected in sibling order. Rows whose parent is missing are attached to
// the collection root.
func assembleTree(c *models.Collection, folders []models.Folder, requests []models.Request) {
	known := make(map[string]struct{}, len(folders))
	for _, f := range folders {
		known[f.ID] = struct{}{}
	}
	parentOf := func(id string) string {
		if _, ok := known[id]; ok {
			return id
		}
		return ""
	}

	childFolders := make(map[string][]models.Folder)
	for _, f := range folders {
		p := parentOf(f.ParentID)
		if p == f.ID {
			p = ""
		}
		childFolders[p] = append(childFolders[p], f)
	}
	childRequests := make(map[string][]models.Request)
	for _, r := range requests {
		p := parentOf(r.FolderID)
		r.FolderID = p
		childRequests[p] = append(childRequests[p], r)
	}

	visited := make(map[string]struct{}, len(folders))
	var build func(parentID string) []models.Folder
	build = func(parentID string) []models.Folder {
		var out []models.Folder
		for _, f := range childFolders[parentID] {
			if _, seen := visited[f.ID]; seen {
				continue
			}
			visited[f.ID] = struct{}{}
			f.ParentID = parentOf(f.ParentID)
			f.Folders = build(f.ID)
			f.Requests = childRequests[f.ID]
			out = append(out, f)
		}
		return out
	}

	c.Folders = build("")
	c.Requests = childRequests[""]
}

// subtreeIDs returns rootID and the ids of every folder below it.
func subtreeIDs(folders []models.Folder, rootID string) []string {
	children := make(map[string][]string)
	for _, f := range folders {
		children[f.ParentID] = append(children[f.ParentID], f.ID)
	}

	ids := []string{rootID}
	seen := map[string]struct{}{rootID: {}}
	for i := 0; i < len(ids); i++ {
		for _, child := range children[ids[i]] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			ids = append(ids, child)
		}
	}
	return ids
}
