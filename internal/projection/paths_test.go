package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "c1/collection.yaml", MetadataPath("c1"))
	assert.Equal(t, "c1", CollectionIDOf("c1/f1/r1.yaml"))
	assert.Equal(t, "c1", CollectionIDOf("c1"))

	assert.True(t, IsMetadataPath("c1/collection.yaml"))
	assert.False(t, IsMetadataPath("c1/f1/collection.yaml"))
	assert.False(t, IsMetadataPath("collection.yaml"))

	assert.Equal(t, "c1/r.yaml", Rebase("collections/c1/r.yaml", "collections", ""))
	assert.Equal(t, "collections/c1/r.yaml", Rebase("c1/r.yaml", "", "collections"))
	assert.Equal(t, "collectionsX/c1", Rebase("collectionsX/c1", "collections", ""))
}
