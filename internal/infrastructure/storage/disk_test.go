package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveOpenRemove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := "company-1/doc-1-pod.pdf"
	n, err := store.Save(ctx, key, strings.NewReader("proof of delivery"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("proof of delivery")), n)

	r, err := store.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "proof of delivery", string(body))

	require.NoError(t, store.Remove(ctx, key))
	_, err = store.Open(ctx, key)
	assert.Error(t, err, "removed blob must be gone")
}

func TestDiskStore_RemoveAbsentIsNoError(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(context.Background(), "company-1/never-existed.pdf"))
}

func TestDiskStore_RejectsTraversalKeys(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{
		"../outside.txt",
		"company-1/../../outside.txt",
		"/etc/passwd",
		".",
	} {
		_, err := store.Save(ctx, key, strings.NewReader("x"))
		assert.Error(t, err, "key %q must be rejected", key)
	}
}
