package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "cars/photo.jpg", strings.NewReader("jpeg bytes")))

	rc, err := s.Get(ctx, "cars/photo.jpg")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))

	require.NoError(t, s.Delete(ctx, "cars/photo.jpg"))
	_, err = s.Get(ctx, "cars/photo.jpg")
	assert.Error(t, err)

	// Deleting a missing file is not an error
	assert.NoError(t, s.Delete(ctx, "cars/photo.jpg"))
}
