package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/kongenga/kongenga/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAvatar(t *testing.T) {
	b := newFakeBackend(t)
	b.seed("amina@example.cd", "secret1")
	s := newTestStore(t, b)
	ctx := context.Background()
	require.True(t, s.Login(ctx, "amina@example.cd", "secret1", "").OK)

	var gotURL, gotCT string
	var gotData []byte
	orig := uploadToPresignedURL
	uploadToPresignedURL = func(_ context.Context, _ *http.Client, url, contentType string, data []byte) error {
		gotURL, gotCT, gotData = url, contentType, data
		return nil
	}
	t.Cleanup(func() { uploadToPresignedURL = orig })

	key, err := s.UploadAvatar(ctx, []byte("png-bytes"), "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "avatars/"))
	assert.True(t, strings.HasSuffix(gotURL, "/upload/"+key))
	assert.Equal(t, "image/png", gotCT)
	assert.Equal(t, []byte("png-bytes"), gotData)
	assert.Equal(t, key, s.User().Avatar)

	var snap models.User
	require.NoError(t, json.Unmarshal(s.stored(t, KeyUser), &snap))
	assert.Equal(t, key, snap.Avatar)
}

func TestUploadAvatar_UploadFails(t *testing.T) {
	b := newFakeBackend(t)
	b.seed("amina@example.cd", "secret1")
	s := newTestStore(t, b)
	ctx := context.Background()
	require.True(t, s.Login(ctx, "amina@example.cd", "secret1", "").OK)

	orig := uploadToPresignedURL
	uploadToPresignedURL = func(context.Context, *http.Client, string, string, []byte) error {
		return errors.New("upload failed: 403 Forbidden")
	}
	t.Cleanup(func() { uploadToPresignedURL = orig })

	_, err := s.UploadAvatar(ctx, []byte("png-bytes"), "image/png")
	require.Error(t, err)
	assert.Empty(t, s.User().Avatar)
}
