package services

import (
	"context"

	"github.com/kongenga/kongenga/internal/netx"
)

// uploadToPresignedURL is a test seam.
var uploadToPresignedURL = netx.UploadToPresignedURL

// UploadAvatar asks the API for a presigned URL, uploads data there and
// records the object key on the snapshot.
func (s *SessionStore) UploadAvatar(ctx context.Context, data []byte, contentType string) (string, error) {
	gen, ok := s.current()
	if !ok {
		return "", nil
	}

	up, err := s.api.PresignAvatar(ctx)
	if err != nil {
		s.checkUnauthorized(ctx, gen, err)
		return "", err
	}
	if err := uploadToPresignedURL(ctx, nil, up.UploadURL, contentType, data); err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return "", ErrSessionChanged
	}
	s.user.Avatar = up.Key
	s.mu.Unlock()

	s.persist(ctx)
	return up.Key, nil
}
