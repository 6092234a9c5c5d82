package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// RevocationStore tracks revoked token IDs so logout actually invalidates a
// bearer token before it expires. Entries live only as long as the token
// would have.
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore wraps a Redis client.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke marks a token ID as revoked until expiresAt.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s == nil || s.client == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been revoked. Redis outages
// fail open so authentication does not depend on the revocation store being
// reachable.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) bool {
	if s == nil || s.client == nil || tokenID == "" {
		return false
	}
	exists, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false
	}
	return exists > 0
}
