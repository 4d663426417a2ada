package postgres

import (
	"context"
	"fmt"
)

// FollowDeveloper records a follow. The (developer_email, user_id) pair
// is unique, so following twice leaves exactly one row.
func (s *Store) FollowDeveloper(ctx context.Context, email, userID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO developer_follows (developer_email, user_id)
		 VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		email, userID)
	if err != nil {
		return fmt.Errorf("failed to follow developer: %w", err)
	}
	return nil
}

// UnfollowDeveloper removes a follow; a missing pair is a no-op.
func (s *Store) UnfollowDeveloper(ctx context.Context, email, userID string) error {
	_, err := s.pool.Exec(ctx,
		"DELETE FROM developer_follows WHERE developer_email = $1 AND user_id = $2",
		email, userID)
	if err != nil {
		return fmt.Errorf("failed to unfollow developer: %w", err)
	}
	return nil
}

// LikeProduct records a like, idempotently. A malformed or unknown
// product id is a no-op.
func (s *Store) LikeProduct(ctx context.Context, productID, userID string) error {
	if !validProductID(productID) {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO product_likes (product_id, user_id)
		 SELECT id, $2 FROM products WHERE id::text = $1
		 ON CONFLICT (product_id, user_id) DO NOTHING`,
		productID, userID)
	if err != nil {
		return fmt.Errorf("failed to like product: %w", err)
	}
	return nil
}

// UnlikeProduct removes a like if present.
func (s *Store) UnlikeProduct(ctx context.Context, productID, userID string) error {
	if !validProductID(productID) {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		"DELETE FROM product_likes WHERE product_id::text = $1 AND user_id = $2",
		productID, userID)
	if err != nil {
		return fmt.Errorf("failed to unlike product: %w", err)
	}
	return nil
}

// FavoriteProduct records a favorite, idempotently. A malformed or
// unknown product id is a no-op.
func (s *Store) FavoriteProduct(ctx context.Context, productID, userID string) error {
	if !validProductID(productID) {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO product_favorites (product_id, user_id)
		 SELECT id, $2 FROM products WHERE id::text = $1
		 ON CONFLICT (product_id, user_id) DO NOTHING`,
		productID, userID)
	if err != nil {
		return fmt.Errorf("failed to favorite product: %w", err)
	}
	return nil
}

// UnfavoriteProduct removes a favorite if present.
func (s *Store) UnfavoriteProduct(ctx context.Context, productID, userID string) error {
	if !validProductID(productID) {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		"DELETE FROM product_favorites WHERE product_id::text = $1 AND user_id = $2",
		productID, userID)
	if err != nil {
		return fmt.Errorf("failed to unfavorite product: %w", err)
	}
	return nil
}
