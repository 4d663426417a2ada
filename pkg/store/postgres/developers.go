package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/openhunt/openhunt/pkg/model"
)

// upsertDeveloper records the maker identity behind a submission. On
// conflict the name is always overwritten; the website is preserved
// when the new value is absent.
func (s *Store) upsertDeveloper(ctx context.Context, email, name string, website *string) error {
	const sql = `INSERT INTO developers (email, name, website)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			website = COALESCE(EXCLUDED.website, developers.website)`

	_, err := s.pool.Exec(ctx, sql, email, name, website)
	return err
}

// SearchDevelopers matches name, email, and website case-insensitively,
// ordered by name ascending.
func (s *Store) SearchDevelopers(ctx context.Context, query string, limit int) ([]model.Developer, error) {
	const sql = `SELECT email, name, avatar_url, website, created_at
		FROM developers
		WHERE name ILIKE $1 OR email ILIKE $1 OR COALESCE(website, '') ILIKE $1
		ORDER BY name ASC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, sql, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search developers: %w", err)
	}
	defer rows.Close()

	developers := []model.Developer{}
	for rows.Next() {
		var d model.Developer
		if err := rows.Scan(&d.Email, &d.Name, &d.AvatarURL, &d.Website, &d.CreatedAt); err != nil {
			return nil, err
		}
		developers = append(developers, d)
	}
	return developers, rows.Err()
}

// TopDevelopers ranks developers by follower count descending, name
// ascending as tie-break.
func (s *Store) TopDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error) {
	const sql = `SELECT d.email, d.name, d.avatar_url, d.website, d.created_at,
			COUNT(f.user_id) AS followers
		FROM developers d
		LEFT JOIN developer_follows f ON f.developer_email = d.email
		GROUP BY d.email, d.name, d.avatar_url, d.website, d.created_at
		ORDER BY followers DESC, d.name ASC
		LIMIT $1`

	return s.queryDevelopersWithFollowers(ctx, sql, limit)
}

// RecentDevelopers lists developers newest first, name ascending as
// tie-break, with their follower counts.
func (s *Store) RecentDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error) {
	const sql = `SELECT d.email, d.name, d.avatar_url, d.website, d.created_at,
			COUNT(f.user_id) AS followers
		FROM developers d
		LEFT JOIN developer_follows f ON f.developer_email = d.email
		GROUP BY d.email, d.name, d.avatar_url, d.website, d.created_at
		ORDER BY d.created_at DESC, d.name ASC
		LIMIT $1`

	return s.queryDevelopersWithFollowers(ctx, sql, limit)
}

func (s *Store) queryDevelopersWithFollowers(ctx context.Context, sql string, limit int) ([]model.DeveloperWithFollowers, error) {
	rows, err := s.pool.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank developers: %w", err)
	}
	defer rows.Close()

	developers := []model.DeveloperWithFollowers{}
	for rows.Next() {
		var d model.DeveloperWithFollowers
		if err := rows.Scan(&d.Email, &d.Name, &d.AvatarURL, &d.Website, &d.CreatedAt, &d.Followers); err != nil {
			return nil, err
		}
		developers = append(developers, d)
	}
	return developers, rows.Err()
}

// DeveloperPopularityLastMonth counts likes and favorites received on
// each developer's products strictly within the previous calendar
// month: from the first of last month inclusive to the first of this
// month exclusive, computed from the wall clock at call time.
func (s *Store) DeveloperPopularityLastMonth(ctx context.Context, limit int) ([]model.DeveloperPopularity, error) {
	from, to := lastMonthWindow(s.now())

	const sql = `SELECT d.email, d.name, d.avatar_url,
			COUNT(DISTINCT l.id) AS likes,
			COUNT(DISTINCT f.id) AS favorites,
			COUNT(DISTINCT l.id) + COUNT(DISTINCT f.id) AS score
		FROM developers d
		LEFT JOIN products p ON p.maker_email = d.email
		LEFT JOIN product_likes l ON l.product_id = p.id
			AND l.created_at >= $1 AND l.created_at < $2
		LEFT JOIN product_favorites f ON f.product_id = p.id
			AND f.created_at >= $1 AND f.created_at < $2
		GROUP BY d.email, d.name, d.avatar_url
		ORDER BY score DESC, favorites DESC, likes DESC, d.name ASC
		LIMIT $3`

	rows, err := s.pool.Query(ctx, sql, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank developer popularity: %w", err)
	}
	defer rows.Close()

	ranked := []model.DeveloperPopularity{}
	for rows.Next() {
		var p model.DeveloperPopularity
		if err := rows.Scan(&p.Email, &p.Name, &p.AvatarURL, &p.Likes, &p.Favorites, &p.Score); err != nil {
			return nil, err
		}
		ranked = append(ranked, p)
	}
	return ranked, rows.Err()
}

// lastMonthWindow returns [first of last month, first of this month)
// in UTC.
func lastMonthWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	to := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, -1, 0)
	return from, to
}
