package rest

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/openhunt/openhunt/pkg/model"
)

// timeLayout is the timestamp format the REST service accepts in
// filter operators.
const timeLayout = "2006-01-02T15:04:05Z"

// lastMonthWindow returns [first of last month, first of this month)
// in UTC.
func lastMonthWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	to := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, -1, 0)
	return from, to
}

// ListCategories returns all categories ordered by id.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "id.asc")

	var rows []categoryRow
	if err := getJSON(ctx, c, "categories", q, &rows); err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0, len(rows))
	for _, r := range rows {
		categories = append(categories, r.toModel())
	}
	return categories, nil
}

// UpsertCategories merges the batch on the id key in one request.
func (c *Client) UpsertCategories(ctx context.Context, batch []model.CategoryInput) (int, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("on_conflict", "id")

	data, _, err := c.do(ctx, http.MethodPost, "categories", q, batch,
		"resolution=merge-duplicates,return=representation")
	if err != nil {
		return 0, err
	}

	var rows []categoryRow
	if err := decodeRows(data, "categories", &rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// TopCategories ranks categories by approved product count. The REST
// dialect has no grouped aggregation, so the products are fetched as a
// thin category projection and counted client-side.
func (c *Client) TopCategories(ctx context.Context, limit int) ([]model.CategoryWithCount, error) {
	categories, err := c.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("select", "category")
	q.Set("status", c.statusFilter("approved"))

	var rows []struct {
		Category string `json:"category"`
	}
	if err := getJSON(ctx, c, "products", q, &rows); err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, r := range rows {
		counts[r.Category]++
	}

	ranked := make([]model.CategoryWithCount, 0, len(categories))
	for _, cat := range categories {
		ranked = append(ranked, model.CategoryWithCount{
			Category:     cat,
			ProductCount: counts[cat.ID],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ProductCount != ranked[j].ProductCount {
			return ranked[i].ProductCount > ranked[j].ProductCount
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// SearchDevelopers has no REST implementation and always returns
// empty. Documented limitation, not a silent defect.
func (c *Client) SearchDevelopers(ctx context.Context, query string, limit int) ([]model.Developer, error) {
	return []model.Developer{}, nil
}

// TopDevelopers ranks developers by follower count, counted
// client-side from a thin follows projection.
func (c *Client) TopDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error) {
	developers, err := c.fetchDevelopersWithFollowers(ctx, "")
	if err != nil {
		return nil, err
	}

	sort.SliceStable(developers, func(i, j int) bool {
		if developers[i].Followers != developers[j].Followers {
			return developers[i].Followers > developers[j].Followers
		}
		return developers[i].Name < developers[j].Name
	})
	if len(developers) > limit {
		developers = developers[:limit]
	}
	return developers, nil
}

// RecentDevelopers lists developers newest first with follower counts.
func (c *Client) RecentDevelopers(ctx context.Context, limit int) ([]model.DeveloperWithFollowers, error) {
	developers, err := c.fetchDevelopersWithFollowers(ctx, "created_at.desc,name.asc")
	if err != nil {
		return nil, err
	}
	if len(developers) > limit {
		developers = developers[:limit]
	}
	return developers, nil
}

func (c *Client) fetchDevelopersWithFollowers(ctx context.Context, order string) ([]model.DeveloperWithFollowers, error) {
	q := url.Values{}
	q.Set("select", "*")
	if order != "" {
		q.Set("order", order)
	}

	var devRows []developerRow
	if err := getJSON(ctx, c, "developers", q, &devRows); err != nil {
		return nil, err
	}

	fq := url.Values{}
	fq.Set("select", "developer_email")
	var follows []followRow
	if err := getJSON(ctx, c, "developer_follows", fq, &follows); err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, f := range follows {
		counts[f.DeveloperEmail]++
	}

	developers := make([]model.DeveloperWithFollowers, 0, len(devRows))
	for _, r := range devRows {
		developers = append(developers, model.DeveloperWithFollowers{
			Developer: r.toModel(),
			Followers: counts[r.Email],
		})
	}
	return developers, nil
}

// DeveloperPopularityLastMonth counts last-month likes and favorites
// client-side from thin projections filtered on created_at.
func (c *Client) DeveloperPopularityLastMonth(ctx context.Context, limit int) ([]model.DeveloperPopularity, error) {
	from, to := lastMonthWindow(c.now())

	q := url.Values{}
	q.Set("select", "id,maker_email")
	var products []struct {
		ID         string `json:"id"`
		MakerEmail string `json:"maker_email"`
	}
	if err := getJSON(ctx, c, "products", q, &products); err != nil {
		return nil, err
	}
	makerByProduct := map[string]string{}
	for _, p := range products {
		makerByProduct[p.ID] = p.MakerEmail
	}

	countByMaker := func(table string) (map[string]int, error) {
		eq := url.Values{}
		eq.Set("select", "product_id")
		eq.Add("created_at", "gte."+from.Format(timeLayout))
		eq.Add("created_at", "lt."+to.Format(timeLayout))

		var rows []engagementRow
		if err := getJSON(ctx, c, table, eq, &rows); err != nil {
			return nil, err
		}
		counts := map[string]int{}
		for _, r := range rows {
			if maker, ok := makerByProduct[r.ProductID]; ok {
				counts[maker]++
			}
		}
		return counts, nil
	}

	likes, err := countByMaker("product_likes")
	if err != nil {
		return nil, err
	}
	favorites, err := countByMaker("product_favorites")
	if err != nil {
		return nil, err
	}

	dq := url.Values{}
	dq.Set("select", "email,name,avatar_url")
	var devRows []developerRow
	if err := getJSON(ctx, c, "developers", dq, &devRows); err != nil {
		return nil, err
	}

	ranked := make([]model.DeveloperPopularity, 0, len(devRows))
	for _, d := range devRows {
		l, f := likes[d.Email], favorites[d.Email]
		ranked = append(ranked, model.DeveloperPopularity{
			Email:     d.Email,
			Name:      d.Name,
			AvatarURL: d.AvatarURL,
			Likes:     l,
			Favorites: f,
			Score:     l + f,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Favorites != b.Favorites {
			return a.Favorites > b.Favorites
		}
		if a.Likes != b.Likes {
			return a.Likes > b.Likes
		}
		return a.Name < b.Name
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Engagement mutations need a direct database connection.

func (c *Client) FollowDeveloper(ctx context.Context, email, userID string) error {
	return ErrEngagementUnsupported
}

func (c *Client) UnfollowDeveloper(ctx context.Context, email, userID string) error {
	return ErrEngagementUnsupported
}

func (c *Client) LikeProduct(ctx context.Context, productID, userID string) error {
	return ErrEngagementUnsupported
}

func (c *Client) UnlikeProduct(ctx context.Context, productID, userID string) error {
	return ErrEngagementUnsupported
}

func (c *Client) FavoriteProduct(ctx context.Context, productID, userID string) error {
	return ErrEngagementUnsupported
}

func (c *Client) UnfavoriteProduct(ctx context.Context, productID, userID string) error {
	return ErrEngagementUnsupported
}
