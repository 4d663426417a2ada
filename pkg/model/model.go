// Package model defines the canonical API entities of the product
// directory. Both storage backends map their native row shapes onto
// these types, so the rest of the codebase never sees backend rows.
package model

import "time"

// Product is a directory entry submitted by a maker.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slogan       string    `json:"slogan"`
	Description  string    `json:"description"`
	Website      string    `json:"website"`
	LogoURL      *string   `json:"logo_url"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	MakerName    string    `json:"maker_name"`
	MakerEmail   string    `json:"maker_email"`
	MakerWebsite *string   `json:"maker_website"`
	Language     string    `json:"language"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Category is an admin-managed grouping. ID is a stable slug.
type Category struct {
	ID     string `json:"id"`
	NameEN string `json:"name_en"`
	NameZH string `json:"name_zh"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
}

// CategoryInput is one entry of a category upsert batch. NameZH is
// optional; readers fall back to NameEN when it is absent.
type CategoryInput struct {
	ID     string  `json:"id"`
	NameEN string  `json:"name_en"`
	NameZH *string `json:"name_zh"`
	Icon   string  `json:"icon"`
	Color  string  `json:"color"`
}

// CategoryWithCount is a category plus its product count.
type CategoryWithCount struct {
	Category
	ProductCount int `json:"product_count"`
}

// Developer is identified by email; rows are upserted as a side effect
// of product creation, never created directly by end users.
type Developer struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
	Website   *string   `json:"website"`
	CreatedAt time.Time `json:"created_at"`
}

// DeveloperWithFollowers is a developer plus an aggregated follower count.
type DeveloperWithFollowers struct {
	Developer
	Followers int `json:"followers"`
}

// DeveloperPopularity is the last-month engagement ranking row for a
// developer: likes and favorites received on their products, and the
// combined score.
type DeveloperPopularity struct {
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Likes     int     `json:"likes"`
	Favorites int     `json:"favorites"`
	Score     int     `json:"score"`
}

// CreateProductRequest is a maker submission. It deliberately has no
// status field: new products always start pending.
type CreateProductRequest struct {
	Name         string   `json:"name"`
	Slogan       string   `json:"slogan"`
	Description  string   `json:"description"`
	Website      string   `json:"website"`
	LogoURL      *string  `json:"logo_url"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	MakerName    string   `json:"maker_name"`
	MakerEmail   string   `json:"maker_email"`
	MakerWebsite *string  `json:"maker_website"`
	Language     string   `json:"language"`
}

// UpdateProductRequest is a partial update; nil fields are left
// untouched. Status transitions are unrestricted here, which is how
// moderators approve and reject submissions.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Slogan      *string   `json:"slogan"`
	Description *string   `json:"description"`
	Website     *string   `json:"website"`
	LogoURL     *string   `json:"logo_url"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	Language    *string   `json:"language"`
	Status      *string   `json:"status"`
}

// Empty reports whether no recognized field of the partial update is
// set, in which case an update degrades to a plain fetch.
func (r UpdateProductRequest) Empty() bool {
	return r.Name == nil && r.Slogan == nil && r.Description == nil &&
		r.Website == nil && r.LogoURL == nil && r.Category == nil &&
		r.Tags == nil && r.Language == nil && r.Status == nil
}

// CategoryName returns the localized category name for zh, falling back
// to the English name when the localized one is absent. Every mapped
// Category therefore always exposes a non-empty localized name.
func CategoryName(nameEN string, nameZH *string) string {
	if nameZH == nil || *nameZH == "" {
		return nameEN
	}
	return *nameZH
}
