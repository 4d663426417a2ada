package rest

import (
	"time"

	"github.com/openhunt/openhunt/pkg/model"
)

// productRow is the JSON row shape the REST service returns for the
// products table.
type productRow struct {
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
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r productRow) toModel() model.Product {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Product{
		ID:           r.ID,
		Name:         r.Name,
		Slogan:       r.Slogan,
		Description:  r.Description,
		Website:      r.Website,
		LogoURL:      r.LogoURL,
		Category:     r.Category,
		Tags:         tags,
		MakerName:    r.MakerName,
		MakerEmail:   r.MakerEmail,
		MakerWebsite: r.MakerWebsite,
		Language:     r.Language,
		Status:       model.ParseStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toProducts(rows []productRow) []model.Product {
	products := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.toModel())
	}
	return products
}

type categoryRow struct {
	ID     string  `json:"id"`
	NameEN string  `json:"name_en"`
	NameZH *string `json:"name_zh"`
	Icon   string  `json:"icon"`
	Color  string  `json:"color"`
}

func (r categoryRow) toModel() model.Category {
	return model.Category{
		ID:     r.ID,
		NameEN: r.NameEN,
		NameZH: model.CategoryName(r.NameEN, r.NameZH),
		Icon:   r.Icon,
		Color:  r.Color,
	}
}

type developerRow struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
	Website   *string   `json:"website"`
	CreatedAt time.Time `json:"created_at"`
}

func (r developerRow) toModel() model.Developer {
	return model.Developer{
		Email:     r.Email,
		Name:      r.Name,
		AvatarURL: r.AvatarURL,
		Website:   r.Website,
		CreatedAt: r.CreatedAt,
	}
}

type followRow struct {
	DeveloperEmail string `json:"developer_email"`
}

type engagementRow struct {
	ProductID string `json:"product_id"`
}
