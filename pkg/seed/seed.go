// Package seed loads development convenience data through the data
// access facade. Seeding is not transactional: a mid-batch failure
// leaves earlier rows applied, which is acceptable for this data.
package seed

import (
	"context"
	"fmt"

	"github.com/openhunt/openhunt/pkg/model"
	"github.com/openhunt/openhunt/pkg/store"
)

func ptr(s string) *string { return &s }

// Categories is the default category set.
func Categories() []model.CategoryInput {
	return []model.CategoryInput{
		{ID: "ai", NameEN: "AI & Machine Learning", NameZH: ptr("人工智能"), Icon: "sparkles", Color: "#7C3AED"},
		{ID: "dev-tools", NameEN: "Developer Tools", NameZH: ptr("开发者工具"), Icon: "wrench", Color: "#3B82F6"},
		{ID: "productivity", NameEN: "Productivity", NameZH: ptr("效率"), Icon: "rocket", Color: "#10B981"},
		{ID: "design", NameEN: "Design", NameZH: ptr("设计"), Icon: "palette", Color: "#EC4899"},
		{ID: "marketing", NameEN: "Marketing", Icon: "megaphone", Color: "#F59E0B"},
		{ID: "finance", NameEN: "Finance", NameZH: ptr("金融"), Icon: "coins", Color: "#6B7280"},
	}
}

// Products is a set of sample submissions. They enter as pending, like
// any real submission; dev-mode widening keeps them visible behind
// approved-only filters.
func Products() []model.CreateProductRequest {
	return []model.CreateProductRequest{
		{
			Name: "Inklet", Slogan: "Notes that organize themselves",
			Description: "A note-taking app that files every note automatically.",
			Website:     "https://inklet.example.com", Category: "productivity",
			Tags:      []string{"notes", "organization"},
			MakerName: "Io Tanaka", MakerEmail: "io@inklet.example.com",
			MakerWebsite: ptr("https://tanaka.example.com"), Language: "en",
		},
		{
			Name: "Gridlock", Slogan: "CSS layouts without the fight",
			Description: "Visual grid editor that exports clean stylesheet code.",
			Website:     "https://gridlock.example.com", Category: "design",
			Tags:      []string{"css", "design", "frontend"},
			MakerName: "Priya Raman", MakerEmail: "priya@gridlock.example.com",
			Language: "en",
		},
		{
			Name: "洞察表", Slogan: "电子表格里的机器学习",
			Description: "在表格里直接训练和运行预测模型。",
			Website:     "https://dongcha.example.com", Category: "ai",
			Tags:      []string{"ml", "spreadsheet"},
			MakerName: "Wei Chen", MakerEmail: "wei@dongcha.example.com",
			Language: "zh",
		},
		{
			Name: "Shipmate", Slogan: "Release notes on autopilot",
			Description: "Turns merged pull requests into polished release notes.",
			Website:     "https://shipmate.example.com", Category: "dev-tools",
			Tags:      []string{"releases", "automation", "ci"},
			MakerName: "Io Tanaka", MakerEmail: "io@inklet.example.com",
			Language: "en",
		},
	}
}

// Run upserts the default categories and creates the sample products.
// Returns how many of each were written.
func Run(ctx context.Context, st *store.Store) (int, int, error) {
	cats, err := st.UpsertCategories(ctx, Categories())
	if err != nil {
		return cats, 0, fmt.Errorf("failed to seed categories: %w", err)
	}

	created := 0
	for _, req := range Products() {
		if _, err := st.CreateProduct(ctx, req); err != nil {
			return cats, created, fmt.Errorf("failed to seed product %q: %w", req.Name, err)
		}
		created++
	}
	return cats, created, nil
}
