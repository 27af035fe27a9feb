package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"spicehouse/internal/models"
)

// ProductSaver persists a product, assigning its slug on first save.
type ProductSaver interface {
	Save(ctx context.Context, p *models.Product) error
}

// seedProducts is the starter catalog created in development.
var seedProducts = []struct {
	name        string
	category    models.Category
	price       string
	description string
}{
	{"Green Cardamom", models.CategoryCardamom, "18.50", "Whole green pods, 8mm bold grade, hand-sorted."},
	{"Ground Cardamom", models.CategoryCardamom, "21.00", "Freshly milled seeds, no husk."},
	{"Cloves", models.CategoryClove, "12.75", "Sun-dried hand-picked buds with intact heads."},
	{"Cinnamon Sticks", models.CategoryCinnamon, "9.90", "Ceylon quills, C5 special grade."},
	{"Cinnamon Powder", models.CategoryCinnamon, "7.40", ""},
	{"Black Pepper", models.CategoryPepper, "11.20", "Tellicherry extra bold, 4.75mm and up."},
	{"White Pepper", models.CategoryPepper, "", "Price on request."},
	{"Bay Leaf", models.CategoryOther, "3.50", ""},
	{"Whole All Spices", models.CategoryOther, "", "Assorted whole spices for garam masala."},
	{"Star Anise", models.CategoryOther, "14.00", ""},
}

// seedFAQs is the starter FAQ list created in development.
var seedFAQs = []struct {
	question string
	answer   string
}{
	{"Do you ship internationally?", "Yes. We ship worldwide by sea and air freight; **samples** go by courier."},
	{"What is your minimum order quantity?", "Retail packs have no minimum. Bulk orders start at 25 kg per grade."},
	{"How are the spices stored?", "In food-grade bags inside climate-controlled warehouses, away from light and moisture."},
}

// Seed populates the database with initial development data. It is a
// no-op when products already exist.
func Seed(ctx context.Context, db *sql.DB, products ProductSaver) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("seed check products: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, sp := range seedProducts {
		p := &models.Product{
			Name:        sp.name,
			Category:    sp.category,
			Description: sp.description,
			IsActive:    true,
		}
		if sp.price != "" {
			price, err := decimal.NewFromString(sp.price)
			if err != nil {
				return fmt.Errorf("seed price %q: %w", sp.price, err)
			}
			p.Price = decimal.NewNullDecimal(price)
		}
		if err := products.Save(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", sp.name, err)
		}
	}

	for i, f := range seedFAQs {
		_, err := db.ExecContext(ctx, `
			INSERT INTO faqs (question, answer, position)
			VALUES ($1, $2, $3)
		`, f.question, f.answer, i)
		if err != nil {
			return fmt.Errorf("seed faq: %w", err)
		}
	}

	slog.Info("database seeded",
		"products", len(seedProducts),
		"faqs", len(seedFAQs),
	)
	return nil
}
