// Package seed loads the sample catalog used for local development and demos.
package seed

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/models"
	"storefront/pkg/logger"
)

// Result counts the rows inserted by Run.
type Result struct {
	Skipped    bool
	Categories int
	Products   int
	Coupons    int
	Reviews    int
}

// Run inserts the sample catalog in one transaction. It does nothing when any
// category already exists.
func Run(ctx context.Context, db *gorm.DB, logg *logger.Logger) (Result, error) {
	if logg == nil {
		logg = logger.Nop()
	}

	var existing int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&existing).Error; err != nil {
		return Result{}, fmt.Errorf("count categories: %w", err)
	}
	if existing > 0 {
		logg.Info(ctx, "database already contains data, skipping seed")
		return Result{Skipped: true}, nil
	}

	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cats := make([]models.Category, len(categories))
		copy(cats, categories)
		if err := tx.Create(&cats).Error; err != nil {
			return fmt.Errorf("insert categories: %w", err)
		}
		categoryIDs := make(map[string]uint, len(cats))
		for _, c := range cats {
			categoryIDs[c.Slug] = c.ID
		}
		res.Categories = len(cats)

		items := make([]models.Product, 0, len(products))
		for _, p := range products {
			product := p.product
			id, ok := categoryIDs[p.category]
			if !ok {
				return fmt.Errorf("product %s: unknown category %s", product.Slug, p.category)
			}
			product.CategoryID = &id
			items = append(items, product)
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return fmt.Errorf("insert products: %w", err)
		}
		productIDs := make(map[string]uint, len(items))
		for _, p := range items {
			productIDs[p.Slug] = p.ID
		}
		res.Products = len(items)

		codes := coupons(time.Now())
		if err := tx.Create(&codes).Error; err != nil {
			return fmt.Errorf("insert coupons: %w", err)
		}
		res.Coupons = len(codes)

		users := make([]models.User, len(sampleUsers))
		copy(users, sampleUsers)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
			return fmt.Errorf("insert sample users: %w", err)
		}

		rows := make([]models.Review, 0, len(reviews))
		for _, r := range reviews {
			review := r.review
			review.ProductID = productIDs[r.productSlug]
			rows = append(rows, review)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert reviews: %w", err)
		}
		res.Reviews = len(rows)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"categories": res.Categories,
		"products":   res.Products,
		"coupons":    res.Coupons,
		"reviews":    res.Reviews,
	}), "seed completed")
	return res, nil
}
