package postgres

import (
	"context"
	"fmt"

	"pulseMontreal/domain"

	"gorm.io/gorm"
)

type TaxonomyRepository struct {
	DB *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) *TaxonomyRepository {
	return &TaxonomyRepository{DB: db}
}

// FindAll loads the whole taxonomy. Called once at startup; the taxonomy is
// static configuration afterwards.
func (r *TaxonomyRepository) FindAll(ctx context.Context) ([]domain.TaxonomyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var entries []domain.TaxonomyEntry
	err := r.DB.WithContext(ctx).
		Order("category ASC, value ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	return entries, nil
}
