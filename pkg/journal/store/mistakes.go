package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quarzen/tradebook/pkg/journal/models"
)

// ============================================
// MISTAKE OPERATIONS
// ============================================

func (s *GORMStore) ListMistakes(ctx context.Context) ([]*models.Mistake, error) {
	return listAll[models.Mistake](s.db, ctx, "category ASC, name ASC")
}

func (s *GORMStore) GetMistake(ctx context.Context, name string) (*models.Mistake, error) {
	return getByField[models.Mistake](s.db, ctx, "name", name, models.ErrMistakeNotFound)
}

// GetMistakesByIDs returns the mistakes matching the given IDs.
// Returns models.ErrMistakeNotFound if any ID does not exist.
func (s *GORMStore) GetMistakesByIDs(ctx context.Context, ids []uint) ([]models.Mistake, error) {
	mistakes := []models.Mistake{}
	if len(ids) == 0 {
		return mistakes, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&mistakes).Error; err != nil {
		return nil, err
	}
	if len(mistakes) != len(uniqueIDs(ids)) {
		return nil, models.ErrMistakeNotFound
	}
	return mistakes, nil
}

// GetMistakesByNames returns the mistakes whose names are in the given set.
// Unknown names are skipped; the emotion analysis tolerates an unseeded catalog.
func (s *GORMStore) GetMistakesByNames(ctx context.Context, names []string) ([]models.Mistake, error) {
	mistakes := []models.Mistake{}
	if len(names) == 0 {
		return mistakes, nil
	}
	if err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&mistakes).Error; err != nil {
		return nil, err
	}
	return mistakes, nil
}

// SeedMistakes populates the predefined mistake catalog. Existing entries are
// left untouched so repeated seeding is safe. Returns the number created.
func (s *GORMStore) SeedMistakes(ctx context.Context) (int, error) {
	created := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range models.MistakeCatalog {
			entry := m
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&entry)
			if result.Error != nil {
				return result.Error
			}
			created += int(result.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
