package lookup

import (
	"context"

	"gorm.io/gorm"

	"github.com/aurawear/aurawear-backend/internal/domain"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

// LookupRepo answers existence questions against the static reference
// tables. Requests referencing unknown lookup ids are rejected as validation
// failures before any business write happens.
type LookupRepo interface {
	SexExists(ctx context.Context, tx *gorm.DB, id int) (bool, error)
	StyleExists(ctx context.Context, tx *gorm.DB, id int) (bool, error)
	// MissingPaletteIDs returns the subset of ids with no season_palette row.
	MissingPaletteIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]int, error)
	ListSeasonPalettes(ctx context.Context, tx *gorm.DB) ([]*domain.SeasonPalette, error)
	ListColorsByPalette(ctx context.Context, tx *gorm.DB, paletteID int) ([]*domain.Color, error)
}

type lookupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLookupRepo(db *gorm.DB, baseLog *logger.Logger) LookupRepo {
	return &lookupRepo{db: db, log: baseLog.With("repo", "LookupRepo")}
}

func (lr *lookupRepo) SexExists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	return lr.existsByID(ctx, tx, &domain.Sex{}, id)
}

func (lr *lookupRepo) StyleExists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	return lr.existsByID(ctx, tx, &domain.StyleOption{}, id)
}

func (lr *lookupRepo) MissingPaletteIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]int, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var present []int
	if err := transaction.WithContext(ctx).
		Model(&domain.SeasonPalette{}).
		Where("id IN ?", ids).
		Pluck("id", &present).Error; err != nil {
		return nil, err
	}
	presentSet := make(map[int]struct{}, len(present))
	for _, id := range present {
		presentSet[id] = struct{}{}
	}
	var missing []int
	for _, id := range ids {
		if _, ok := presentSet[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (lr *lookupRepo) ListSeasonPalettes(ctx context.Context, tx *gorm.DB) ([]*domain.SeasonPalette, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var palettes []*domain.SeasonPalette
	if err := transaction.WithContext(ctx).
		Order("id ASC").
		Find(&palettes).Error; err != nil {
		return nil, err
	}
	return palettes, nil
}

func (lr *lookupRepo) ListColorsByPalette(ctx context.Context, tx *gorm.DB, paletteID int) ([]*domain.Color, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var colors []*domain.Color
	if err := transaction.WithContext(ctx).
		Where("season_palette_id = ?", paletteID).
		Order("id ASC").
		Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

func (lr *lookupRepo) existsByID(ctx context.Context, tx *gorm.DB, model interface{}, id int) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
