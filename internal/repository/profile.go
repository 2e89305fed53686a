package repository

import (
	"context"

	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ProfileFilter struct {
	TierCode      string
	BiologicalSex string
	AgeBracket    string
	FitnessLevel  string
}

type ProfileRepository interface {
	Upsert(ctx context.Context, data *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	FindByTierCode(ctx context.Context, tierCode string, offset, limit int) ([]entity.Profile, error)
	Count(ctx context.Context, filter ProfileFilter) (int64, error)
	DistinctTierCodes(ctx context.Context) ([]string, error)
}

type profileRepository struct{}

func NewProfileRepository() *profileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Upsert(ctx context.Context, data *entity.Profile) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"biological_sex", "age_bracket", "fitness_level", "tier_code", "updated_at",
			}),
		}).
		Create(data).Error
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var result entity.Profile
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *profileRepository) FindByTierCode(
	ctx context.Context, tierCode string, offset, limit int,
) ([]entity.Profile, error) {
	var result []entity.Profile
	err := xcontext.DB(ctx).
		Where("tier_code=?", tierCode).
		Order("user_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *profileRepository) Count(ctx context.Context, filter ProfileFilter) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Profile{})
	if filter.TierCode != "" {
		tx = tx.Where("tier_code=?", filter.TierCode)
	}

	if filter.BiologicalSex != "" {
		tx = tx.Where("biological_sex=?", filter.BiologicalSex)
	}

	if filter.AgeBracket != "" {
		tx = tx.Where("age_bracket=?", filter.AgeBracket)
	}

	if filter.FitnessLevel != "" {
		tx = tx.Where("fitness_level=?", filter.FitnessLevel)
	}

	var result int64
	if err := tx.Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *profileRepository) DistinctTierCodes(ctx context.Context) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).Model(&entity.Profile{}).
		Where("tier_code<>?", "").
		Distinct().
		Order("tier_code ASC").
		Pluck("tier_code", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
