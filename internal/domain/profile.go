package domain

import (
	"context"
	"errors"

	"github.com/questx-lab/fittrack/internal/domain/tier"
	"github.com/questx-lab/fittrack/internal/entity"
	"github.com/questx-lab/fittrack/internal/model"
	"github.com/questx-lab/fittrack/internal/repository"
	"github.com/questx-lab/fittrack/pkg/errorx"
	"gorm.io/gorm"
)

type ProfileDomain interface {
	Upsert(context.Context, *model.UpsertProfileRequest) (*model.UpsertProfileResponse, error)
	Get(context.Context, *model.GetProfileRequest) (*model.GetProfileResponse, error)
	ListByTier(context.Context, *model.ListProfilesByTierRequest) (*model.ListProfilesByTierResponse, error)
	Count(context.Context, *model.CountProfilesRequest) (*model.CountProfilesResponse, error)
}

const maxProfilePageSize = 100

type profileDomain struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewProfileDomain(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) *profileDomain {
	return &profileDomain{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// Upsert stores the attributes and derives the tier code from them. The tier
// code cannot be set any other way.
func (d *profileDomain) Upsert(
	ctx context.Context, req *model.UpsertProfileRequest,
) (*model.UpsertProfileResponse, error) {
	tierCode, err := tier.ComputeTierCode(
		tier.BiologicalSex(req.BiologicalSex),
		tier.AgeBracket(req.AgeBracket),
		tier.FitnessLevel(req.FitnessLevel),
	)
	if err != nil {
		return nil, err
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		return nil, repository.StoreError(ctx, err, "get user")
	}

	profile := &entity.Profile{
		UserID:        req.UserID,
		BiologicalSex: req.BiologicalSex,
		AgeBracket:    req.AgeBracket,
		FitnessLevel:  req.FitnessLevel,
		TierCode:      tierCode,
	}
	if err := d.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, repository.StoreError(ctx, err, "upsert profile")
	}

	return &model.UpsertProfileResponse{Profile: convertProfile(profile)}, nil
}

func (d *profileDomain) Get(
	ctx context.Context, req *model.GetProfileRequest,
) (*model.GetProfileResponse, error) {
	profile, err := d.profileRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found profile")
		}

		return nil, repository.StoreError(ctx, err, "get profile")
	}

	return &model.GetProfileResponse{Profile: convertProfile(profile)}, nil
}

// ListByTier pages through the members of one tier in user id order. Total
// counts the whole tier, not the page.
func (d *profileDomain) ListByTier(
	ctx context.Context, req *model.ListProfilesByTierRequest,
) (*model.ListProfilesByTierResponse, error) {
	if _, err := tier.ParseTierCode(req.TierCode); err != nil {
		return nil, err
	}

	if req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Offset must not be negative")
	}

	if req.Limit <= 0 || req.Limit > maxProfilePageSize {
		req.Limit = maxProfilePageSize
	}

	profiles, err := d.profileRepo.FindByTierCode(ctx, req.TierCode, req.Offset, req.Limit)
	if err != nil {
		return nil, repository.StoreError(ctx, err, "find profiles by tier")
	}

	total, err := d.profileRepo.Count(ctx, repository.ProfileFilter{TierCode: req.TierCode})
	if err != nil {
		return nil, repository.StoreError(ctx, err, "count profiles")
	}

	result := []model.Profile{}
	for i := range profiles {
		result = append(result, convertProfile(&profiles[i]))
	}

	return &model.ListProfilesByTierResponse{Profiles: result, Total: total}, nil
}

// Count reports how many profiles match every non-empty attribute of the
// request.
func (d *profileDomain) Count(
	ctx context.Context, req *model.CountProfilesRequest,
) (*model.CountProfilesResponse, error) {
	if req.TierCode != "" {
		if _, err := tier.ParseTierCode(req.TierCode); err != nil {
			return nil, err
		}
	}

	n, err := d.profileRepo.Count(ctx, repository.ProfileFilter{
		TierCode:      req.TierCode,
		BiologicalSex: req.BiologicalSex,
		AgeBracket:    req.AgeBracket,
		FitnessLevel:  req.FitnessLevel,
	})
	if err != nil {
		return nil, repository.StoreError(ctx, err, "count profiles")
	}

	return &model.CountProfilesResponse{Count: n}, nil
}
