package profile

import (
	"context"
	"fmt"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/repository"
)

type ProfileUseCase struct {
	profiles repository.ProfileRepository
}

func NewProfileUseCase(profiles repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profiles: profiles}
}

// UpdateProfileRequest carries the editable profile fields. Omitted
// fields keep their current values.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	return uc.profiles.GetByUserID(ctx, userID)
}

func (uc *ProfileUseCase) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	return uc.profiles.GetByUserID(ctx, userID)
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != nil {
		profile.DisplayName = req.DisplayName
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if err := uc.profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}
