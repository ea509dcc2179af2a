package service

import (
	"context"
	"errors"

	"hackswipe/internal/cache"
	"hackswipe/internal/models"
	"hackswipe/internal/repository"

	"gorm.io/datatypes"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// ProfileInput carries the editable profile fields. A nil field is "not
// provided": PUT resets it to its default, PATCH leaves it untouched.
type ProfileInput struct {
	Bio            *string                   `json:"bio"`
	LooksToConnect *string                   `json:"looksToConnect"`
	Skills         *[]string                 `json:"skills"`
	Interests      *[]string                 `json:"interests"`
	Experience     *[]models.ExperienceEntry `json:"experience"`
	Projects       *[]models.ProjectEntry    `json:"projects"`
	Awards         *[]models.AwardEntry      `json:"awards"`
	Socials        *[]models.SocialLink      `json:"socials"`
	Preferences    *models.Preferences       `json:"preferences"`
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

var errNoProfile = errors.New("profile not found")

// GetProfile returns the user's profile, or nil when none was saved yet.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		found, err := s.profileRepo.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if found == nil {
			// Missing profiles stay uncached so the first save is visible.
			return errNoProfile
		}
		profile = *found
		return nil
	})
	if errors.Is(err, errNoProfile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ReplaceProfile upserts the profile with exactly the provided fields.
func (s *ProfileService) ReplaceProfile(ctx context.Context, userID string, in ProfileInput) (*models.Profile, error) {
	profile := &models.Profile{UserID: userID}
	in.applyTo(profile)
	profile.ApplyDefaults()
	return s.save(ctx, profile)
}

// PatchProfile merges the provided fields into the stored profile.
func (s *ProfileService) PatchProfile(ctx context.Context, userID string, in ProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.Profile{UserID: userID}
	}
	in.applyTo(profile)
	profile.ApplyDefaults()
	return s.save(ctx, profile)
}

func (s *ProfileService) save(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return profile, nil
}

func (in ProfileInput) applyTo(p *models.Profile) {
	if in.Bio != nil {
		p.Bio = in.Bio
	}
	if in.LooksToConnect != nil {
		p.LooksToConnect = in.LooksToConnect
	}
	if in.Skills != nil {
		p.Skills = datatypes.JSONSlice[string](*in.Skills)
	}
	if in.Interests != nil {
		p.Interests = datatypes.JSONSlice[string](*in.Interests)
	}
	if in.Experience != nil {
		p.Experience = datatypes.JSONSlice[models.ExperienceEntry](*in.Experience)
	}
	if in.Projects != nil {
		p.Projects = datatypes.JSONSlice[models.ProjectEntry](*in.Projects)
	}
	if in.Awards != nil {
		p.Awards = datatypes.JSONSlice[models.AwardEntry](*in.Awards)
	}
	if in.Socials != nil {
		p.Socials = datatypes.JSONSlice[models.SocialLink](*in.Socials)
	}
	if in.Preferences != nil {
		p.Preferences = datatypes.NewJSONType(*in.Preferences)
	}
}
