package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

type ProfileClient interface {
	UserInfo(ctx context.Context) (*models.UserInfo, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.ProfileResult, error)
	UploadAvatar(ctx context.Context, path string) (*models.AvatarResult, error)
}

// UserUpdater merges profile changes into the stored session user.
type UserUpdater interface {
	UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error)
}

// ProfileService edits the signed-in user's profile and keeps the stored
// user snapshot in step with what the service accepted.
type ProfileService struct {
	api     ProfileClient
	updater UserUpdater
}

func NewProfileService(api ProfileClient, updater UserUpdater) *ProfileService {
	return &ProfileService{api: api, updater: updater}
}

func (p *ProfileService) Info(ctx context.Context) (*models.UserInfo, error) {
	return p.api.UserInfo(ctx)
}

func (p *ProfileService) Rename(ctx context.Context, name string) (models.User, error) {
	return p.update(ctx, models.ProfileUpdate{Name: &name}, models.UserPatch{Name: &name})
}

func (p *ProfileService) ChangeUsername(ctx context.Context, username string) (models.User, error) {
	return p.update(ctx, models.ProfileUpdate{Username: &username}, models.UserPatch{Username: &username})
}

// update sends upd and stores the echoed user fields, falling back to
// the requested ones when the answer carries no user.
func (p *ProfileService) update(ctx context.Context, upd models.ProfileUpdate, fallback models.UserPatch) (models.User, error) {
	res, err := p.api.UpdateProfile(ctx, upd)
	if err != nil {
		return models.User{}, err
	}

	patch := models.PatchFromProfile(res.User)
	if patch.Empty() {
		patch = fallback
	}

	u, err := p.updater.UpdateUser(ctx, patch)
	if err != nil {
		return models.User{}, fmt.Errorf("store profile: %w", err)
	}
	return u, nil
}

func (p *ProfileService) UploadAvatar(ctx context.Context, path string) (models.User, error) {
	res, err := p.api.UploadAvatar(ctx, path)
	if err != nil {
		return models.User{}, err
	}

	u, err := p.updater.UpdateUser(ctx, models.UserPatch{Avatar: &res.AvatarURL})
	if err != nil {
		return models.User{}, fmt.Errorf("store avatar: %w", err)
	}
	return u, nil
}
