package client

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/filex"
	"github.com/dmitrijs2005/bookstore/internal/netx"
)

func (a *API) UserInfo(ctx context.Context) (*models.UserInfo, error) {
	var info models.UserInfo
	if err := a.get(ctx, "/api/user/info", &info); err != nil {
		return nil, wrap("user info", err)
	}
	return &info, nil
}

func (a *API) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.ProfileResult, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	var res models.ProfileResult
	if err := a.put(ctx, "/api/user/profile", upd, &res); err != nil {
		return nil, wrap("update profile", err)
	}
	return &res, nil
}

// UploadAvatar sends the image at path as the "avatar" multipart field.
func (a *API) UploadAvatar(ctx context.Context, path string) (*models.AvatarResult, error) {
	if !filex.IsImage(path) {
		return nil, models.Invalid("avatar", "must be png, jpg, jpeg or gif")
	}

	form := netx.NewForm()
	if err := form.AddFilePath("avatar", path); err != nil {
		return nil, err
	}

	var res models.AvatarResult
	if err := a.post(ctx, "/api/user/avatar", form, &res); err != nil {
		return nil, wrap("upload avatar", err)
	}
	return &res, nil
}

func (a *API) Wishlist(ctx context.Context) ([]models.WishlistItem, error) {
	return getList[models.WishlistItem](ctx, a, "wishlist", "/api/wishlist")
}

// ToggleWishlist adds the book to the wishlist, or removes it when present.
func (a *API) ToggleWishlist(ctx context.Context, bookID int64) (*models.Message, error) {
	if err := requireID("book", bookID); err != nil {
		return nil, err
	}
	var msg models.Message
	if err := a.post(ctx, "/api/wishlist", map[string]int64{"book_id": bookID}, &msg); err != nil {
		return nil, wrap("toggle wishlist", err)
	}
	return &msg, nil
}
