package models

import "strings"

// Role is the authorization role carried in the session's user snapshot.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the user snapshot captured at login and persisted with the token.
type User struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name,omitempty"`
	Username string  `json:"username,omitempty"`
	Email    string  `json:"email,omitempty"`
	Role     Role    `json:"role,omitempty"`
	Avatar   string  `json:"avatar,omitempty"`
	Balance  float64 `json:"balance,omitempty"`
}

// IsAdmin is true only for the exact "admin" role; missing or unknown
// roles are ordinary users.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName picks the first non-empty of name, username and email.
func (u User) DisplayName() string {
	for _, s := range []string{u.Name, u.Username, u.Email} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return "user"
}

// UserPatch lists user fields to overwrite; nil fields are left untouched.
type UserPatch struct {
	Name     *string
	Username *string
	Email    *string
	Avatar   *string
	Balance  *float64
}

// Apply returns u with the non-nil patch fields applied.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Balance != nil {
		u.Balance = *p.Balance
	}
	return u
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Username == nil && p.Email == nil && p.Avatar == nil && p.Balance == nil
}

// PatchFromProfile builds a patch from a user object echoed back by the
// profile endpoint. Only fields present in the response are taken; id and
// role are never changed by a profile update.
func PatchFromProfile(u User) UserPatch {
	var p UserPatch
	if u.Name != "" {
		p.Name = &u.Name
	}
	if u.Username != "" {
		p.Username = &u.Username
	}
	if u.Email != "" {
		p.Email = &u.Email
	}
	if u.Avatar != "" {
		p.Avatar = &u.Avatar
	}
	return p
}

// UserInfo is the profile summary returned by GET /api/user/info.
type UserInfo struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Username   string  `json:"username"`
	Balance    float64 `json:"balance"`
	BookCount  int     `json:"book_count"`
	OrderCount int     `json:"order_count"`
	Avatar     string  `json:"avatar,omitempty"`
}

// ProfileUpdate is the PUT /api/user/profile body.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
}

func (p ProfileUpdate) Validate() error {
	if p.Name == nil && p.Username == nil {
		return Invalid("profile", "nothing to update")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Invalid("name", "must not be empty")
	}
	if p.Username != nil && strings.TrimSpace(*p.Username) == "" {
		return Invalid("username", "must not be empty")
	}
	return nil
}

// ProfileResult is the PUT /api/user/profile response.
type ProfileResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// AvatarResult is the POST /api/user/avatar response.
type AvatarResult struct {
	Message   string `json:"message"`
	AvatarURL string `json:"avatar_url"`
}

// AdminUser is one row of GET /api/admin/users.
type AdminUser struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	CreatedAt  string `json:"created_at"`
	BookCount  int    `json:"book_count"`
	OrderCount int    `json:"order_count"`
}
