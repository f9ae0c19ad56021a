package account

import "github.com/fundwit/go-commons/types"

type User struct {
	ID     types.ID `json:"id"`
	Name   string   `json:"name" gorm:"unique_index"`
	Secret string   `json:"-"`

	Nickname string `json:"nickname"`
}

type UserInfo struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Nickname string   `json:"nickname"`
}

type ProfileDetail struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Nickname string   `json:"nickname"`

	AvatarURL string   `json:"avatarUrl"`
	Interests []string `json:"interests"`
}

type NicknameUpdating struct {
	Nickname string `json:"nickname" binding:"required,lte=32"`
}

type BasicAuthUpdating struct {
	CurrentPassword string `json:"currentPassword" binding:"required,lte=64"`
	NewPassword     string `json:"newPassword" binding:"required,lte=64"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,lte=64"`
}

// ProfileUpdating is the single-submit form of the edit-profile flow:
// nickname, optional credential change and interest selection are applied
// in one transaction.
type ProfileUpdating struct {
	Nickname  string             `json:"nickname" binding:"required,lte=32"`
	BasicAuth *BasicAuthUpdating `json:"basicAuth" binding:"omitempty"`
	Interests []string           `json:"interests"`
}

func (u User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	} else {
		return u.Name
	}
}

func (u UserInfo) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	} else {
		return u.Name
	}
}
