package account

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"strings"

	"mypage/avatar"
	"mypage/bizerror"
	"mypage/idgen"
	"mypage/interest"
	"mypage/persistence"
	"mypage/session"

	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	userIdWorker *sonyflake.Sonyflake
)

func init() {
	userIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})
}

var (
	DetailProfileFunc         = DetailProfile
	UpdateNicknameFunc        = UpdateNickname
	UpdateBasicAuthSecretFunc = UpdateBasicAuthSecret
	UpdateProfileFunc         = UpdateProfile
)

func HashSha256(raw string) string {
	h := sha256.New()
	h.Write([]byte(raw))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

func DetailProfile(sec *session.Context) (*ProfileDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	user := User{}
	if err := db.Model(&User{}).Where(&User{ID: sec.Identity.ID}).First(&user).Error; err != nil {
		return nil, err
	}
	interests, err := interest.QueryNamesFor(db, user.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileDetail{ID: user.ID, Name: user.Name, Nickname: user.Nickname,
		AvatarURL: avatar.APIAccountAvatarsRoot + "/" + user.ID.String(), Interests: interests}, nil
}

func UpdateNickname(u *NicknameUpdating, sec *session.Context) error {
	if err := CheckNickname(u.Nickname); err != nil {
		return err
	}
	nickname := strings.TrimSpace(u.Nickname)

	return persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		if err := checkNicknameConflict(tx, nickname, sec); err != nil {
			return err
		}
		user := User{ID: sec.Identity.ID}
		if err := tx.Where(&user).First(&user).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update(&User{Nickname: nickname}).Error
	})
}

func UpdateBasicAuthSecret(u *BasicAuthUpdating, sec *session.Context) error {
	if err := checkBasicAuthUpdating(u); err != nil {
		return err
	}

	user := User{}
	if err := persistence.ActiveDataSourceManager.GormDB().Model(&User{}).
		Where(&User{ID: sec.Identity.ID, Secret: HashSha256(u.CurrentPassword)}).Scan(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return bizerror.ErrInvalidPassword
		}
		return err
	}

	return persistence.ActiveDataSourceManager.GormDB().Model(&User{}).
		Where(&User{ID: sec.Identity.ID, Secret: HashSha256(u.CurrentPassword)}).
		Update(&User{Secret: HashSha256(u.NewPassword)}).Error
}

// UpdateProfile applies the single-submit edit-profile form: nickname, the
// optional credential change and the interest selection succeed or fail as
// one unit.
func UpdateProfile(u *ProfileUpdating, sec *session.Context) error {
	if err := CheckNickname(u.Nickname); err != nil {
		return err
	}
	if u.BasicAuth != nil {
		if err := checkBasicAuthUpdating(u.BasicAuth); err != nil {
			return err
		}
	}
	if err := interest.CheckSelection(u.Interests); err != nil {
		return err
	}
	nickname := strings.TrimSpace(u.Nickname)

	return persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		if err := checkNicknameConflict(tx, nickname, sec); err != nil {
			return err
		}
		user := User{ID: sec.Identity.ID}
		if err := tx.Where(&user).First(&user).Error; err != nil {
			return err
		}
		if u.BasicAuth != nil {
			if user.Secret != HashSha256(u.BasicAuth.CurrentPassword) {
				return bizerror.ErrInvalidPassword
			}
			if err := tx.Model(&user).Update(&User{Secret: HashSha256(u.BasicAuth.NewPassword)}).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&user).Update(&User{Nickname: nickname}).Error; err != nil {
			return err
		}
		return interest.ReplaceInTx(tx, user.ID, u.Interests)
	})
}

// nickname uniqueness is delegated to the store; an in-transaction count
// stands in for the duplicate-nickname check of the remote service.
func checkNicknameConflict(tx *gorm.DB, nickname string, sec *session.Context) error {
	var count int
	if err := tx.Model(&User{}).Where("nickname = ? AND id <> ?", nickname, sec.Identity.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return bizerror.ErrNicknameConflict
	}
	return nil
}

// EnsureBootstrapAccount creates the initial account when the user table is
// still empty, so a fresh deployment has something to sign in with.
func EnsureBootstrapAccount() error {
	return persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		admin := User{}
		err := tx.Model(&User{}).Where(&User{Name: "admin"}).First(&admin).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		initialPassword := os.ExpandEnv("${INITIAL_ADMIN_PASSWORD}")
		if initialPassword == "" {
			initialPassword = "admin1234"
		}
		return tx.Save(&User{ID: idgen.NextID(userIdWorker), Name: "admin", Secret: HashSha256(initialPassword)}).Error
	})
}
