package account

import (
	"time"

	"mypage/bizerror"
	"mypage/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/patrickmn/go-cache"
)

const RecoveryTokenExpiration = 15 * time.Minute

var RecoveryTokenCache = cache.New(RecoveryTokenExpiration, 1*time.Minute)

type RecoveryCreation struct {
	Name string `json:"name" binding:"required,lte=32"`
}

type RecoveryCompletion struct {
	NewPassword     string `json:"newPassword" binding:"required,lte=64"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,lte=64"`
}

type RecoveryTokenInfo struct {
	Token string `json:"token"`
}

var (
	CreatePasswordRecoveryFunc   = CreatePasswordRecovery
	CompletePasswordRecoveryFunc = CompletePasswordRecovery
)

// CreatePasswordRecovery issues a single-use recovery token for the named
// account. Delivering the token to the user is the mail collaborator's job;
// returning it in the response stands in for that here.
func CreatePasswordRecovery(creation *RecoveryCreation) (*RecoveryTokenInfo, error) {
	user := User{}
	if err := persistence.ActiveDataSourceManager.GormDB().Model(&User{}).
		Where(&User{Name: creation.Name}).First(&user).Error; err != nil {
		return nil, err
	}

	token := uuid.New().String()
	RecoveryTokenCache.Set(token, user.ID, cache.DefaultExpiration)
	return &RecoveryTokenInfo{Token: token}, nil
}

// CompletePasswordRecovery redeems a recovery token with a new password. The
// new password obeys the same rules as a password change, the token is
// consumed whether or not it is redeemed before expiring.
func CompletePasswordRecovery(token string, completion *RecoveryCompletion) error {
	if err := CheckNewPassword(completion.NewPassword); err != nil {
		return err
	}
	if err := CheckPasswordConfirm(completion.NewPassword, completion.ConfirmPassword); err != nil {
		return err
	}

	value, found := RecoveryTokenCache.Get(token)
	if !found {
		return bizerror.ErrInvalidRecoveryToken
	}
	uid, ok := value.(types.ID)
	if !ok {
		return bizerror.ErrInvalidRecoveryToken
	}

	err := persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		user := User{ID: uid}
		if err := tx.Where(&user).First(&user).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update(&User{Secret: HashSha256(completion.NewPassword)}).Error
	})
	if err != nil {
		return err
	}

	RecoveryTokenCache.Delete(token)
	return nil
}
