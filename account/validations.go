package account

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"mypage/bizerror"
)

const (
	FieldNickname        = "nickname"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldConfirmPassword = "confirmPassword"
)

const (
	MinNicknameLength = 2
	MinPasswordLength = 8
)

// letters, digits and complete Hangul syllables only. Isolated jamo
// (ㄱ-ㅎ, ㅏ-ㅣ), whitespace and symbols are all outside the class.
var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9가-힣]*$`)

// CheckNickname validates a nickname candidate. The value is trimmed first,
// so a whitespace-only input is treated as empty.
func CheckNickname(raw string) *bizerror.FieldValidationError {
	nickname := strings.TrimSpace(raw)
	if nickname == "" {
		return &bizerror.FieldValidationError{Field: FieldNickname, Message: "enter a name"}
	}
	if !nicknamePattern.MatchString(nickname) {
		return &bizerror.FieldValidationError{Field: FieldNickname,
			Message: "cannot use spaces, special characters, or Hangul composed only of consonants/vowels"}
	}
	if utf8.RuneCountInString(nickname) < MinNicknameLength {
		return &bizerror.FieldValidationError{Field: FieldNickname, Message: "name must be at least 2 characters"}
	}
	return nil
}

// CheckPassword validates the generic password rule. The same rule applies
// to the current and the new password independently, so the offending field
// name is supplied by the caller.
func CheckPassword(field, password string) *bizerror.FieldValidationError {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &bizerror.FieldValidationError{Field: field, Message: "password must be at least 8 characters"}
	}
	return nil
}

// CheckNewPassword validates the stricter rule set of a password being newly
// chosen: the generic length rule plus the consecutive-repeat rule.
func CheckNewPassword(password string) *bizerror.FieldValidationError {
	if err := CheckPassword(FieldNewPassword, password); err != nil {
		return err
	}
	if HasTripleRepeat(password) {
		return &bizerror.FieldValidationError{Field: FieldNewPassword, Message: "cannot repeat the same character 3+ times"}
	}
	return nil
}

// CheckPasswordConfirm fails on the confirm field only, the new-password
// field keeps whatever result its own rules produced.
func CheckPasswordConfirm(newPassword, confirmPassword string) *bizerror.FieldValidationError {
	if newPassword != confirmPassword {
		return &bizerror.FieldValidationError{Field: FieldConfirmPassword, Message: "passwords do not match"}
	}
	return nil
}

// HasTripleRepeat reports whether any single character occurs three or more
// times consecutively.
func HasTripleRepeat(s string) bool {
	var last rune
	run := 0
	for _, r := range s {
		if run > 0 && r == last {
			run++
			if run >= 3 {
				return true
			}
		} else {
			last = r
			run = 1
		}
	}
	return false
}

func checkBasicAuthUpdating(u *BasicAuthUpdating) *bizerror.FieldValidationError {
	if err := CheckPassword(FieldCurrentPassword, u.CurrentPassword); err != nil {
		return err
	}
	if err := CheckNewPassword(u.NewPassword); err != nil {
		return err
	}
	if err := CheckPasswordConfirm(u.NewPassword, u.ConfirmPassword); err != nil {
		return err
	}
	return nil
}
