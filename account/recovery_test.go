package account_test

import (
	"mypage/account"
	"mypage/bizerror"
	"mypage/persistence"
	"mypage/testinfra"

	"github.com/jinzhu/gorm"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("passwordRecovery", func() {
	var (
		testDatabase *testinfra.TestDatabase
	)
	BeforeEach(func() {
		testDatabase = testinfra.StartMysqlTestDatabase("mypage")
		persistence.ActiveDataSourceManager = testDatabase.DS
		Expect(testDatabase.DS.GormDB().AutoMigrate(&account.User{}).Error).To(BeNil())
		account.RecoveryTokenCache.Flush()
	})
	AfterEach(func() {
		testinfra.StopMysqlTestDatabase(testDatabase)
	})

	Describe("CreatePasswordRecovery", func() {
		It("should fail for an unknown account name", func() {
			info, err := account.CreatePasswordRecovery(&account.RecoveryCreation{Name: "nobody"})
			Expect(info).To(BeNil())
			Expect(err).To(Equal(gorm.ErrRecordNotFound))
		})

		It("should issue a token for a known account", func() {
			Expect(testDatabase.DS.GormDB().Save(&account.User{ID: 1, Name: "aaa", Secret: account.HashSha256("12345678")}).Error).To(BeNil())

			info, err := account.CreatePasswordRecovery(&account.RecoveryCreation{Name: "aaa"})
			Expect(err).To(BeNil())
			Expect(info.Token).ToNot(BeEmpty())
		})
	})

	Describe("CompletePasswordRecovery", func() {
		It("should reject an unknown token", func() {
			Expect(account.CompletePasswordRecovery("no-such-token", &account.RecoveryCompletion{
				NewPassword: "new-secret1", ConfirmPassword: "new-secret1"})).
				To(Equal(bizerror.ErrInvalidRecoveryToken))
		})

		It("should validate the new password before consuming the token", func() {
			Expect(account.CompletePasswordRecovery("whatever", &account.RecoveryCompletion{
				NewPassword: "aaabbbb1", ConfirmPassword: "aaabbbb1"})).
				To(Equal(&bizerror.FieldValidationError{Field: "newPassword", Message: "cannot repeat the same character 3+ times"}))
			Expect(account.CompletePasswordRecovery("whatever", &account.RecoveryCompletion{
				NewPassword: "password1", ConfirmPassword: "password2"})).
				To(Equal(&bizerror.FieldValidationError{Field: "confirmPassword", Message: "passwords do not match"}))
		})

		It("should reset the secret and consume the token", func() {
			Expect(testDatabase.DS.GormDB().Save(&account.User{ID: 1, Name: "aaa", Secret: account.HashSha256("12345678")}).Error).To(BeNil())
			info, err := account.CreatePasswordRecovery(&account.RecoveryCreation{Name: "aaa"})
			Expect(err).To(BeNil())

			Expect(account.CompletePasswordRecovery(info.Token, &account.RecoveryCompletion{
				NewPassword: "new-secret1", ConfirmPassword: "new-secret1"})).To(BeNil())

			user := account.User{}
			Expect(testDatabase.DS.GormDB().Model(&account.User{}).Where(&account.User{ID: 1}).First(&user).Error).To(BeNil())
			Expect(user.Secret).To(Equal(account.HashSha256("new-secret1")))

			// single use
			Expect(account.CompletePasswordRecovery(info.Token, &account.RecoveryCompletion{
				NewPassword: "other-secret1", ConfirmPassword: "other-secret1"})).
				To(Equal(bizerror.ErrInvalidRecoveryToken))
		})
	})
})
