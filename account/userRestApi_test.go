package account_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"mypage/account"
	"mypage/bizerror"
	"mypage/session"
	"mypage/testinfra"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("userRestApi", func() {
	var (
		router *gin.Engine
	)
	BeforeEach(func() {
		router = gin.Default()
		router.Use(bizerror.ErrorHandling())
		account.RegisterSessionUsersRestAPI(router)
		account.RegisterPasswordRecoveriesRestAPI(router)
	})

	Describe("handleDetailProfile", func() {
		It("should return 200 with the profile detail", func() {
			account.DetailProfileFunc = func(sec *session.Context) (*account.ProfileDetail, error) {
				return &account.ProfileDetail{ID: 123, Name: "test", Nickname: "홍길동",
					AvatarURL: "/v1/account-avatars/123", Interests: []string{"요가"}}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/session-users/profile", nil)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`{"id":"123","name":"test","nickname":"홍길동",
				"avatarUrl":"/v1/account-avatars/123","interests":["요가"]}`))
		})
	})

	Describe("handleUpdateNickname", func() {
		It("should return 200 when update successful", func() {
			var payload *account.NicknameUpdating
			account.UpdateNicknameFunc = func(u *account.NicknameUpdating, sec *session.Context) error {
				payload = u
				return nil
			}

			req := httptest.NewRequest(http.MethodPut, "/v1/session-users/nickname",
				bytes.NewReader([]byte(`{"nickname":"홍길동"}`)))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`{}`))
			Expect(*payload).To(Equal(account.NicknameUpdating{Nickname: "홍길동"}))
		})

		It("should return 400 when binding failed", func() {
			var payload *account.NicknameUpdating
			account.UpdateNicknameFunc = func(u *account.NicknameUpdating, sec *session.Context) error {
				payload = u
				return nil
			}

			req := httptest.NewRequest(http.MethodPut, "/v1/session-users/nickname", bytes.NewReader([]byte(`{}`)))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(MatchJSON(`{
				"code":"common.bad_param",
				"message":"Key: 'NicknameUpdating.Nickname' Error:Field validation for 'Nickname' failed on the 'required' tag",
				"data":null}`))
			Expect(payload).To(BeNil())
		})

		It("should return 400 with the offending field when validation failed", func() {
			account.UpdateNicknameFunc = func(u *account.NicknameUpdating, sec *session.Context) error {
				return &bizerror.FieldValidationError{Field: "nickname", Message: "name must be at least 2 characters"}
			}

			req := httptest.NewRequest(http.MethodPut, "/v1/session-users/nickname",
				bytes.NewReader([]byte(`{"nickname":"a"}`)))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(MatchJSON(`{
				"code":"bad_request.validation_failed",
				"message":"name must be at least 2 characters",
				"data":{"field":"nickname"}}`))
		})
	})

	Describe("handleUpdateBasicAuth", func() {
		It("should return 200 when update successful", func() {
			var payload *account.BasicAuthUpdating
			account.UpdateBasicAuthSecretFunc = func(u *account.BasicAuthUpdating, sec *session.Context) error {
				payload = u
				return nil
			}

			req := httptest.NewRequest(http.MethodPut, "/v1/session-users/basic-auths", bytes.NewReader([]byte(
				`{"currentPassword":"12345678","newPassword":"new-secret1","confirmPassword":"new-secret1"}`)))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`{}`))
			Expect(*payload).To(Equal(account.BasicAuthUpdating{CurrentPassword: "12345678",
				NewPassword: "new-secret1", ConfirmPassword: "new-secret1"}))
		})

		It("should return 400 when the current password is wrong", func() {
			account.UpdateBasicAuthSecretFunc = func(u *account.BasicAuthUpdating, sec *session.Context) error {
				return bizerror.ErrInvalidPassword
			}

			req := httptest.NewRequest(http.MethodPut, "/v1/session-users/basic-auths", bytes.NewReader([]byte(
				`{"currentPassword":"12345678","newPassword":"new-secret1","confirmPassword":"new-secret1"}`)))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(MatchJSON(`{"code":"account.invalid_password","message":"invalid password","data":null}`))
		})
	})

	Describe("handleUpdateProfile", func() {
		It("should return 200 when the combined update successful", func() {
			var payload *account.ProfileUpdating
			account.UpdateProfileFunc = func(u *account.ProfileUpdating, sec *session.Context) error {
				payload = u
				return nil
			}

			req := httptest.NewRequest(http.MethodPut, "/v1/session-users/profile", bytes.NewReader([]byte(
				`{"nickname":"홍길동","interests":["요가","골프"]}`)))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`{}`))
			Expect(*payload).To(Equal(account.ProfileUpdating{Nickname: "홍길동", Interests: []string{"요가", "골프"}}))
		})
	})

	Describe("handleCreatePasswordRecovery", func() {
		It("should return 200 with the issued token", func() {
			var payload *account.RecoveryCreation
			account.CreatePasswordRecoveryFunc = func(c *account.RecoveryCreation) (*account.RecoveryTokenInfo, error) {
				payload = c
				return &account.RecoveryTokenInfo{Token: "token-1"}, nil
			}

			req := httptest.NewRequest(http.MethodPost, "/v1/password-recoveries",
				bytes.NewReader([]byte(`{"name":"aaa"}`)))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`{"token":"token-1"}`))
			Expect(*payload).To(Equal(account.RecoveryCreation{Name: "aaa"}))
		})
	})

	Describe("handleCompletePasswordRecovery", func() {
		It("should pass the path token through", func() {
			var gotToken string
			account.CompletePasswordRecoveryFunc = func(token string, c *account.RecoveryCompletion) error {
				gotToken = token
				return nil
			}

			req := httptest.NewRequest(http.MethodPut, "/v1/password-recoveries/token-1", bytes.NewReader([]byte(
				`{"newPassword":"new-secret1","confirmPassword":"new-secret1"}`)))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`{}`))
			Expect(gotToken).To(Equal("token-1"))
		})
	})
})
