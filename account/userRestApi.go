package account

import (
	"net/http"

	"mypage/bizerror"
	"mypage/notification"
	"mypage/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathSessionUsers = "/v1/session-users"
)

func RegisterSessionUsersRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathSessionUsers, middleWares...)
	g.GET("/profile", handleDetailProfile)
	g.PUT("/profile", handleUpdateProfile)
	g.PUT("/nickname", handleUpdateNickname)
	g.PUT("/basic-auths", handleUpdateBasicAuth)
}

func handleDetailProfile(c *gin.Context) {
	detail, err := DetailProfileFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, detail)
}

func handleUpdateNickname(c *gin.Context) {
	updating := NicknameUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateNicknameFunc(&updating, session.FindSecurityContext(c)); err != nil {
		panic(err)
	}
	notification.NotifyFunc("profile updated", "nickname has been changed")
	c.JSON(http.StatusOK, gin.H{})
}

func handleUpdateBasicAuth(c *gin.Context) {
	updating := BasicAuthUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateBasicAuthSecretFunc(&updating, session.FindSecurityContext(c)); err != nil {
		panic(err)
	}
	notification.NotifyFunc("password changed", "password has been updated")
	c.JSON(http.StatusOK, gin.H{})
}

func handleUpdateProfile(c *gin.Context) {
	updating := ProfileUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateProfileFunc(&updating, session.FindSecurityContext(c)); err != nil {
		panic(err)
	}
	notification.NotifyFunc("profile updated", "profile changes have been saved")
	c.JSON(http.StatusOK, gin.H{})
}
