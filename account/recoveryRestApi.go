package account

import (
	"net/http"

	"mypage/bizerror"
	"mypage/notification"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathPasswordRecoveries = "/v1/password-recoveries"
)

func RegisterPasswordRecoveriesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathPasswordRecoveries, middleWares...)
	g.POST("", handleCreatePasswordRecovery)
	g.PUT(":token", handleCompletePasswordRecovery)
}

func handleCreatePasswordRecovery(c *gin.Context) {
	creation := RecoveryCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	info, err := CreatePasswordRecoveryFunc(&creation)
	if err != nil {
		panic(err)
	}
	notification.NotifyFunc("password recovery", "a recovery token has been issued")
	c.JSON(http.StatusOK, info)
}

func handleCompletePasswordRecovery(c *gin.Context) {
	completion := RecoveryCompletion{}
	if err := c.ShouldBindBodyWith(&completion, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := CompletePasswordRecoveryFunc(c.Param("token"), &completion); err != nil {
		panic(err)
	}
	notification.NotifyFunc("password recovery", "password has been reset")
	c.JSON(http.StatusOK, gin.H{})
}
