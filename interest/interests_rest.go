package interest

import (
	"net/http"

	"mypage/bizerror"
	"mypage/notification"
	"mypage/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathSessionUserInterests = "/v1/session-users/interests"
	PathInterestCatalog      = "/v1/interest-catalog"
)

func RegisterInterestsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathSessionUserInterests, middleWares...)
	g.GET("", handleQueryInterests)
	g.PUT("", handleReplaceInterests)
	g.POST("/toggles", handleToggleInterest)
}

func RegisterInterestCatalogRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathInterestCatalog, middleWares...)
	g.GET("", handleQueryCatalog)
}

func handleQueryCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, Catalog)
}

func handleQueryInterests(c *gin.Context) {
	names, err := QueryInterestsFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, names)
}

func handleReplaceInterests(c *gin.Context) {
	replacing := SelectionReplacing{}
	if err := c.ShouldBindBodyWith(&replacing, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := ReplaceInterestsFunc(replacing, session.FindSecurityContext(c)); err != nil {
		panic(err)
	}
	notification.NotifyFunc("profile updated", "interest categories have been saved")
	c.JSON(http.StatusOK, gin.H{})
}

func handleToggleInterest(c *gin.Context) {
	toggle := InterestToggle{}
	if err := c.ShouldBindBodyWith(&toggle, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := ToggleInterestFunc(toggle, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	notification.NotifyFunc("profile updated", "interest category has been toggled")
	c.JSON(http.StatusOK, result)
}
