package sessions

import (
	"net/http"
	"time"

	"mypage/bizerror"
	"mypage/session"

	"github.com/gin-gonic/gin"
)

func RegisterSessionRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/session", middleWares...)
	g.GET("", DetailSessionSecurityContext)
}

// DetailSessionSecurityContext renews the session on read as long as the
// token has not expired yet.
func DetailSessionSecurityContext(c *gin.Context) {
	sec := session.FindSecurityContext(c)

	now := time.Now()
	ttl := session.TokenExpiration - now.Sub(sec.SigningTime)
	if ttl > 0 {
		securityContext := session.Context{Token: sec.Token, Identity: sec.Identity, SigningTime: now}
		session.TokenCache.Set(sec.Token, &securityContext, ttl)
		c.JSON(http.StatusOK, &securityContext)
	} else {
		panic(bizerror.ErrUnauthenticated)
	}
}
