package testinfra

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"time"

	"mypage/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

func ExecuteRequest(req *http.Request, engine *gin.Engine) (int, string, *http.Response) {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	resp := w.Result()
	defer resp.Body.Close()
	bodyBytes, _ := ioutil.ReadAll(resp.Body)
	return resp.StatusCode, string(bodyBytes), resp
}

// BuildSecCtx build a signed-in session context
func BuildSecCtx(uid types.ID, name string) *session.Context {
	return &session.Context{Token: uuid.New().String(),
		Identity: session.Identity{ID: uid, Name: name}, SigningTime: time.Now()}
}

// SignIn register the session context in the token cache and return a cookie
// carrying its token
func SignIn(secCtx *session.Context) *http.Cookie {
	session.TokenCache.Set(secCtx.Token, secCtx, cache.DefaultExpiration)
	return &http.Cookie{Name: session.KeySecToken, Value: secCtx.Token}
}
