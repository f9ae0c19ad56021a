package avatar

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"mypage/bizerror"
	"mypage/misc"
	"mypage/notification"
	"mypage/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	APIAccountAvatarsRoot = "/v1/account-avatars"
)

func RegisterAvatarsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(APIAccountAvatarsRoot, middleWares...)
	g.GET(":id", HandleGetAvatar)
	g.POST(":id", HandleCreateAvatar)
}

func HandleGetAvatar(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	content, err := DetailAvatarFunc(c.Request.Context(), id)
	if err != nil {
		panic(err)
	}

	c.Data(http.StatusOK, "image/png", content)
}

// HandleCreateAvatar accepts either a multipart file upload or a JSON body
// carrying a base64 data URL.
func HandleCreateAvatar(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	var content io.Reader
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, err := c.FormFile("file")
		if err != nil {
			panic(&bizerror.ErrBadParam{Cause: err})
		}
		src, err := file.Open()
		if err != nil {
			panic(err)
		}
		defer src.Close()
		content = src
	} else {
		updating := ImageUpdating{}
		if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
			panic(&bizerror.ErrBadParam{Cause: err})
		}
		decoded, err := DecodeDataURL(updating.Image)
		if err != nil {
			panic(err)
		}
		content = bytes.NewReader(decoded)
	}

	if err := CreateAvatarFunc(c.Request.Context(), id, content, session.FindSecurityContext(c)); err != nil {
		panic(err)
	}

	notification.NotifyFunc("profile updated", "profile image has been changed")
	c.JSON(http.StatusOK, gin.H{})
}
