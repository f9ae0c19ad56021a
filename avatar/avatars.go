package avatar

import (
	"context"
	"encoding/base64"
	"io"
	"io/ioutil"
	"strings"

	"mypage/bizerror"
	"mypage/client/s3"
	"mypage/session"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/fundwit/go-commons/types"
)

// 1x1 transparent png, served while an account has no uploaded image yet.
const defaultAvatarBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

var defaultAvatar []byte

func init() {
	var err error
	defaultAvatar, err = base64.StdEncoding.DecodeString(defaultAvatarBase64)
	if err != nil {
		panic(err)
	}
}

type ImageUpdating struct {
	Image string `json:"image" binding:"required"`
}

var (
	DetailAvatarFunc = DetailAvatar
	CreateAvatarFunc = CreateAvatar
)

func DefaultAvatar() []byte {
	return defaultAvatar
}

// DetailAvatar returns the stored avatar of an account, or the default
// placeholder when none has been uploaded.
func DetailAvatar(ctx context.Context, id types.ID) ([]byte, error) {
	r, err := s3.GetObjectFunc(ctx, "avatars/"+id.String()+".png")
	if err != nil {
		if serErr, ok := err.(oss.ServiceError); ok && serErr.Code == "NoSuchKey" {
			return defaultAvatar, nil
		}
		return nil, err
	}
	defer r.Close()
	return ioutil.ReadAll(r)
}

// CreateAvatar replaces the stored avatar wholesale. Concurrent uploads for
// the same account race on the object key, last write wins.
func CreateAvatar(ctx context.Context, id types.ID, r io.Reader, sec *session.Context) error {
	if sec == nil || id != sec.Identity.ID {
		return bizerror.ErrForbidden
	}

	return s3.PutObjectFunc(ctx, "avatars/"+id.String()+".png", r)
}

// DecodeDataURL extracts the content of a base64 data URL, the transport
// form a browser file picker produces.
func DecodeDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, &bizerror.FieldValidationError{Field: "image", Message: "not a data URL"}
	}
	idx := strings.Index(dataURL, ",")
	if idx < 0 || !strings.HasSuffix(dataURL[:idx], ";base64") {
		return nil, &bizerror.FieldValidationError{Field: "image", Message: "not a base64 data URL"}
	}
	content, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, &bizerror.FieldValidationError{Field: "image", Message: "malformed base64 content"}
	}
	return content, nil
}
