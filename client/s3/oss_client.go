package s3

import (
	"context"
	"io"
	"os"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

var (
	AvatarBucket  *oss.Bucket
	GetObjectFunc func(ctx context.Context, key string, opts ...oss.Option) (io.ReadCloser, error)
	PutObjectFunc func(ctx context.Context, key string, r io.Reader, opts ...oss.Option) error
)

func Bootstrap() {
	var err error
	AvatarBucket, err = BuildBucketFromEnv()
	if err != nil {
		panic(err)
	}

	GetObjectFunc = GetObject
	PutObjectFunc = PutObject
}

func BuildBucketFromEnv() (*oss.Bucket, error) {
	endpoint := os.ExpandEnv(os.Getenv("OSS_ENDPOINT"))
	if endpoint == "" {
		endpoint = "dummy"
	}
	accessKey := os.Getenv("OSS_ACCESS_KEY")
	secretKey := os.Getenv("OSS_SECRET_KEY")
	bucket := os.Getenv("OSS_BUCKET")
	if bucket == "" {
		bucket = "mypage"
	}
	return BuildBucket(endpoint, accessKey, secretKey, bucket)
}

func BuildBucket(endpoint, accesskey, secretKey, bucketName string) (*oss.Bucket, error) {
	// endpoint http://oss-cn-hangzhou.aliyuncs.com
	cli, err := oss.New(endpoint, accesskey, secretKey)
	if err != nil {
		return nil, err
	}

	bucket, err := cli.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	return bucket, nil
}

func GetObject(ctx context.Context, key string, opts ...oss.Option) (io.ReadCloser, error) {
	var childSpan *opentracing.Span
	if ctx != nil {
		parentSpan := opentracing.SpanFromContext(ctx)
		if parentSpan != nil {
			tracer := parentSpan.Tracer()
			sp := tracer.StartSpan("get-object", opentracing.ChildOf(parentSpan.Context()))
			sp.SetTag("object-key", key)
			childSpan = &sp
			defer sp.Finish()
		}
	}

	r, err := AvatarBucket.GetObject(key, opts...)
	if childSpan != nil {
		ext.Error.Set(*childSpan, err != nil)
	}
	return r, err
}

func PutObject(ctx context.Context, key string, r io.Reader, opts ...oss.Option) error {
	var childSpan *opentracing.Span
	if ctx != nil {
		parentSpan := opentracing.SpanFromContext(ctx)
		if parentSpan != nil {
			tracer := parentSpan.Tracer()
			sp := tracer.StartSpan("put-object", opentracing.ChildOf(parentSpan.Context()))
			sp.SetTag("object-key", key)
			childSpan = &sp
			defer sp.Finish()
		}
	}

	err := AvatarBucket.PutObject(key, r, opts...)
	if childSpan != nil {
		ext.Error.Set(*childSpan, err != nil)
	}
	return err
}
