package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var (
	// ErrNotFound is returned when the object does not exist.
	ErrNotFound = errors.New("loader: object not found")

	// ErrTooLarge is returned when an object exceeds the size limit.
	ErrTooLarge = errors.New("loader: object too large")
)

// ObjectAPI is the subset of the S3 client used by S3.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Object is a loaded object.
type Object struct {
	Key          string
	Body         []byte
	ContentType  string
	ETag         string
	Metadata     map[string]string
	LastModified time.Time
}

// PutInput describes an object to store.
type PutInput struct {
	Key         string
	Body        []byte
	ContentType string
	Metadata    map[string]string
}

// S3 loads and stores objects under a key prefix of one bucket.
type S3 struct {
	client  ObjectAPI
	bucket  string
	prefix  string
	maxSize int64
}

// NewS3 creates an S3 loader.
//
// Parameters:
//   - client: S3 client from aws-sdk-go-v2 (or any ObjectAPI)
//   - bucket: S3 bucket name
//   - prefix: Key prefix prepended to every key (e.g., "content/")
func NewS3(client ObjectAPI, bucket, prefix string) *S3 {
	return &S3{client: client, bucket: bucket, prefix: prefix}
}

// NewS3FromConfig builds the client from the default AWS configuration
// chain, overriding the region when one is given.
func NewS3FromConfig(ctx context.Context, bucket, region, prefix string) (*S3, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return NewS3(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// WithMaxSize limits the size of loaded objects (0 = no limit).
func (s *S3) WithMaxSize(n int64) *S3 {
	s.maxSize = n
	return s
}

// Bucket returns the bucket name.
func (s *S3) Bucket() string {
	return s.bucket
}

// Load fetches the object stored under key. It has the shape of a resource
// loader keyed by a string source.
func (s *S3) Load(ctx context.Context, key string) (Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return Object{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return Object{}, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer out.Body.Close()

	var r io.Reader = out.Body
	if s.maxSize > 0 {
		r = io.LimitReader(out.Body, s.maxSize+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return Object{}, fmt.Errorf("s3 read %s: %w", key, err)
	}
	if s.maxSize > 0 && int64(len(body)) > s.maxSize {
		return Object{}, fmt.Errorf("%w: %s", ErrTooLarge, key)
	}

	obj := Object{
		Key:         key,
		Body:        body,
		ContentType: aws.ToString(out.ContentType),
		ETag:        aws.ToString(out.ETag),
		Metadata:    out.Metadata,
	}
	if out.LastModified != nil {
		obj.LastModified = *out.LastModified
	}
	return obj, nil
}

// Text loads key as a string.
func (s *S3) Text(ctx context.Context, key string) (string, error) {
	obj, err := s.Load(ctx, key)
	if err != nil {
		return "", err
	}
	return string(obj.Body), nil
}

// Put stores an object and returns its ETag. It has the shape of an action
// mutator.
func (s *S3) Put(ctx context.Context, in PutInput) (string, error) {
	if s.maxSize > 0 && int64(len(in.Body)) > s.maxSize {
		return "", fmt.Errorf("%w: %s", ErrTooLarge, in.Key)
	}
	input := &s3.PutObjectInput{
		Bucket:   aws.String(s.bucket),
		Key:      aws.String(s.prefix + in.Key),
		Body:     bytes.NewReader(in.Body),
		Metadata: in.Metadata,
	}
	if in.ContentType != "" {
		input.ContentType = aws.String(in.ContentType)
	}
	out, err := s.client.PutObject(ctx, input)
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", in.Key, err)
	}
	return aws.ToString(out.ETag), nil
}

// JSON returns a loader decoding the object under key as JSON into T.
//
// Example:
//
//	settings := resource.New(scope, userID, loader.JSON[Settings](store))
func JSON[T any](s *S3) func(context.Context, string) (T, error) {
	return func(ctx context.Context, key string) (T, error) {
		var v T
		obj, err := s.Load(ctx, key)
		if err != nil {
			return v, err
		}
		if err := json.Unmarshal(obj.Body, &v); err != nil {
			return v, fmt.Errorf("decoding %s: %w", key, err)
		}
		return v, nil
	}
}
