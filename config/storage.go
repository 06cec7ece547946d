package config

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// AvatarURLExpiry is the lifetime of the presigned URLs handed out for display
const AvatarURLExpiry = time.Hour

// avatarScheme prefixes the bucket references stored in profiles
const avatarScheme = "s3://"

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Config holds S3 client and bucket info
type S3Config struct {
	BucketName string
	client     objectPutter
	presigner  objectPresigner
}

// NewS3Config initializes the S3 client for avatar uploads.
// It returns nil when no bucket is configured.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	if cfg.S3BucketName == "" {
		return nil, nil
	}

	// Load AWS config from environment or shared config
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)

	return &S3Config{
		BucketName: cfg.S3BucketName,
		client:     client,
		presigner:  s3.NewPresignClient(client),
	}, nil
}

// UploadAvatar stores an avatar image for the user and returns a stable
// s3://<bucket>/<key> reference suitable for saving in the profile.
// Use AvatarURL to turn the reference into a fetchable link.
func (s *S3Config) UploadAvatar(ctx context.Context, userID int64, filename, contentType string, size int64, body io.Reader) (string, error) {
	key := AvatarObjectKey(userID, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.BucketName),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return avatarScheme + s.BucketName + "/" + key, nil
}

// AvatarURL resolves a stored avatar reference for display. References to
// this bucket are presigned on every call; anything else is returned as is.
func (s *S3Config) AvatarURL(ctx context.Context, ref string) (string, error) {
	if s == nil {
		return ref, nil
	}
	key, ok := strings.CutPrefix(ref, avatarScheme+s.BucketName+"/")
	if !ok || key == "" {
		return ref, nil
	}
	return s.GeneratePresignedURL(ctx, key, AvatarURLExpiry)
}

// GeneratePresignedURL generates a presigned URL for the given object key with the specified expiration time
func (s *S3Config) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	presignedURL, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}

// AvatarObjectKey builds the object key avatars/<userID>/<uuid><ext>
func AvatarObjectKey(userID int64, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), ext)
}
