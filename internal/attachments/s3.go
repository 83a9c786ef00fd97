// Package attachments issues pre-signed upload URLs against the attachment
// bucket and removes objects once their owning entity is gone.
package attachments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrPresignFailed = errors.New("failed to presign attachment upload")

// ObjectPresigner is satisfied by *s3.PresignClient.
type ObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ObjectDeleter is satisfied by *s3.Client.
type ObjectDeleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type AttachmentService interface {
	UploadUrl(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type AttachmentS3Service struct {
	Presigner ObjectPresigner
	Deleter   ObjectDeleter
	Bucket    string
	ExpiresIn time.Duration
}

func NewAttachmentS3Service(client *s3.Client, bucket string, expiresIn time.Duration) *AttachmentS3Service {
	return &AttachmentS3Service{
		Presigner: s3.NewPresignClient(client),
		Deleter:   client,
		Bucket:    bucket,
		ExpiresIn: expiresIn,
	}
}

func (as *AttachmentS3Service) UploadUrl(ctx context.Context, key string) (string, error) {
	req, err := as.Presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(as.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(as.ExpiresIn))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPresignFailed, err)
	}
	return req.URL, nil
}

func (as *AttachmentS3Service) Delete(ctx context.Context, key string) error {
	_, err := as.Deleter.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(as.Bucket),
		Key:    aws.String(key),
	})
	return err
}

// PublicUrl drops the signing query string, leaving the object's address.
func PublicUrl(signedUrl string) string {
	base, _, _ := strings.Cut(signedUrl, "?")
	return base
}
