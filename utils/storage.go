package utils

import (
	"bytes"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// PhotoStorage uploads guest review photos to an S3-compatible bucket.
type PhotoStorage struct {
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

func (s *PhotoStorage) client() *s3.S3 {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(s.Region),
		Endpoint:    aws.String(s.Endpoint),
		Credentials: credentials.NewStaticCredentials(s.AccessKey, s.SecretKey, ""),
	}))
	return s3.New(sess)
}

// Enabled reports whether storage credentials are configured.
func (s *PhotoStorage) Enabled() bool {
	return s != nil && s.Bucket != "" && s.AccessKey != ""
}

// UploadReviewPhoto stores one photo under reviews/ and returns its public URL.
func (s *PhotoStorage) UploadReviewPhoto(file []byte, fileName, contentType string) (string, error) {
	key := path.Join("reviews", fileName)

	_, err := s.client().PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload photo to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s", s.PublicBaseURL, key), nil
}
