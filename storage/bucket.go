package storage

import (
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Bucket describes a S3 (or compatible) bucket used instead of the local directory
type Bucket struct {
	Name     string
	Region   string
	Prefix   string // Key prefix, e.g. "static/images"
	Endpoint string // Empty for AWS
	S3Key    string
	S3Secret string
}

func (b *Bucket) GetRemotePath(name string) string {
	prefix := strings.Trim(b.Prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func (b *Bucket) CreateSVC() *s3.S3 {
	cfg := aws.NewConfig().WithRegion(b.Region)
	if b.S3Key != "" {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(b.S3Key, b.S3Secret, ""))
	}
	if b.Endpoint != "" {
		cfg = cfg.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	return s3.New(session.Must(session.NewSession(cfg)))
}
