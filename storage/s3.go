package storage

import (
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Storage struct {
	Bucket   Bucket
	s3Client s3iface.S3API
}

func NewS3Storage(bucket Bucket) StorageAPI {
	return &S3Storage{
		Bucket:   bucket,
		s3Client: bucket.CreateSVC(),
	}
}

// EnsureDirExists checks the bucket is reachable. Buckets are never created here.
func (s *S3Storage) EnsureDirExists() error {
	_, err := s.s3Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(s.Bucket.Name),
	})
	return err
}

func (s *S3Storage) Save(name string, reader io.Reader) (int64, error) {
	counter := &countingReader{Reader: reader}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.Bucket.Name),
		Key:         aws.String(s.Bucket.GetRemotePath(name)),
		ContentType: aws.String(mimeTypeOf(name)),
		Body:        counter,
	})
	return counter.n, err
}

func (s *S3Storage) Serve(name string, request *http.Request, writer http.ResponseWriter) {
	name = CleanName(name)
	if name == "" {
		http.NotFound(writer, request)
		return
	}
	resp, err := s.s3Client.GetObjectWithContext(request.Context(), &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket.Name),
		Key:    aws.String(s.Bucket.GetRemotePath(name)),
	})
	if err != nil {
		log.Printf("S3 GetObject %s: %v", name, err)
		http.NotFound(writer, request)
		return
	}
	defer resp.Body.Close()
	if resp.ContentType != nil {
		writer.Header().Set("Content-Type", *resp.ContentType)
	}
	if resp.ContentLength != nil {
		writer.Header().Set("Content-Length", strconv.FormatInt(*resp.ContentLength, 10))
	}
	writer.WriteHeader(http.StatusOK)
	_, _ = io.Copy(writer, resp.Body)
}

func (s *S3Storage) Location() string {
	return "s3://" + s.Bucket.Name + "/" + s.Bucket.GetRemotePath("")
}

func mimeTypeOf(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

type countingReader struct {
	io.Reader
	n int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.n += int64(n)
	return n, err
}
