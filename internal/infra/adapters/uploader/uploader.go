// uploader publishes the generated feed to AWS S3 (aws-sdk-go v1)
// and can show a unified diff against the published copy first.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sa6mwa/chapterpod/internal/app/humanreadable"
	"github.com/sa6mwa/chapterpod/internal/app/model"
	"github.com/sa6mwa/chapterpod/internal/app/ports"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/differ"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
)

var (
	ErrNilPointerRequest error = errors.New("received nil pointer as request")
	ErrFilenameMissing   error = errors.New("empty or missing filename given")
	ErrBucketMissing     error = errors.New("empty or missing bucket given")
)

// RSSContentType is what the feed is stored as unless the request
// says otherwise.
const RSSContentType = "application/rss+xml"

type forUploading struct {
	session *session.Session
	out     io.Writer
}

// New returns an S3 uploader using the profile and region of p. The
// diff is written to os.Stdout.
func New(p model.PublishConfig) ports.ForUploading {
	opts := session.Options{
		Profile:           p.Profile,
		SharedConfigState: session.SharedConfigEnable,
	}
	if p.Region != "" {
		opts.Config = aws.Config{Region: aws.String(p.Region)}
	}
	return &forUploading{
		session: session.Must(session.NewSessionWithOptions(opts)),
		out:     os.Stdout,
	}
}

func s3url(bucket, key string) string {
	return "s3://" + path.Join(bucket, key)
}

func contentType(filename string) (string, error) {
	mimetype.SetLimit(1024 * 1024)
	m, err := mimetype.DetectFile(filename)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// Upload r.From as r.To to the r.Store bucket. An empty ContentType
// is detected from the file in r.From, an empty StorageClass means
// STANDARD.
func (u *forUploading) Upload(ctx context.Context, r *ports.ForUploadingRequest) error {
	l := logger.FromContext(ctx)
	if r == nil {
		return ErrNilPointerRequest
	}
	if strings.TrimSpace(r.From) == "" {
		return ErrFilenameMissing
	}
	if strings.TrimSpace(r.Store) == "" {
		return ErrBucketMissing
	}
	if strings.TrimSpace(r.ContentType) == "" {
		var err error
		if r.ContentType, err = contentType(r.From); err != nil {
			return err
		}
	}
	if strings.TrimSpace(r.To) == "" {
		r.To = path.Base(r.From)
	}
	if r.StorageClass == "" {
		r.StorageClass = s3.StorageClassStandard
	}
	fi, err := os.Stat(r.From)
	if err != nil {
		return err
	}
	l.Info("Uploading to S3", "file", r.From, "to", s3url(r.Store, r.To), "contentType", r.ContentType, "storageClass", r.StorageClass, "size", humanreadable.IEC(fi.Size()))
	f, err := os.Open(r.From)
	if err != nil {
		return err
	}
	defer f.Close()
	result, err := s3manager.NewUploader(u.session).UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(r.Store),
		Key:          aws.String(r.To),
		ContentType:  aws.String(r.ContentType),
		Body:         f,
		StorageClass: aws.String(r.StorageClass),
	})
	if err != nil {
		return err
	}
	l.Info("Upload succeeded", "location", result.Location)
	return nil
}

// Diff downloads key from bucket and writes a unified diff between it
// and fileToDiff. A key that does not exist yet is skipped.
func (u *forUploading) Diff(ctx context.Context, bucket, key, fileToDiff string) error {
	l := logger.FromContext(ctx)
	local, err := os.ReadFile(fileToDiff)
	if err != nil {
		return err
	}
	remote := s3url(bucket, key)
	buf := aws.NewWriteAtBuffer([]byte{})
	size, err := s3manager.NewDownloader(u.session).DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) {
			switch awsErr.Code() {
			case "NotFound", s3.ErrCodeNoSuchKey:
				l.Info("Nothing to diff against", "file", fileToDiff, "path", remote)
				return nil
			}
		}
		return err
	}
	l.Debug("Downloaded published feed", "path", remote, "size", humanreadable.IEC(size))
	diff := differ.Unified(remote, fileToDiff, string(buf.Bytes()), string(local))
	if diff == "" {
		l.Info("Published feed is identical", "path", remote)
		return nil
	}
	l.Info("Diff follows", "from", remote, "to", fileToDiff)
	_, err = fmt.Fprintln(u.out, diff)
	return err
}
