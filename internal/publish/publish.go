// Package publish uploads run outputs to an S3-compatible bucket.
package publish

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ralt/pluginstats/internal/models"
	"github.com/sirupsen/logrus"
)

// Uploader stores a local file under an object key
type Uploader interface {
	UploadFile(ctx context.Context, bucket, key, filePath, contentType string) error
}

// minioUploader uploads through a minio client
type minioUploader struct {
	mc *minio.Client
}

func (u *minioUploader) UploadFile(ctx context.Context, bucket, key, filePath, contentType string) error {
	_, err := u.mc.FPutObject(ctx, bucket, key, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// Publisher uploads files of one run below a common prefix
type Publisher struct {
	cfg      models.PublishConfig
	uploader Uploader
}

// New creates a publisher backed by a minio client
func New(cfg models.PublishConfig) (*Publisher, error) {
	if cfg.Endpoint == "" {
		return nil, models.NewError(models.ErrPublish, cfg.Bucket, errors.New("endpoint is empty"))
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, models.NewError(models.ErrPublish, cfg.Endpoint, err)
	}
	return NewWithUploader(cfg, &minioUploader{mc: mc}), nil
}

// NewWithUploader creates a publisher using u for transfers
func NewWithUploader(cfg models.PublishConfig, u Uploader) *Publisher {
	return &Publisher{cfg: cfg, uploader: u}
}

// ObjectKey returns the key a file is stored under: prefix/runID/base
func (p *Publisher) ObjectKey(runID, file string) string {
	parts := []string{}
	if prefix := strings.Trim(p.cfg.Prefix, "/"); prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, runID, filepath.Base(file))
	return path.Join(parts...)
}

// Upload sends every file and returns the keys written, stopping at the
// first failure
func (p *Publisher) Upload(ctx context.Context, runID string, files []string) ([]string, error) {
	keys := make([]string, 0, len(files))
	for _, file := range files {
		key := p.ObjectKey(runID, file)
		if err := p.uploader.UploadFile(ctx, p.cfg.Bucket, key, file, ContentType(file)); err != nil {
			return keys, models.NewError(models.ErrPublish, key, err)
		}
		logrus.Debugf("Uploaded %s to %s/%s", file, p.cfg.Bucket, key)
		keys = append(keys, key)
	}
	logrus.Infof("Published %d files to %s", len(keys), p.cfg.Bucket)
	return keys, nil
}

// ContentType guesses a MIME type from the file extension
func ContentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".png":
		return "image/png"
	case ".asc":
		return "application/pgp-signature"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
