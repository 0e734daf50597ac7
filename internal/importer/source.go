package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	cos "github.com/tencentyun/cos-go-sdk-v5"

	apperrors "github.com/graphscale/graphscale/pkg/errors"
)

// BatchSource resolves a table reference's underlying Arrow IPC stream,
// grounded on the teacher's Storage interface (Download/Exists), narrowed
// to the single operation the scanner needs: open a readable stream.
type BatchSource interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// LocalBatchSource reads Arrow IPC files from a local filesystem
// directory, mirroring the teacher's LocalStorage.Download.
type LocalBatchSource struct {
	baseDir string
}

func NewLocalBatchSource(baseDir string) *LocalBatchSource {
	return &LocalBatchSource{baseDir: baseDir}
}

func (s *LocalBatchSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path := s.baseDir + string(os.PathSeparator) + key
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageError, fmt.Sprintf("open local batch %q", key), err)
	}
	return f, nil
}

// COSConfig mirrors the teacher's COSConfig for object-storage batch
// sourcing.
type COSConfig struct {
	Bucket    string
	Region    string
	SecretID  string
	SecretKey string
	Domain    string
	Scheme    string
}

// COSBatchSource resolves Arrow IPC batch files from a Tencent Cloud COS
// bucket, grounded on the teacher's COSStorage.Download.
type COSBatchSource struct {
	client *cos.Client
}

func NewCOSBatchSource(cfg COSConfig) (*COSBatchSource, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, apperrors.New(apperrors.CodeConfigError, "bucket and region are required for COS batch source")
	}
	if cfg.SecretID == "" || cfg.SecretKey == "" {
		return nil, apperrors.New(apperrors.CodeConfigError, "credentials are required for COS batch source")
	}

	domain := cfg.Domain
	if domain == "" {
		domain = "myqcloud.com"
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "https"
	}

	bucketURL, err := url.Parse(fmt.Sprintf("%s://%s.cos.%s.%s", scheme, cfg.Bucket, cfg.Region, domain))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigError, "parse COS bucket URL", err)
	}
	serviceURL, err := url.Parse(fmt.Sprintf("%s://cos.%s.%s", scheme, cfg.Region, domain))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigError, "parse COS service URL", err)
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL, ServiceURL: serviceURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
		},
	})
	return &COSBatchSource{client: client}, nil
}

func (s *COSBatchSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	resp, err := s.client.Object.Get(ctx, key, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageError, fmt.Sprintf("download COS batch %q", key), err)
	}
	return resp.Body, nil
}
