package media

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOConfig struct {
	Endpoint   string // host:port
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	PublicBase string
	Prefix     string
}

// MinIO sube el archivo a un bucket y devuelve su URL pública.
type MinIO struct {
	client     *minio.Client
	bucket     string
	publicBase string
	prefix     string
}

func NewMinIO(ctx context.Context, cfg MinIOConfig) (*MinIO, error) {
	c, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := c.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := c.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	base := strings.TrimRight(cfg.PublicBase, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.Endpoint
	}
	return &MinIO{client: c, bucket: cfg.Bucket, publicBase: base, prefix: cfg.Prefix}, nil
}

func (m *MinIO) Encode(ctx context.Context, f File, maxBytes int64) (string, error) {
	ct, err := check(f, maxBytes)
	if err != nil {
		return "", err
	}

	key := objectKey(m.prefix, f.Name)
	_, err = m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(f.Data), int64(len(f.Data)),
		minio.PutObjectOptions{ContentType: ct})
	if err != nil {
		return "", fmt.Errorf("media: put object: %w", err)
	}
	return publicURL(m.publicBase, m.bucket, key)
}

var nonSafe = regexp.MustCompile(`[^a-z0-9\-_.]+`)

func sanitizeFileName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = nonSafe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-_")
	if name == "" {
		name = "file"
	}
	return name
}

func objectKey(prefix, filename string) string {
	ext := path.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}
	base := sanitizeFileName(strings.TrimSuffix(filename, path.Ext(filename)))
	key := fmt.Sprintf("%s-%s%s", base, randomHex(4), strings.ToLower(ext))
	if p := strings.Trim(prefix, "/"); p != "" {
		key = p + "/" + key
	}
	return key
}

func publicURL(base, bucket, key string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("media: bad public base: %w", err)
	}
	u.Path = path.Join(u.Path, bucket, key)
	return u.String(), nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
