package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Store persists uploaded objects and returns a URL clients can fetch them from.
type Store interface {
	Put(ctx context.Context, folder, ext string, r io.Reader) (string, error)
}

// New picks the store for driver ("cloudinary" or "local").
func New(driver, cloudinaryURL, localDir, localBaseURL string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "cloudinary":
		if cloudinaryURL == "" {
			return nil, errors.New("CLOUDINARY_URL is required for the cloudinary storage driver")
		}
		return NewCloudinaryStore(cloudinaryURL)
	case "", "local":
		return NewLocalStore(localDir, localBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("storage: init cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Put(ctx context.Context, folder, _ string, r io.Reader) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("storage: cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("storage: cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("storage: cloudinary returned no url")
	}
	return res.SecureURL, nil
}

// LocalStore writes files under baseDir/folder/YYYY/MM and serves them from baseURL.
type LocalStore struct {
	baseDir string
	baseURL string
}

func NewLocalStore(baseDir, baseURL string) *LocalStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if baseURL == "" {
		baseURL = "/static/uploads"
	}
	return &LocalStore{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) BaseDir() string { return s.baseDir }

func (s *LocalStore) Put(_ context.Context, folder, ext string, r io.Reader) (string, error) {
	now := time.Now()
	relDir := filepath.Join(folder, fmt.Sprintf("%d/%02d", now.Year(), now.Month()))
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create dir: %w", err)
	}

	name := uuid.NewString() + ext
	absPath := filepath.Join(absDir, name)
	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("storage: write file: %w", err)
	}

	rel := filepath.ToSlash(filepath.Join(relDir, name))
	return s.baseURL + "/" + rel, nil
}
