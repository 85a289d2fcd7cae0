package provider

import (
	"bytes"
	"context"
	"io"
	"math"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"sahayak/internal/domain"
	"sahayak/internal/pkg/storage"
)

const (
	MaxAvatarSize = 5 * 1024 * 1024 // 5 MB
	avatarFolder  = "sahayak/avatars"
)

var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Service struct {
	providers Repository
	ratings   RatingSummary
	store     storage.Store
	log       *zap.Logger
}

func NewService(providers Repository, ratings RatingSummary, store storage.Store, log *zap.Logger) *Service {
	return &Service{providers: providers, ratings: ratings, store: store, log: log}
}

func (s *Service) List(ctx context.Context, categoryID string, page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	list, total, err := s.providers.List(ctx, categoryID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.ServiceProvider{}
	}
	return &ListResponse{Providers: list, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) GetPublicProfile(ctx context.Context, id string) (*PublicProfile, error) {
	p, err := s.providers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ids, err := s.providers.ServiceIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	avg, n, err := s.ratings.ProviderSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return &PublicProfile{
		Provider:      p,
		ServiceIDs:    ids,
		AverageRating: math.Round(avg*10) / 10,
		RatingCount:   n,
	}, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*domain.ServiceProvider, error) {
	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		updates["name"] = name
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Experience != nil {
		updates["experience"] = *req.Experience
	}
	if len(updates) > 0 {
		if err := s.providers.UpdateProfile(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.providers.GetByID(ctx, id)
}

// UploadAvatar sniffs the image type from the first 512 bytes, stores the
// file and points the provider's image_url at it.
func (s *Service) UploadAvatar(ctx context.Context, id string, size int64, r io.Reader) (*domain.ServiceProvider, error) {
	if size == 0 {
		return nil, ErrEmptyFile
	}
	if size > MaxAvatarSize {
		return nil, ErrFileTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	if n == 0 {
		return nil, ErrEmptyFile
	}
	head = head[:n]

	mimeType := strings.Split(http.DetectContentType(head), ";")[0]
	ext, ok := allowedAvatarTypes[mimeType]
	if !ok {
		return nil, ErrInvalidMimeType
	}

	url, err := s.store.Put(ctx, avatarFolder, ext, io.MultiReader(bytes.NewReader(head), r))
	if err != nil {
		s.log.Error("avatar upload failed", zap.String("provider_id", id), zap.Error(err))
		return nil, err
	}
	if err := s.providers.SetImageURL(ctx, id, url); err != nil {
		return nil, err
	}

	s.log.Info("avatar updated", zap.String("provider_id", id), zap.String("url", url))
	return s.providers.GetByID(ctx, id)
}
