package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ndcacricket/registration-system/models"
	"github.com/ndcacricket/registration-system/repositories"
	"github.com/ndcacricket/registration-system/storage"
)

type NewsService interface {
	Publish(ctx context.Context, input PublishNewsInput) (*models.NewsItem, error)
	List(ctx context.Context) ([]models.NewsItem, error)
	GetByID(ctx context.Context, id int) (*models.NewsItem, error)
	Patch(ctx context.Context, id int, input PatchNewsInput) (*models.NewsItem, error)
	Delete(ctx context.Context, id int) error
}

type PublishNewsInput struct {
	Headline        string
	Description     string
	PublicationDate string
	Category        string
	Image1          *UploadedFile
	Image2          *UploadedFile
	Image3          *UploadedFile
}

// PatchNewsInput is a partial update: empty text fields count as absent and
// are excluded from the statement entirely, leaving the stored value
// untouched. Image slots follow the merge rule instead — a new upload
// replaces the slot, no upload keeps it.
type PatchNewsInput struct {
	Headline    string
	Description string
	Category    string
	Image1      *UploadedFile
	Image2      *UploadedFile
	Image3      *UploadedFile
}

type newsService struct {
	news    repositories.NewsRepository
	uploads *storage.UploadStore
	feed    LiveFeed
	logger  *slog.Logger
}

func NewNewsService(
	news repositories.NewsRepository,
	uploads *storage.UploadStore,
	feed LiveFeed,
	logger *slog.Logger,
) NewsService {
	return &newsService{
		news:    news,
		uploads: uploads,
		feed:    feed,
		logger:  logger,
	}
}

func (s *newsService) Publish(ctx context.Context, input PublishNewsInput) (*models.NewsItem, error) {
	images := []*UploadedFile{input.Image1, input.Image2, input.Image3}
	paths := make([]*string, len(images))
	var err error
	for i, img := range images {
		paths[i], err = saveUpload(ctx, s.uploads, storage.OpNewsCreate, img)
		if err != nil {
			return nil, err
		}
	}

	item := &models.NewsItem{
		Headline:        input.Headline,
		Description:     input.Description,
		PublicationDate: input.PublicationDate,
		Category:        input.Category,
		Image1:          paths[0],
		Image2:          paths[1],
		Image3:          paths[2],
	}

	if err := s.news.Create(ctx, item); err != nil {
		logOrphanedUploads(s.logger, err, paths...)
		return nil, fmt.Errorf("failed to create news item: %w", err)
	}

	if s.feed != nil {
		s.feed.Publish("news_published", map[string]any{"id": item.ID, "headline": item.Headline})
	}
	return item, nil
}

func (s *newsService) List(ctx context.Context) ([]models.NewsItem, error) {
	return s.news.List(ctx)
}

func (s *newsService) GetByID(ctx context.Context, id int) (*models.NewsItem, error) {
	item, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return item, nil
}

// Patch updates only the supplied fields. A request carrying nothing
// patchable fails before the store is touched.
func (s *newsService) Patch(ctx context.Context, id int, input PatchNewsInput) (*models.NewsItem, error) {
	patch := repositories.NewsPatch{}
	if input.Headline != "" {
		patch.Headline = &input.Headline
	}
	if input.Description != "" {
		patch.Description = &input.Description
	}
	if input.Category != "" {
		patch.Category = &input.Category
	}

	images := []*UploadedFile{input.Image1, input.Image2, input.Image3}
	slots := []**string{&patch.Image1, &patch.Image2, &patch.Image3}
	for i, img := range images {
		path, err := saveUpload(ctx, s.uploads, storage.OpNewsUpdate, img)
		if err != nil {
			return nil, err
		}
		*slots[i] = path
	}

	if patch.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.news.UpdateFields(ctx, id, patch); err != nil {
		logOrphanedUploads(s.logger, err, patch.Image1, patch.Image2, patch.Image3)
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to update news item %d: %w", id, err)
	}

	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.feed != nil {
		s.feed.Publish("news_updated", map[string]any{"id": item.ID, "headline": item.Headline})
	}
	return item, nil
}

func (s *newsService) Delete(ctx context.Context, id int) error {
	err := s.news.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNewsNotFound) {
		return ErrNewsNotFound
	}
	return err
}
