package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
	"github.com/Dosada05/sports-portal/storage"
)

// GalleryInput carries either an external ImageURL or, on create, an uploaded file.
type GalleryInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Category    string `json:"category" validate:"omitempty,max=60"`
	Description string `json:"description"`
}

type GalleryService interface {
	Create(ctx context.Context, input GalleryInput, img *ImageUpload) (*models.GalleryItem, error)
	GetByID(ctx context.Context, id int) (*models.GalleryItem, error)
	List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.GalleryItem], error)
	Update(ctx context.Context, id int, input GalleryInput, img *ImageUpload) (*models.GalleryItem, error)
	Delete(ctx context.Context, id int) error
}

type galleryService struct {
	galleryRepo repositories.GalleryRepository
	uploader    storage.FileUploader
	logger      *slog.Logger
}

func NewGalleryService(galleryRepo repositories.GalleryRepository, uploader storage.FileUploader, logger *slog.Logger) GalleryService {
	return &galleryService{galleryRepo: galleryRepo, uploader: uploader, logger: logger}
}

var galleryErrors = errMapping{
	{repositories.ErrGalleryItemNotFound, ErrGalleryItemNotFound},
}

func hasImage(img *ImageUpload) bool {
	return img != nil && img.Reader != nil
}

func (s *galleryService) Create(ctx context.Context, input GalleryInput, img *ImageUpload) (*models.GalleryItem, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	item := &models.GalleryItem{
		Title:       strings.TrimSpace(input.Title),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Category:    strings.TrimSpace(input.Category),
		Description: input.Description,
	}

	// Файл имеет приоритет над ссылкой
	switch {
	case hasImage(img):
		uploaded, err := uploadImage(ctx, s.uploader, "gallery", img)
		if err != nil {
			return nil, err
		}
		item.ImageURL = uploaded.Location
		item.ImageKey = &uploaded.Key
	case item.ImageURL == "":
		return nil, ErrImageRequired
	}

	if err := s.galleryRepo.Create(ctx, item); err != nil {
		deleteImage(ctx, s.uploader, s.logger, item.ImageKey)
		return nil, fmt.Errorf("failed to create gallery item: %w", err)
	}
	return item, nil
}

func (s *galleryService) GetByID(ctx context.Context, id int) (*models.GalleryItem, error) {
	item, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, galleryErrors.translate(err, "get gallery item %d", id)
	}
	return item, nil
}

func (s *galleryService) List(ctx context.Context, filter models.ListFilter) (*models.ListResult[models.GalleryItem], error) {
	filter = normalizePaging(filter)
	items, total, err := s.galleryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery: %w", err)
	}
	return newListResult(items, total, filter), nil
}

func (s *galleryService) Update(ctx context.Context, id int, input GalleryInput, img *ImageUpload) (*models.GalleryItem, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Title = strings.TrimSpace(input.Title)
	item.Category = strings.TrimSpace(input.Category)
	item.Description = input.Description

	var staleKey *string
	switch url := strings.TrimSpace(input.ImageURL); {
	case hasImage(img):
		uploaded, err := uploadImage(ctx, s.uploader, "gallery", img)
		if err != nil {
			return nil, err
		}
		staleKey = item.ImageKey
		item.ImageURL, item.ImageKey = uploaded.Location, &uploaded.Key
	case url != "" && url != item.ImageURL:
		staleKey = item.ImageKey
		item.ImageURL, item.ImageKey = url, nil
	}

	if err := s.galleryRepo.Update(ctx, item); err != nil {
		if hasImage(img) {
			// откатываем только что загруженный файл
			deleteImage(ctx, s.uploader, s.logger, item.ImageKey)
		}
		return nil, galleryErrors.translate(err, "update gallery item %d", id)
	}
	deleteImage(ctx, s.uploader, s.logger, staleKey)
	return item, nil
}

func (s *galleryService) Delete(ctx context.Context, id int) error {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		return galleryErrors.translate(err, "delete gallery item %d", id)
	}
	deleteImage(ctx, s.uploader, s.logger, item.ImageKey)
	return nil
}
