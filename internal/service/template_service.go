package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/repository"
	"nutriwings/health-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound   = errors.New("workout template not found")
	ErrTemplateValidation = errors.New("workout template validation failed")
)

// TemplateInput carries the fields an admin sets on a catalog entry.
type TemplateInput struct {
	Name     string
	Category string
	ImageURL string
}

// TemplateService manages the admin-curated catalog of workout templates
// members pick exercises from.
type TemplateService interface {
	CreateTemplate(ctx context.Context, input TemplateInput) (*domain.WorkoutTemplate, error)
	GetTemplate(ctx context.Context, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error)
	ListTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error)
	UpdateTemplate(ctx context.Context, templateID primitive.ObjectID, input TemplateInput) (*domain.WorkoutTemplate, error)
	DeleteTemplate(ctx context.Context, templateID primitive.ObjectID) error
	TemplateImageUploadURL(ctx context.Context, contentType string) (*ImageUploadTicket, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
	fileStorage  storage.FileStorage
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(templateRepo repository.TemplateRepository, fileStorage storage.FileStorage) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		fileStorage:  fileStorage,
	}
}

func (s *templateService) CreateTemplate(ctx context.Context, input TemplateInput) (*domain.WorkoutTemplate, error) {
	if input.Name == "" || input.Category == "" {
		return nil, ErrTemplateValidation
	}

	template := &domain.WorkoutTemplate{
		Name:      input.Name,
		Category:  input.Category,
		ImageURL:  input.ImageURL,
		CreatedAt: time.Now().UTC(),
	}

	templateID, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, err
	}
	template.ID = templateID
	return template, nil
}

func (s *templateService) GetTemplate(ctx context.Context, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTemplateNotFound
	}
	return template, err
}

func (s *templateService) ListTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	return s.templateRepo.GetAll(ctx)
}

func (s *templateService) UpdateTemplate(ctx context.Context, templateID primitive.ObjectID, input TemplateInput) (*domain.WorkoutTemplate, error) {
	template, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		template.Name = input.Name
	}
	if input.Category != "" {
		template.Category = input.Category
	}
	if input.ImageURL != "" {
		template.ImageURL = input.ImageURL
	}

	if err := s.templateRepo.Update(ctx, template); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, templateID primitive.ObjectID) error {
	err := s.templateRepo.Delete(ctx, templateID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTemplateNotFound
	}
	return err
}

// TemplateImageUploadURL hands the admin client a presigned PUT URL so the
// catalog image goes straight to object storage.
func (s *templateService) TemplateImageUploadURL(ctx context.Context, contentType string) (*ImageUploadTicket, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidImageType
	}

	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("template-images", fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &ImageUploadTicket{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}
