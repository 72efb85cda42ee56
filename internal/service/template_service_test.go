package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/repository"
	"nutriwings/health-app/internal/service"
)

func newTemplateService() (*MockTemplateRepo, *MockFileStorage, service.TemplateService) {
	templateRepo := new(MockTemplateRepo)
	fileStorage := new(MockFileStorage)
	return templateRepo, fileStorage, service.NewTemplateService(templateRepo, fileStorage)
}

func TestCreateTemplate(t *testing.T) {
	t.Run("stores a catalog entry", func(t *testing.T) {
		templateRepo, _, svc := newTemplateService()
		templateRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.WorkoutTemplate")).
			Return(primitive.NewObjectID(), nil)

		template, err := svc.CreateTemplate(context.Background(), service.TemplateInput{
			Name:     "Incline Dumbbell Press",
			Category: "Chest",
		})
		require.NoError(t, err)
		assert.Equal(t, "Chest", template.Category)
		assert.False(t, template.ID.IsZero())
	})

	t.Run("name and category are mandatory", func(t *testing.T) {
		templateRepo, _, svc := newTemplateService()
		_, err := svc.CreateTemplate(context.Background(), service.TemplateInput{Name: "Rows"})
		assert.ErrorIs(t, err, service.ErrTemplateValidation)
		templateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateTemplate_PartialFields(t *testing.T) {
	templateRepo, _, svc := newTemplateService()
	templateID := primitive.NewObjectID()

	stored := &domain.WorkoutTemplate{
		ID:       templateID,
		Name:     "Incline Dumbbell Press",
		Category: "Chest",
		ImageURL: "https://assets.example.com/incline.png",
	}
	templateRepo.On("GetByID", mock.Anything, templateID).Return(stored, nil)
	templateRepo.On("Update", mock.Anything, stored).Return(nil)

	updated, err := svc.UpdateTemplate(context.Background(), templateID, service.TemplateInput{Category: "Upper Chest"})
	require.NoError(t, err)
	assert.Equal(t, "Upper Chest", updated.Category)
	assert.Equal(t, "Incline Dumbbell Press", updated.Name)
	assert.Equal(t, "https://assets.example.com/incline.png", updated.ImageURL)
}

func TestDeleteTemplate_Missing(t *testing.T) {
	templateRepo, _, svc := newTemplateService()
	templateID := primitive.NewObjectID()
	templateRepo.On("Delete", mock.Anything, templateID).Return(repository.ErrNotFound)

	err := svc.DeleteTemplate(context.Background(), templateID)
	assert.ErrorIs(t, err, service.ErrTemplateNotFound)
}

func TestTemplateImageUploadURL(t *testing.T) {
	_, fileStorage, svc := newTemplateService()
	fileStorage.On("GeneratePresignedUploadURL", mock.Anything, mock.Anything, "image/png", mock.Anything).
		Return("https://assets.example.com/presigned", nil)

	ticket, err := svc.TemplateImageUploadURL(context.Background(), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ticket.ObjectKey, "template-images/"))
	assert.True(t, strings.HasSuffix(ticket.ObjectKey, ".png"))
}
