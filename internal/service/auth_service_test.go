package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/repository"
	"nutriwings/health-app/internal/service"
)

const testJWTSecret = "unit-test-secret"

func newAuthService(userRepo *MockUserRepo) service.AuthService {
	return service.NewAuthService(userRepo, testJWTSecret, time.Hour)
}

func registerForm() service.RegisterInput {
	return service.RegisterInput{
		Name:      "Asha",
		Age:       30,
		Gender:    "Female",
		Mobile:    "9876543210",
		Password:  "s3cret",
		WeightKg:  60,
		HeightCm:  165,
		Lifestyle: domain.LifestyleModeratelyActive,
	}
}

func TestRecommendedCalories(t *testing.T) {
	cases := []struct {
		name      string
		gender    string
		weightKg  float64
		heightCm  float64
		age       int
		lifestyle string
		want      float64
	}{
		// 10*80 + 6.25*180 - 5*25 + 5 = 1805; *1.2 = 2166
		{"sedentary male", "Male", 80, 180, 25, domain.LifestyleSedentary, 2166},
		// 10*60 + 6.25*165 - 5*30 - 161 = 1320.25; *1.55 = 2046.3875 -> 2046
		{"moderately active female", "Female", 60, 165, 30, domain.LifestyleModeratelyActive, 2046},
		// 10*80 + 6.25*180 - 5*25 + 5 = 1805; *1.9 = 3429.5 -> 3430
		{"active male", "Male", 80, 180, 25, domain.LifestyleActive, 3430},
		// Unknown lifestyle falls back to sedentary.
		{"unknown lifestyle", "Male", 80, 180, 25, "Couch Potato", 2166},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := service.RecommendedCalories(tc.gender, tc.weightKg, tc.heightCm, tc.age, tc.lifestyle)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates a member with a derived calorie target", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByMobile", mock.Anything, "9876543210").Return(nil, repository.ErrNotFound)

		var created *domain.User
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				// Snapshot the value at call time: the service clears the
				// hash on the same struct after Create returns.
				snapshot := *args.Get(1).(*domain.User)
				created = &snapshot
			}).
			Return(primitive.NewObjectID(), nil)

		svc := newAuthService(userRepo)
		user, err := svc.Register(context.Background(), registerForm())
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, domain.RoleMember, user.Role)
		assert.Equal(t, 2046.0, user.Health.RecommendedCal)
		// The stored hash verifies against the plaintext password.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret")))
		// The returned value never carries the hash.
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("duplicate mobile", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByMobile", mock.Anything, "9876543210").Return(memberUser(primitive.NewObjectID(), 60), nil)

		svc := newAuthService(userRepo)
		_, err := svc.Register(context.Background(), registerForm())
		assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive body stats", func(t *testing.T) {
		svc := newAuthService(new(MockUserRepo))
		form := registerForm()
		form.WeightKg = 0
		_, err := svc.Register(context.Background(), form)
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &domain.User{
		ID:           primitive.NewObjectID(),
		Mobile:       "9876543210",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}

	t.Run("valid credentials yield a signed token", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByMobile", mock.Anything, "9876543210").Return(stored, nil)

		svc := newAuthService(userRepo)
		token, user, err := svc.Login(context.Background(), "9876543210", "s3cret")
		require.NoError(t, err)
		assert.Empty(t, user.PasswordHash)

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte(testJWTSecret), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, stored.ID.Hex(), claims["uid"])
		assert.Equal(t, string(domain.RoleAdmin), claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByMobile", mock.Anything, "9876543210").Return(stored, nil)

		svc := newAuthService(userRepo)
		_, _, err := svc.Login(context.Background(), "9876543210", "wrong")
		assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	})

	t.Run("unknown mobile reads the same as a wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByMobile", mock.Anything, "0000000000").Return(nil, repository.ErrNotFound)

		svc := newAuthService(userRepo)
		_, _, err := svc.Login(context.Background(), "0000000000", "s3cret")
		assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	})
}

func TestUpdateProfile(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("zero-valued fields keep stored values", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		stored := memberUser(userID, 70)
		stored.Health.RecommendedCal = 2200
		userRepo.On("GetByID", mock.Anything, userID).Return(stored, nil)
		userRepo.On("UpdateProfile", mock.Anything, stored).Return(nil)

		svc := newAuthService(userRepo)
		user, err := svc.UpdateProfile(context.Background(), userID.Hex(), service.ProfileUpdateInput{
			WeightKg: 72,
		})
		require.NoError(t, err)

		assert.Equal(t, 72.0, user.Health.WeightKg)
		assert.Equal(t, 2200.0, user.Health.RecommendedCal)
		assert.Equal(t, "Asha", user.Name)
	})

	t.Run("malformed user id", func(t *testing.T) {
		svc := newAuthService(new(MockUserRepo))
		_, err := svc.UpdateProfile(context.Background(), "not-an-id", service.ProfileUpdateInput{})
		assert.ErrorIs(t, err, service.ErrInvalidID)
	})
}
