package service

import (
	"context"
	"errors"
	"math"
	"time"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this mobile number already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid mobile or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrUserNotFound         = errors.New("user not found")
)

// RegisterInput carries the registration form. Height is in centimeters,
// weight in kilograms.
type RegisterInput struct {
	Name      string
	Age       int
	Gender    string
	Mobile    string
	Password  string
	WeightKg  float64
	HeightCm  float64
	Lifestyle string
}

// ProfileUpdateInput carries the editable profile fields. RecommendedCal is
// optional; when zero the stored target is kept.
type ProfileUpdateInput struct {
	Name           string
	Age            int
	Gender         string
	WeightKg       float64
	HeightCm       float64
	Lifestyle      string
	RecommendedCal float64
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, mobile, password string) (token string, user *domain.User, err error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 24
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// activityFactors maps lifestyle to the multiplier applied to BMR.
var activityFactors = map[string]float64{
	domain.LifestyleSedentary:        1.2,
	domain.LifestyleModeratelyActive: 1.55,
	domain.LifestyleActive:           1.9,
}

// RecommendedCalories derives the daily calorie target from the
// Mifflin-St Jeor BMR and the lifestyle activity factor. Unknown lifestyles
// fall back to sedentary.
func RecommendedCalories(gender string, weightKg, heightCm float64, age int, lifestyle string) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "Male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	factor, ok := activityFactors[lifestyle]
	if !ok {
		factor = activityFactors[domain.LifestyleSedentary]
	}
	return math.Round(bmr * factor)
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Mobile == "" || input.Password == "" {
		return nil, errors.New("mobile and password cannot be empty")
	}
	if input.Age <= 0 || input.WeightKg <= 0 || input.HeightCm <= 0 {
		return nil, errors.New("age, weight, and height must be positive")
	}

	// Check if the mobile number is already registered.
	_, err := s.userRepo.GetByMobile(ctx, input.Mobile)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	recomCal := RecommendedCalories(input.Gender, input.WeightKg, input.HeightCm, input.Age, input.Lifestyle)

	user := &domain.User{
		Name:         input.Name,
		Age:          input.Age,
		Gender:       input.Gender,
		Mobile:       input.Mobile,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleMember,
		Health: domain.HealthDetails{
			WeightKg:       input.WeightKg,
			HeightCm:       input.HeightCm,
			Lifestyle:      input.Lifestyle,
			RecommendedCal: recomCal,
		},
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique mobile index closes the race between the existence
		// check and the insert.
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, mobile, password string) (token string, user *domain.User, err error) {
	if mobile == "" || password == "" {
		err = errors.New("mobile and password cannot be empty")
		return
	}

	user, err = s.userRepo.GetByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed
			return
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		user = nil
		return
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// GetProfile returns the account without its password hash.
func (s *authService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile overwrites the editable profile fields. An explicit
// RecommendedCal in the input wins; otherwise the stored target is kept.
func (s *authService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Age > 0 {
		user.Age = input.Age
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.WeightKg > 0 {
		user.Health.WeightKg = input.WeightKg
	}
	if input.HeightCm > 0 {
		user.Health.HeightCm = input.HeightCm
	}
	if input.Lifestyle != "" {
		user.Health.Lifestyle = input.Lifestyle
	}
	if input.RecommendedCal > 0 {
		user.Health.RecommendedCal = input.RecommendedCal
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "nutriwings",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
