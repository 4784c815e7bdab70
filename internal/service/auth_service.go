package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/edubel/exemption-gateway/pkg/config"
	appErrors "github.com/edubel/exemption-gateway/pkg/errors"

	"github.com/edubel/exemption-gateway/internal/models"
)

// AuthService issues session tokens for students. The directory is an
// in-memory stand-in, the institution's identity provider is out of scope.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	ValidateToken(tokenString string) (*models.JWTClaims, error)
	Student(studentID string) (*models.Student, error)
}

type authService struct {
	cfg      config.JWTConfig
	students map[string]models.Student
	logger   *zap.Logger
}

// NewAuthService builds the mock session service over a fixed student set.
func NewAuthService(cfg config.JWTConfig, students []models.Student, logger *zap.Logger) AuthService {
	index := make(map[string]models.Student, len(students))
	for _, student := range students {
		index[strings.ToLower(student.Email)] = student
	}
	return &authService{cfg: cfg, students: index, logger: logger}
}

// SeedStudents returns the built-in directory used when none is configured.
// Password for every account is "changeme".
func SeedStudents() []models.Student {
	hash, _ := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	return []models.Student{
		{ID: "s-1001", Email: "alice.dupont@student.example.be", FirstName: "Alice", LastName: "Dupont", PasswordHash: string(hash)},
		{ID: "s-1002", Email: "bruno.lambert@student.example.be", FirstName: "Bruno", LastName: "Lambert", PasswordHash: string(hash)},
	}
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	student, ok := s.students[strings.ToLower(req.Email)]
	if !ok {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	now := time.Now()
	claims := models.JWTClaims{
		StudentID: student.ID,
		Email:     student.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   student.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "sign session token")
	}

	s.logger.Sugar().Infow("student logged in", "student_id", student.ID)
	return &models.LoginResponse{Token: signed, Student: student}, nil
}

func (s *authService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) Student(studentID string) (*models.Student, error) {
	for _, student := range s.students {
		if student.ID == studentID {
			return &student, nil
		}
	}
	return nil, appErrors.ErrNotFound
}
