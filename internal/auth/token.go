/* 관리자 JWT 토큰 생성 및 검증 */

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"MedAI_LandingSite/internal/models"
)

const issuer = "medai-landing-api"

var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims 구조체 정의, JWT 페이로드에 사용자명 포함
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Manager struct {
	key   []byte
	ttl   time.Duration
	admin models.AdminUser
	now   func() time.Time
}

func NewManager(secret string, ttl time.Duration, admin models.AdminUser) *Manager {
	return &Manager{
		key:   []byte(secret),
		ttl:   ttl,
		admin: admin,
		now:   time.Now,
	}
}

// HashPassword는 bcrypt 해시를 반환
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Login checks the admin credentials and issues a token.
func (m *Manager) Login(username, password string) (string, error) {
	if m.admin.Username == "" || m.admin.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if username != m.admin.Username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return m.GenerateToken(username)
}

// JWT 토큰 생성
func (m *Manager) GenerateToken(username string) (string, error) {
	now := m.now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   "admin_auth_token",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// JWT 토큰 검증
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Username != m.admin.Username {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
