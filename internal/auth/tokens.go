package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload. VesselID is only set for boarding operators and
// reflects the assignment at issue time; services re-check the database
// before trusting it.
type Claims struct {
	UserID   int64       `json:"uid"`
	Role     domain.Role `json:"rol"`
	VesselID *int64      `json:"embarcacion_id,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 access tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}

	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs an access token for the user.
func (m *Manager) Issue(u *domain.User) (string, time.Time, error) {
	const op = "auth.Manager.Issue"

	now := m.now().UTC()
	exp := now.Add(m.ttl)

	claims := Claims{
		UserID:   u.ID,
		Role:     u.Role,
		VesselID: u.VesselID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s:%w", op, err)
	}

	return signed, exp, nil
}

// Verify parses and validates a token string, rejecting any signing method
// other than HS256.
//
// Returns:
//   - error: auth.ErrInvalidToken for any malformed, forged or expired token.
func (m *Manager) Verify(token string) (*Claims, error) {
	const op = "auth.Manager.Verify"

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidToken)
	}

	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidToken)
	}

	return &claims, nil
}
