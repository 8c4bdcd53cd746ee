package authenticator

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const issuer = "campusboard"

var ErrTokenExpired = errors.New("token is expired")

type standardClaims struct {
	jwt.RegisteredClaims
	Object json.RawMessage `json:"obj,omitempty"`
}

type jwtTokenEngine struct {
	secret []byte
}

func NewTokenEngine(secret string) *jwtTokenEngine {
	return &jwtTokenEngine{secret: []byte(secret)}
}

func (e *jwtTokenEngine) Generate(expiration time.Duration, obj any) (string, error) {
	b, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := standardClaims{
		Object: b,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(e.secret)
}

func (e *jwtTokenEngine) Verify(token string, obj any) error {
	var claims standardClaims
	_, err := jwt.ParseWithClaims(
		token, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return e.secret, nil
		},
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}

	if err != nil {
		return err
	}

	if !claims.VerifyIssuer(issuer, true) {
		return fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}

	return json.Unmarshal(claims.Object, obj)
}
