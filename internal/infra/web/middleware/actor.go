package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingToken = errors.New("authorization header required")

// Claims identify the back-office operator behind a request.
type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type ActorAuth struct {
	secret []byte
	log    logger.Logger
}

func NewActorAuth(secret string, log logger.Logger) *ActorAuth {
	return &ActorAuth{secret: []byte(secret), log: log}
}

// Handler rejects requests without a valid HS256 bearer token and records
// the operator as the audit actor.
func (a *ActorAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.Parse(r.Header.Get("Authorization"))
		if err != nil {
			a.log.Warn(r.Context(), "unauthenticated request",
				logger.String("path", r.URL.Path),
				logger.WithError(err),
			)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		req := operation.RequestFrom(r.Context())
		uid := claims.UserID
		req.ActorUserID = &uid
		req.ActorRole = claims.Role
		next.ServeHTTP(w, r.WithContext(operation.WithRequest(r.Context(), req)))
	})
}

func (a *ActorAuth) Parse(header string) (*Claims, error) {
	if header == "" {
		return nil, ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return nil, errors.New("invalid authorization header format")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims.UserID <= 0 {
		return nil, errors.New("token carries no operator id")
	}
	return claims, nil
}

// Sign issues a token for the given operator. Used by tooling and tests.
func (a *ActorAuth) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}
