package api

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"

	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MiddlewareAuth authenticates collaborator services against the configured
// service credentials. Collaborators exchange basic credentials for a bearer
// token once and present the token on every call after.
type MiddlewareAuth struct{}

var authenticator auth.Authenticator
var cache store.Cache

// Middleware adds some basic header authentication around accessing the routes
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		service, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugf("Service %s Authenticated\n", service.UserName())
		next.ServeHTTP(w, r)
	})
}

// CreateToken returns a bearer token for an authenticated collaborator
// service, plus a signed JWT collaborators can use to verify offline.
func (m MiddlewareAuth) CreateToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	serviceName, _, ok := r.BasicAuth()
	if !ok {
		http.Error(w, "basic auth failed", http.StatusUnauthorized)
		return
	}

	token := uuid.New().String()
	authService := auth.NewDefaultUser(serviceName, token, nil, nil)
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Append(tokenStrategy, token, authService, r)

	response := map[string]string{
		"token":   token,
		"service": serviceName,
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) > 0 {
		claims := jwt.MapClaims{
			"sub": serviceName,
			"iat": time.Now().Unix(),
			"exp": time.Now().Add(24 * time.Hour).Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
		if err != nil {
			http.Error(w, "failed to sign token", http.StatusInternalServerError)
			return
		}
		response["jwt"] = signed
	}

	responseBody, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}

	w.Write(responseBody)
}

// SetupGoGuardian sets up the go-guardian middleware
func (m MiddlewareAuth) SetupGoGuardian() {
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), time.Hour*24)
	basicStrategy := basic.New(m.ValidateService, cache)
	tokenStrategy := bearer.New(bearer.NoOpAuthenticate, cache)

	authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// ValidateService checks the collaborator's name and key against the
// configured credentials. The key hash comes from SERVICE_KEY_HASH so the
// plaintext key never lives in the environment.
func (m MiddlewareAuth) ValidateService(ctx context.Context, r *http.Request, serviceName, key string) (auth.Info, error) {
	expectedName := os.Getenv("SERVICE_NAME")
	keyHash := os.Getenv("SERVICE_KEY_HASH")
	if expectedName == "" || keyHash == "" {
		return nil, fmt.Errorf("service credentials not configured")
	}

	nameHash := sha256.Sum256([]byte(serviceName))
	expectedNameHash := sha256.Sum256([]byte(expectedName))
	nameMatch := subtle.ConstantTimeCompare(nameHash[:], expectedNameHash[:]) == 1

	err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to compare service key")
	}

	if nameMatch {
		return auth.NewDefaultUser(serviceName, "1", nil, nil), nil
	}
	return nil, fmt.Errorf("invalid credentials")
}

// RevokeToken revokes a token
func RevokeToken(w http.ResponseWriter, r *http.Request) {
	reqToken := r.Header.Get("Authorization")
	splitToken := strings.Split(reqToken, "Bearer ")
	if len(splitToken) < 2 {
		http.Error(w, "missing bearer token", http.StatusBadRequest)
		return
	}
	reqToken = splitToken[1]

	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Revoke(tokenStrategy, reqToken, r)
	body := fmt.Sprintf(`{"revoked token": "%s"}`, reqToken)
	w.Write([]byte(body))
}
