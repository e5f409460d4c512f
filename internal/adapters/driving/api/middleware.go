package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/logger"
)

// ownerKey is the gin context key holding the authenticated owner ID.
const ownerKey = "presentai.owner"

// corsMiddleware allows browser clients to call the API.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition", degradedHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

// requestLogger logs each request at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path += "?" + c.Request.URL.RawQuery
		}
		if last := c.Errors.Last(); last != nil {
			logger.Warn("%s %s -> %d (%s): %v", c.Request.Method, path, c.Writer.Status(), time.Since(start), last.Err)
			return
		}
		logger.Debug("%s %s -> %d (%s)", c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// authMiddleware resolves the request owner. With a secret configured it
// requires a valid HS256 bearer token and uses its subject claim.
func authMiddleware(secret, defaultOwner string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Set(ownerKey, defaultOwner)
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			abortWithError(c, http.StatusUnauthorized, domain.ErrAuthRequired)
			return
		}

		owner, err := ValidateToken(strings.TrimSpace(raw), secret)
		if err != nil {
			_ = c.Error(err)
			abortWithError(c, http.StatusUnauthorized, domain.ErrAuthInvalid)
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

// ValidateToken verifies an HS256 token and returns its subject.
func ValidateToken(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuthInvalid, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", domain.ErrAuthInvalid)
	}
	return claims.Subject, nil
}

// IssueToken signs an HS256 token for owner. A zero ttl issues a token
// that never expires.
func IssueToken(owner, secret string, ttl time.Duration) (string, error) {
	if owner == "" || secret == "" {
		return "", errors.New("owner and secret are required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  owner,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ownerFrom(c *gin.Context) string {
	return c.GetString(ownerKey)
}
