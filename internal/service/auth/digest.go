package auth

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/phrazzld/scoring-api/internal/config"
	"github.com/phrazzld/scoring-api/internal/domain"
)

// adminHourLayout formats the UTC hour mixed into the admin digest.
const adminHourLayout = "2006010215"

// TokenChecker verifies the token carried by a method request.
type TokenChecker interface {
	// Check reports whether req.Token equals the expected digest.
	Check(req *domain.MethodRequest) bool

	// Verify is Check reporting a mismatch as ErrInvalidToken.
	Verify(req *domain.MethodRequest) error

	// Digest computes the token a caller must send for req.
	Digest(req *domain.MethodRequest) string

	// IsAdmin reports whether req was made with the admin login.
	IsAdmin(req *domain.MethodRequest) bool
}

// digestChecker derives tokens from SHA-512 digests of salted request fields.
type digestChecker struct {
	adminLogin string
	adminSalt  string
	salt       string
	timeFunc   func() time.Time // Injectable for testing
}

// Ensure digestChecker implements TokenChecker
var _ TokenChecker = (*digestChecker)(nil)

// NewTokenChecker creates a TokenChecker from the auth configuration.
func NewTokenChecker(cfg config.AuthConfig) TokenChecker {
	return NewTokenCheckerWithClock(cfg, time.Now)
}

// NewTokenCheckerWithClock is NewTokenChecker with an explicit clock.
func NewTokenCheckerWithClock(cfg config.AuthConfig, now func() time.Time) TokenChecker {
	return &digestChecker{
		adminLogin: cfg.AdminLogin,
		adminSalt:  cfg.AdminSalt,
		salt:       cfg.Salt,
		timeFunc:   now,
	}
}

// Digest returns the hex SHA-512 expected as the request token.
//
// Admin tokens rotate every hour: they hash the current UTC hour
// (YYYYMMDDHH) with the admin salt. Other tokens hash account, login and
// the shared salt; a null account or login counts as an empty string.
func (c *digestChecker) Digest(req *domain.MethodRequest) string {
	var payload string
	if c.IsAdmin(req) {
		payload = c.timeFunc().UTC().Format(adminHourLayout) + c.adminSalt
	} else {
		payload = req.AccountOrEmpty() + req.LoginOrEmpty() + c.salt
	}
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Check compares the request token with the expected digest in constant time.
// A null token never matches.
func (c *digestChecker) Check(req *domain.MethodRequest) bool {
	if req.Token == nil {
		return false
	}
	expected := c.Digest(req)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(*req.Token)) == 1
}

// Verify returns ErrInvalidToken when Check fails.
func (c *digestChecker) Verify(req *domain.MethodRequest) error {
	if !c.Check(req) {
		return ErrInvalidToken
	}
	return nil
}

// IsAdmin reports whether req was made with the configured admin login.
func (c *digestChecker) IsAdmin(req *domain.MethodRequest) bool {
	return req.IsAdmin(c.adminLogin)
}
