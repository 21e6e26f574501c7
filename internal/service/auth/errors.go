package auth

import (
	"fmt"

	"github.com/phrazzld/scoring-api/internal/domain"
)

// Common authentication service errors
var (
	// ErrInvalidToken indicates the supplied token does not match the expected digest
	ErrInvalidToken = fmt.Errorf("invalid authentication token: %w", domain.ErrUnauthorized)
)
