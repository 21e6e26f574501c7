// Package scoring implements the two business functions behind the API
// methods: the memoized user score and the client interests lookup.
package scoring

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/scoring-api/internal/domain"
	"github.com/phrazzld/scoring-api/internal/platform/logger"
	"github.com/phrazzld/scoring-api/internal/store"
)

// ScoreTTL is how long a computed score stays in the cache.
const ScoreTTL = time.Hour

const (
	scoreKeyPrefix     = "uid:"
	interestsKeyPrefix = "i:"
	birthdayKeyLayout  = "20060102"
)

// Input carries the fields a score is computed from. Zero values mean the
// field was not supplied.
type Input struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  *time.Time
	Gender    int
}

// InputFromRequest converts validated online_score arguments.
func InputFromRequest(req *domain.ScoreRequest) Input {
	in := Input{Birthday: req.Birthday}
	if req.FirstName != nil {
		in.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		in.LastName = *req.LastName
	}
	if req.Email != nil {
		in.Email = *req.Email
	}
	if req.Phone != nil {
		in.Phone = *req.Phone
	}
	if req.Gender != nil {
		in.Gender = *req.Gender
	}
	return in
}

// ScoreKey returns the cache key of in.
func ScoreKey(in Input) string {
	var b strings.Builder
	b.WriteString(in.FirstName)
	b.WriteString(in.LastName)
	b.WriteString(in.Phone)
	if in.Birthday != nil {
		b.WriteString(in.Birthday.Format(birthdayKeyLayout))
	}
	sum := md5.Sum([]byte(b.String()))
	return scoreKeyPrefix + hex.EncodeToString(sum[:])
}

// Compute returns the score of in without consulting the cache.
func Compute(in Input) float64 {
	var score float64
	if in.Phone != "" {
		score += 1.5
	}
	if in.Email != "" {
		score += 1.5
	}
	if in.Birthday != nil && in.Gender != domain.GenderUnknown {
		score += 1.5
	}
	if in.FirstName != "" && in.LastName != "" {
		score += 0.5
	}
	return score
}

// GetScore returns the score of in, preferring a non-zero cached value.
// The cache is best effort: failures are logged and the score is computed.
func GetScore(ctx context.Context, cache store.Cache, in Input) float64 {
	log := logger.FromContextOrDefault(ctx, slog.Default())
	key := ScoreKey(in)

	cached, ok, err := cache.CacheGet(ctx, key)
	switch {
	case err != nil:
		log.Warn("score cache read failed", "key", key, "error", err)
	case ok:
		if v, perr := strconv.ParseFloat(cached, 64); perr == nil && v != 0 {
			return v
		}
	}

	score := Compute(in)

	value := strconv.FormatFloat(score, 'f', -1, 64)
	if err := cache.CacheSet(ctx, key, value, ScoreTTL); err != nil {
		log.Warn("score cache write failed", "key", key, "error", err)
	}
	return score
}

// InterestsKey returns the store key holding the interests of client cid.
func InterestsKey(cid int) string {
	return interestsKeyPrefix + strconv.Itoa(cid)
}

// GetInterests returns the interests of client cid. A missing key yields an
// empty list; store failures are returned to the caller.
func GetInterests(ctx context.Context, r store.Reader, cid int) ([]string, error) {
	raw, ok, err := r.Get(ctx, InterestsKey(cid))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	var interests []string
	if err := json.Unmarshal([]byte(raw), &interests); err != nil {
		return nil, fmt.Errorf("invalid interests for client %d: %w", cid, err)
	}
	if interests == nil {
		interests = []string{}
	}
	return interests, nil
}
