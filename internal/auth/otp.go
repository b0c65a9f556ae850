package auth

import (
	"context"
	"errors"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/ydvSajal/Vibe-beats/internal/cache"
	"github.com/ydvSajal/Vibe-beats/internal/config"
)

// ErrCodeInvalid is returned when a login code is wrong, expired, or
// was never issued.
var ErrCodeInvalid = errors.New("invalid or expired code")

// OTPManager issues and verifies single-use email login codes.
// Codes are 6-digit TOTP values generated from a throwaway secret;
// only a bcrypt hash of the code is stored (in Redis, with TTL), so a
// cache dump never exposes usable codes. Verification consumes the
// hash, making each code one-shot.
type OTPManager struct {
	cache  *cache.RedisCache
	issuer string
	ttl    time.Duration
}

func NewOTPManager(c *cache.RedisCache, cfg *config.Config) *OTPManager {
	return &OTPManager{
		cache:  c,
		issuer: cfg.Auth.OTPIssuer,
		ttl:    cfg.Auth.OTPTTL,
	}
}

// Issue generates a fresh login code for the given email and stores
// its hash. The plaintext code is returned to the caller for delivery;
// issuing again overwrites any previous pending code.
func (m *OTPManager) Issue(ctx context.Context, email string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      m.issuer,
		AccountName: email,
	})
	if err != nil {
		return "", err
	}

	code, err := totp.GenerateCode(key.Secret(), time.Now())
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	if err := m.cache.Set(ctx, m.cache.KeyForOTPSecret(email), string(hash), m.ttl); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks a submitted code against the pending hash and consumes
// it on success.
func (m *OTPManager) Verify(ctx context.Context, email, code string) error {
	cacheKey := m.cache.KeyForOTPSecret(email)

	hash, err := m.cache.Get(ctx, cacheKey)
	if errors.Is(err, redis.Nil) {
		return ErrCodeInvalid
	} else if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return ErrCodeInvalid
	}

	// single use
	_ = m.cache.Del(ctx, cacheKey)
	return nil
}
