package middleware

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/gema-css-lab/internal/utils"
)

const (
	learnerIDKey = "user_id"
	bearerPrefix = "bearer "
	clockLeeway  = 30 * time.Second
)

var (
	errMissingAuthorization = errors.New("authorization header missing")
	errInvalidAuthorization = errors.New("invalid authorization header")
	errInvalidToken         = errors.New("invalid token")
)

// learnerClaimKeys are read in order; older tokens carry user_id or id
// instead of sub.
var learnerClaimKeys = []string{"sub", "user_id", "id"}

// tokenVerifier checks HMAC signed bearer tokens.
type tokenVerifier struct {
	parser *jwt.Parser
	key    []byte
}

func newTokenVerifier(secret string) *tokenVerifier {
	return &tokenVerifier{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
			jwt.WithLeeway(clockLeeway),
		),
		key: []byte(secret),
	}
}

// authenticate verifies the Authorization header and binds the learner id, if
// the token names one.
func (v *tokenVerifier) authenticate(c *fiber.Ctx) error {
	authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authorization == "" {
		return errMissingAuthorization
	}
	if len(authorization) < len(bearerPrefix) || !strings.EqualFold(authorization[:len(bearerPrefix)], bearerPrefix) {
		return errInvalidAuthorization
	}

	raw := strings.TrimSpace(authorization[len(bearerPrefix):])
	if raw == "" {
		return errInvalidToken
	}

	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	})
	if err != nil || !token.Valid {
		return errInvalidToken
	}

	if learnerID, ok := learnerFromClaims(claims); ok {
		c.Locals(learnerIDKey, learnerID)
	}
	return nil
}

// JWTProtected rejects requests without a valid bearer token.
func JWTProtected(secret string) fiber.Handler {
	verifier := newTokenVerifier(secret)
	return func(c *fiber.Ctx) error {
		if err := verifier.authenticate(c); err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
		}
		return c.Next()
	}
}

// JWTOptional lets anonymous requests through but rejects malformed or
// invalid bearer tokens.
func JWTOptional(secret string) fiber.Handler {
	verifier := newTokenVerifier(secret)
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Get(fiber.HeaderAuthorization)) == "" {
			return c.Next()
		}
		if err := verifier.authenticate(c); err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
		}
		return c.Next()
	}
}

// RequireLearner rejects requests whose token did not identify a learner.
func RequireLearner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := LearnerID(c); !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}

// LearnerID returns the learner bound to the request by the JWT middlewares.
func LearnerID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(learnerIDKey).(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

func learnerFromClaims(claims jwt.MapClaims) (uint, bool) {
	for _, key := range learnerClaimKeys {
		value, present := claims[key]
		if !present {
			continue
		}
		if id, err := parseLearnerID(value); err == nil && id > 0 {
			return id, true
		}
	}
	return 0, false
}

func parseLearnerID(value interface{}) (uint, error) {
	switch v := value.(type) {
	case float64:
		if v < 0 || v != math.Trunc(v) || v > math.MaxUint32 {
			return 0, fmt.Errorf("invalid learner id %v", v)
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("unsupported learner id type %T", value)
	}
}
