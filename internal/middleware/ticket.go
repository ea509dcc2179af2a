package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hackswipe/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTicketTTL bounds how long a websocket ticket can wait before it is redeemed.
const DefaultTicketTTL = 60 * time.Second

var (
	ErrTicketInvalid = errors.New("invalid or expired ticket")
	ErrTicketUsed    = errors.New("ticket already used")
)

// TicketIssuer signs short-lived, single-use tickets that authenticate websocket upgrades.
// Browsers cannot attach an Authorization header to a websocket handshake.
type TicketIssuer struct {
	secret []byte
	ttl    time.Duration
	rdb    *redis.Client
	now    func() time.Time
}

// NewTicketIssuer builds an issuer. When rdb is nil tickets are still verified but may be replayed until expiry.
func NewTicketIssuer(secret string, ttl time.Duration, rdb *redis.Client) *TicketIssuer {
	if ttl <= 0 {
		ttl = DefaultTicketTTL
	}
	return &TicketIssuer{secret: []byte(secret), ttl: ttl, rdb: rdb, now: time.Now}
}

// TTL returns the ticket lifetime.
func (t *TicketIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue returns a signed ticket for userID.
func (t *TicketIssuer) Issue(userID string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign ticket: %w", err)
	}
	return signed, nil
}

// Redeem validates the ticket, burns its id and returns the user it was issued for.
func (t *TicketIssuer) Redeem(ctx context.Context, ticket string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(ticket, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.Subject == "" || claims.ID == "" {
		return "", ErrTicketInvalid
	}

	if t.rdb != nil {
		ok, err := t.rdb.SetNX(ctx, "ws_ticket_used:"+claims.ID, claims.Subject, t.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("burn ticket: %w", err)
		}
		if !ok {
			return "", ErrTicketUsed
		}
	}

	return claims.Subject, nil
}

// TicketRequired authenticates a request from the ?ticket= query parameter.
func TicketRequired(issuer *TicketIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ticket := c.Query("ticket")
		if ticket == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthenticatedError())
		}

		userID, err := issuer.Redeem(c.UserContext(), ticket)
		if err != nil {
			if errors.Is(err, ErrTicketInvalid) || errors.Is(err, ErrTicketUsed) {
				return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthenticatedError())
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}

		c.Locals("userID", userID)
		c.SetUserContext(WithUserID(c.UserContext(), userID))
		return c.Next()
	}
}
