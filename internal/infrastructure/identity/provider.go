// Package identity implements the identity provider contract over a MongoDB
// credentials collection: bcrypt password hashes, HS256 tokens as the opaque
// identity reference, and a channel-based identity-change stream.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
)

const (
	credentialsCollection = "credentials"
	minPasswordLength     = 6
	eventBuffer           = 16
)

// RevocationList is the remote session-clearing hook: sign-out denylists the
// issued token for its remaining lifetime.
type RevocationList interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// Provider authenticates credentials and publishes identity-change events.
type Provider struct {
	coll      *mongo.Collection
	revoker   RevocationList
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	events    chan ports.IdentityEvent
}

// NewProvider builds a Provider. revoker may be nil, in which case sign-out
// only clears locally. A non-positive tokenTTL defaults to 24h.
func NewProvider(db *mongo.Database, revoker RevocationList, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *Provider {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Provider{
		coll:      db.Collection(credentialsCollection),
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		events:    make(chan ports.IdentityEvent, eventBuffer),
	}
}

type credentialDoc struct {
	ID           string `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	CreatedAt    int64  `bson:"created_at"`
}

// Subscribe returns the identity-change stream. Events are delivered in the
// order they happened and are never coalesced.
func (p *Provider) Subscribe() <-chan ports.IdentityEvent {
	return p.events
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	var doc credentialDoc
	err := p.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	identity, err := p.issue(doc.ID, doc.Email)
	if err != nil {
		return nil, err
	}
	p.emit(identity)
	return identity, nil
}

func (p *Provider) CreateCredential(ctx context.Context, email, password string) (*domain.Identity, error) {
	if len(password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if err := p.coll.FindOne(ctx, bson.M{"email": email}).Err(); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	doc := credentialDoc{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC().Unix(),
	}
	if _, err := p.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailInUse
		}
		return nil, fmt.Errorf("insert credential: %w", err)
	}

	identity, err := p.issue(doc.ID, email)
	if err != nil {
		return nil, err
	}
	p.emit(identity)
	return identity, nil
}

// SignOut denylists the identity's token for its remaining lifetime and
// emits the signed-out event. The event fires even when revocation fails:
// remote failure must never block local session clearing.
func (p *Provider) SignOut(ctx context.Context, identity *domain.Identity) error {
	defer p.emit(nil)

	if identity == nil || identity.Token == "" || p.revoker == nil {
		return nil
	}
	ttl := p.remainingLifetime(identity.Token)
	if ttl <= 0 {
		return nil
	}
	if err := p.revoker.Revoke(ctx, identity.Token, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (p *Provider) issue(uid, email string) (*domain.Identity, error) {
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"exp":   time.Now().Add(p.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.Identity{UID: uid, Email: email, Token: token}, nil
}

func (p *Provider) remainingLifetime(token string) time.Duration {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return p.tokenTTL
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return p.tokenTTL
	}
	return time.Until(exp.Time)
}

func (p *Provider) emit(identity *domain.Identity) {
	select {
	case p.events <- ports.IdentityEvent{Identity: identity}:
	default:
		// The sequencer is the sole consumer and drains continuously; a
		// full buffer means it is gone. Dropping beats deadlocking the
		// request path.
		p.log.Warn().Msg("identity event buffer full, event dropped")
	}
}
