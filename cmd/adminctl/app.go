package main

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/skyward/flightschool-api/internal/core/domain"
	mongodb "github.com/skyward/flightschool-api/internal/infrastructure/db/mongo"
	"github.com/skyward/flightschool-api/internal/pkg/config"
	"github.com/skyward/flightschool-api/internal/pkg/passhash"
)

const minPasswordLen = 6

// app holds the credential store the CLI works against. It talks to the
// repository directly: provisioning is an out-of-band operation with no
// session to gate on.
type app struct {
	repo *mongodb.MongoUserRepository
}

func bootstrap(ctx context.Context) (*app, func(), error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}

	return &app{repo: repo}, cleanup, nil
}

func (a *app) provisionAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: passhash.Hash(password),
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := a.repo.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return nil, fmt.Errorf("%s is already registered", email)
		}
		return nil, err
	}
	return created, nil
}

func (a *app) listUsers(ctx context.Context) ([]*domain.User, error) {
	return a.repo.List(ctx, 0, 0)
}
