package store

import (
	"context"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
)

// Repositories aggregates all persistence-layer components behind their
// interfaces so the service layer receives a single wired bundle.
type Repositories struct {
	UserRepository UserRepository
	PostRepository PostRepository
}

// NewRepositories connects to PostgreSQL, runs pending migrations, and wires
// up all repositories.
func NewRepositories(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Repositories, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Repositories{
		UserRepository: NewUserRepository(db, log),
		PostRepository: NewPostRepository(db, log),
	}, nil
}
