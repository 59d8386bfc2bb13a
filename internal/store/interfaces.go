package store

import (
	"context"

	"github.com/MKhiriev/go-blog-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store. It owns the uniqueness guarantees
// for identity fields: the database constraints behind CreateUser and
// UpdateUser are the binding protection against concurrent duplicates, and
// FindUserByUserName applies the same case/accent-insensitive comparison
// rule as the unique index, so advisory pre-checks and enforcement can never
// disagree.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUserName(ctx context.Context, userName string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateUser(ctx context.Context, userID int64, update models.AdminUserUpdate) (models.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// PostRepository persists blog posts and their comments.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostByID(ctx context.Context, postID int64) (models.Post, error)
	AddComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	DeletePost(ctx context.Context, postID int64) error
	DeleteComment(ctx context.Context, postID, commentID int64) error
}
