package service

import (
	"context"

	"github.com/MKhiriev/go-blog-api/models"
)

// AuthService owns identity rules: registration with uniqueness pre-checks,
// credential verification, token issuance and parsing, and profile
// mutations. Password hashing never leaves this layer.
type AuthService interface {
	Register(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, identifier, password string) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	CheckEmail(ctx context.Context, email string) (string, bool, error)
	CheckUserName(ctx context.Context, userName string) (string, bool, error)

	GetUser(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
	ResetPassword(ctx context.Context, userID int64, newPassword string) error
	AdminUpdateUser(ctx context.Context, update models.AdminUserUpdate) (models.User, error)
}

// PostService owns the content rules for blog posts and comments. It trusts
// the identity attached upstream by the auth middleware and performs no
// token work of its own.
type PostService interface {
	CreatePost(ctx context.Context, userID int64, post models.Post) (models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, postID int64) (models.Post, error)
	AddComment(ctx context.Context, userID, postID int64, comment string) (models.Comment, error)
	DeletePost(ctx context.Context, postID int64) error
	DeleteComment(ctx context.Context, postID, commentID int64) error
}
