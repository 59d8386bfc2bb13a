package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/models"
)

// postService is the concrete implementation of PostService.
// It validates incoming content and delegates persistence to a
// PostRepository; authorship of a new post or comment always comes from the
// verified caller identity, never from the request body.
type postService struct {
	// posts is the data-access layer used to store and query posts and
	// their comments.
	posts store.PostRepository

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewPostService constructs a new PostService wired to the given
// PostRepository.
func NewPostService(posts store.PostRepository, logger *logger.Logger) PostService {
	return &postService{posts: posts, logger: logger}
}

// CreatePost stores a new post authored by the given user.
// Title and body must both be non-empty after trimming, and the title may
// not exceed MaxTitleLength characters.
func (p *postService) CreatePost(ctx context.Context, userID int64, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	post.Title = strings.TrimSpace(post.Title)
	post.Blog = strings.TrimSpace(post.Blog)
	if post.Title == "" || post.Blog == "" {
		return models.Post{}, ErrTitleAndBlogNeeded
	}
	if utf8.RuneCountInString(post.Title) > MaxTitleLength {
		return models.Post{}, ErrTitleTooLong
	}
	post.UserID = userID

	created, err := p.posts.CreatePost(ctx, post)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("post creation ended with error")
		return models.Post{}, fmt.Errorf("post creation ended with error: %w", err)
	}

	return created, nil
}

// GetAllPosts returns every post, newest first, each with its comments
// attached. An empty collection is returned as an empty slice, never nil.
func (p *postService) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := p.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("posts listing failed: %w", err)
	}

	return posts, nil
}

// GetPost returns a single post with its comments attached.
// Returns store.ErrPostNotFound when no post carries the given identifier.
func (p *postService) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	post, err := p.posts.GetPostByID(ctx, postID)
	if err != nil {
		return models.Post{}, fmt.Errorf("post lookup failed: %w", err)
	}

	return post, nil
}

// AddComment attaches a comment authored by the given user to an existing
// post. The comment body must be non-empty after trimming and no longer than
// MaxCommentLength characters; commenting on a missing post surfaces
// store.ErrPostNotFound.
func (p *postService) AddComment(ctx context.Context, userID, postID int64, text string) (models.Comment, error) {
	log := logger.FromContext(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, ErrCommentRequired
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return models.Comment{}, ErrCommentTooLong
	}

	comment := models.Comment{
		PostID:  postID,
		UserID:  userID,
		Comment: text,
	}

	created, err := p.posts.AddComment(ctx, comment)
	if err != nil {
		log.Err(err).Int64("postID", postID).Msg("comment creation ended with error")
		return models.Comment{}, fmt.Errorf("comment creation ended with error: %w", err)
	}

	return created, nil
}

// DeletePost removes a post and, through storage-level cascading, every
// comment attached to it. Returns store.ErrPostNotFound when the post does
// not exist.
func (p *postService) DeletePost(ctx context.Context, postID int64) error {
	if err := p.posts.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("post deletion failed: %w", err)
	}

	return nil
}

// DeleteComment removes a single comment from the given post. The comment
// must belong to the post; a comment identifier that exists under a
// different post is reported as store.ErrCommentNotFound.
func (p *postService) DeleteComment(ctx context.Context, postID, commentID int64) error {
	if err := p.posts.DeleteComment(ctx, postID, commentID); err != nil {
		return fmt.Errorf("comment deletion failed: %w", err)
	}

	return nil
}
