package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/models"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

// postRepository is the PostgreSQL-backed implementation of [PostRepository].
// Posts and comments live in separate tables; post reads aggregate the
// comments so callers always receive a fully populated [models.Post].
type postRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPostRepository constructs a [PostRepository] backed by the provided
// database connection and logger.
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

func scanPost(row interface{ Scan(...any) error }, post *models.Post) error {
	return row.Scan(
		&post.PostID,
		&post.UserID,
		&post.Title,
		&post.Blog,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
}

// CreatePost persists a new post and returns it with server-assigned fields.
// The comments slice of a fresh post is always an empty slice, never nil, so
// it serializes as [].
func (r *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createPost, post.UserID, post.Title, post.Blog)

	var created models.Post
	if err := scanPost(row, &created); err != nil {
		log.Err(err).Str("func", "*postRepository.CreatePost").Msg("error: scanning error")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created.Comments = []models.Comment{}
	return created, nil
}

// GetAllPosts returns every post, newest first, with comments attached.
// An empty database yields an empty slice, not nil.
func (r *postRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAllPosts)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.GetAllPosts").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err := scanPost(rows, &post); err != nil {
			log.Err(err).Str("func", "*postRepository.GetAllPosts").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		post.Comments = []models.Comment{}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err := r.attachComments(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetPostByID returns a single post with its comments, or [ErrPostNotFound].
func (r *postRepository) GetPostByID(ctx context.Context, postID int64) (models.Post, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getPostByID, postID)

	var post models.Post
	if err := scanPost(row, &post); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}

		log.Err(err).Str("func", "*postRepository.GetPostByID").Msg("error: scanning error")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	post.Comments = []models.Comment{}
	posts := []models.Post{post}
	if err := r.attachComments(ctx, posts); err != nil {
		return models.Post{}, err
	}

	return posts[0], nil
}

// attachComments loads the comments of all given posts in one query and
// distributes them to their owners, preserving oldest-first order.
func (r *postRepository) attachComments(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	postIDs := make([]int64, 0, len(posts))
	byID := make(map[int64]int, len(posts))
	for i, post := range posts {
		postIDs = append(postIDs, post.PostID)
		byID[post.PostID] = i
	}

	query, args, err := squirrel.Select(commentColumns).
		From("comments").
		Where(squirrel.Eq{"post_id": postIDs}).
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*postRepository.attachComments").Msg("error building comments query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.attachComments").Msg("error executing query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.CommentID, &comment.PostID, &comment.UserID, &comment.Comment, &comment.CreatedAt); err != nil {
			log.Err(err).Str("func", "*postRepository.attachComments").Msg("error: scanning error")
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		if i, ok := byID[comment.PostID]; ok {
			posts[i].Comments = append(posts[i].Comments, comment)
		}
	}

	return rows.Err()
}

// AddComment persists a comment under an existing post.
//
// Error handling:
//   - foreign_key_violation (23503) on the post reference → [ErrPostNotFound].
func (r *postRepository) AddComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createComment, comment.PostID, comment.UserID, comment.Comment)

	var created models.Comment
	if err := row.Scan(&created.CommentID, &created.PostID, &created.UserID, &created.Comment, &created.CreatedAt); err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Comment{}, ErrPostNotFound
		}

		log.Err(err).Str("func", "*postRepository.AddComment").Msg("error: scanning error")
		return models.Comment{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// DeletePost removes a post; its comments go with it via cascade delete.
// Returns [ErrPostNotFound] when no row was affected.
func (r *postRepository) DeletePost(ctx context.Context, postID int64) error {
	return r.deleteRow(ctx, deletePost, ErrPostNotFound, postID)
}

// DeleteComment removes a single comment identified by post and comment IDs.
// Returns [ErrCommentNotFound] when no row was affected.
func (r *postRepository) DeleteComment(ctx context.Context, postID, commentID int64) error {
	return r.deleteRow(ctx, deleteComment, ErrCommentNotFound, postID, commentID)
}

func (r *postRepository) deleteRow(ctx context.Context, query string, notFound error, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*postRepository.deleteRow").Msg("error executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}
