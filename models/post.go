package models

import "time"

// Post is a blog entry authored by a registered user.
type Post struct {
	// PostID is the internal unique identifier of the post.
	PostID int64 `json:"id"`

	// UserID references the author. Posts are always attributed.
	UserID int64 `json:"userId"`

	// Title is the post headline, trimmed, at most 200 characters.
	Title string `json:"title"`

	// Blog is the post body, trimmed.
	Blog string `json:"blog"`

	// PublishedAt is when the post became visible. Defaults to creation time.
	PublishedAt time.Time `json:"publishedAt"`

	// Comments holds the post's comments, oldest first.
	// Serialized as an empty array rather than null when there are none.
	Comments []Comment `json:"comments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

// Comment is a reader remark attached to a post.
type Comment struct {
	// CommentID is the internal unique identifier of the comment.
	CommentID int64 `json:"id"`

	// PostID references the post the comment belongs to.
	PostID int64 `json:"postId"`

	// UserID references the comment author.
	UserID int64 `json:"userId"`

	// Comment is the remark text, trimmed, at most 2000 characters.
	Comment string `json:"comment"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Comment model.
func (c Comment) TableName() string {
	return "comments"
}
