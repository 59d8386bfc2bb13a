package store

// Column constraint names referenced when mapping unique violations to
// domain conflicts. They must match the constraints created in migrations.
const (
	emailConstraint    = "users_email_key"
	userNameConstraint = "users_user_name_key"
)

const (
	userColumns = `user_id, email, user_name, password_hash, is_admin, first_name, last_name, mobile_no, created_at, updated_at`

	createUser = `INSERT INTO users (email, user_name, password_hash, is_admin, first_name, last_name, mobile_no)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	// user_name carries a nondeterministic primary-strength collation, so
	// this equality comparison is case- and accent-insensitive — the same
	// rule the unique index enforces.
	findUserByUserName = `SELECT ` + userColumns + `
    FROM users
    WHERE user_name = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	updateUserPassword = `UPDATE users
    SET password_hash = $2, updated_at = now()
    WHERE user_id = $1;`
)

const (
	postColumns = `post_id, user_id, title, blog, published_at, created_at, updated_at`

	createPost = `INSERT INTO posts (user_id, title, blog)
    VALUES ($1, $2, $3)
    RETURNING ` + postColumns + `;`

	getAllPosts = `SELECT ` + postColumns + `
    FROM posts
    ORDER BY created_at DESC;`

	getPostByID = `SELECT ` + postColumns + `
    FROM posts
    WHERE post_id = $1;`

	deletePost = `DELETE FROM posts
    WHERE post_id = $1;`

	commentColumns = `comment_id, post_id, user_id, comment, created_at`

	createComment = `INSERT INTO comments (post_id, user_id, comment)
    VALUES ($1, $2, $3)
    RETURNING ` + commentColumns + `;`

	deleteComment = `DELETE FROM comments
    WHERE post_id = $1 AND comment_id = $2;`
)
