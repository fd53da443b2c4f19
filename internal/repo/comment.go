package repo

import (
	"context"
	"database/sql"

	"github.com/sidelines/sidelines/internal/models"
)

// CommentRepo persists forum comments.
type CommentRepo struct {
	DB *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{DB: db}
}

// ListByPost returns the comments on a post, oldest first.
func (r *CommentRepo) ListByPost(ctx context.Context, postID int) ([]models.Comment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT comments.id, comments.post_id, comments.content, comments.created_at, users.username
		FROM comments
		JOIN users ON comments.user_id = users.user_id
		WHERE comments.post_id = $1
		ORDER BY comments.created_at ASC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Content, &c.CreatedAt, &c.Username); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepo) Create(ctx context.Context, userID, postID int, content string) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO comments (user_id, post_id, content) VALUES ($1, $2, $3) RETURNING id`,
		userID, postID, content,
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}
