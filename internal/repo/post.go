package repo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/sidelines/sidelines/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type PostRepo struct {
	DB *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db}
}

// ========================
// CREATE POST
// ========================

func (r *PostRepo) Create(ctx context.Context, userID int, title, content string) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO posts (user_id, title, content, likes) VALUES ($1, $2, $3, 0) RETURNING id`,
		userID, title, content,
	).Scan(&id)
	return id, err
}

// ========================
// LIST POSTS WITH COMMENTS
// ========================

// List returns a page of posts, newest first, each with its comments oldest first.
func (r *PostRepo) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT posts.id, posts.title, posts.content, users.username, posts.created_at, posts.likes
		FROM posts
		JOIN users ON posts.user_id = users.user_id
		ORDER BY posts.created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	index := make(map[int]int)
	ids := make([]int64, 0)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Username, &p.CreatedAt, &p.Likes); err != nil {
			return nil, err
		}
		p.Comments = []models.Comment{}
		index[p.ID] = len(posts)
		ids = append(ids, int64(p.ID))
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	crow, err := r.DB.QueryContext(ctx, `
		SELECT comments.id, comments.post_id, comments.content, comments.created_at, users.username
		FROM comments
		JOIN users ON comments.user_id = users.user_id
		WHERE comments.post_id = ANY($1)
		ORDER BY comments.created_at ASC`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, err
	}
	defer crow.Close()

	for crow.Next() {
		var c models.Comment
		if err := crow.Scan(&c.ID, &c.PostID, &c.Content, &c.CreatedAt, &c.Username); err != nil {
			return nil, err
		}
		if i, ok := index[c.PostID]; ok {
			posts[i].Comments = append(posts[i].Comments, c)
		}
	}
	return posts, crow.Err()
}

// ========================
// OWNER LOOKUP
// ========================

// OwnerID returns the author of the post, or ErrNotFound.
func (r *PostRepo) OwnerID(ctx context.Context, postID int) (int, error) {
	var owner int
	err := r.DB.QueryRowContext(ctx, `SELECT user_id FROM posts WHERE id = $1`, postID).Scan(&owner)
	if err != nil {
		return 0, translate(err)
	}
	return owner, nil
}

// ========================
// DELETE POST
// ========================

func (r *PostRepo) Delete(ctx context.Context, postID int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ========================
// LIKE POST
// ========================

// Like records one like per user and bumps the counter in the same transaction.
// A second like by the same user returns ErrDuplicate.
func (r *PostRepo) Like(ctx context.Context, userID, postID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO likes (user_id, post_id) VALUES ($1, $2)`,
		userID, postID,
	); err != nil {
		return translate(err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE posts SET likes = likes + 1 WHERE id = $1`, postID); err != nil {
		return err
	}

	return tx.Commit()
}
