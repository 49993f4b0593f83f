package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chronicleberg/chronicle-be/internal/models"
)

// SQLiteBlogStore is the sqlite-backed blog document store.
type SQLiteBlogStore struct {
	db *sql.DB
}

// NewSQLiteBlogStore creates a new SQLiteBlogStore.
func NewSQLiteBlogStore(db *sql.DB) *SQLiteBlogStore {
	return &SQLiteBlogStore{db: db}
}

const blogColumns = `id, title, intro, category,
	main_image_id, main_image_url,
	para_one_image_id, para_one_image_url, para_one_title, para_one_description,
	para_two_image_id, para_two_image_url, para_two_title, para_two_description,
	created_by, author_name, author_avatar, published, created_at`

func scanBlog(row interface{ Scan(...any) error }) (models.Blog, error) {
	var blog models.Blog
	var p1id, p1url, p1title, p1desc sql.NullString
	var p2id, p2url, p2title, p2desc sql.NullString

	err := row.Scan(&blog.ID, &blog.Title, &blog.Intro, &blog.Category,
		&blog.MainImage.PublicID, &blog.MainImage.URL,
		&p1id, &p1url, &p1title, &p1desc,
		&p2id, &p2url, &p2title, &p2desc,
		&blog.CreatedBy, &blog.AuthorName, &blog.AuthorAvatar, &blog.Published, &blog.CreatedAt)
	if err != nil {
		return models.Blog{}, err
	}

	if p1id.String != "" {
		blog.ParaOneImage = &models.AssetRef{PublicID: p1id.String, URL: p1url.String}
	}
	blog.ParaOneTitle = p1title.String
	blog.ParaOneDescription = p1desc.String

	if p2id.String != "" {
		blog.ParaTwoImage = &models.AssetRef{PublicID: p2id.String, URL: p2url.String}
	}
	blog.ParaTwoTitle = p2title.String
	blog.ParaTwoDescription = p2desc.String

	return blog, nil
}

// slotValues flattens an optional image slot into its two columns.
func slotValues(ref *models.AssetRef) (id, url string) {
	if ref == nil {
		return "", ""
	}
	return ref.PublicID, ref.URL
}

// Create inserts a new blog document.
func (s *SQLiteBlogStore) Create(ctx context.Context, blog models.Blog) error {
	p1id, p1url := slotValues(blog.ParaOneImage)
	p2id, p2url := slotValues(blog.ParaTwoImage)

	stmt, err := s.db.PrepareContext(ctx, `INSERT INTO blogs(
		id, title, intro, category,
		main_image_id, main_image_url,
		para_one_image_id, para_one_image_url, para_one_title, para_one_description,
		para_two_image_id, para_two_image_url, para_two_title, para_two_description,
		created_by, author_name, author_avatar, published
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, blog.ID, blog.Title, blog.Intro, blog.Category,
		blog.MainImage.PublicID, blog.MainImage.URL,
		p1id, p1url, blog.ParaOneTitle, blog.ParaOneDescription,
		p2id, p2url, blog.ParaTwoTitle, blog.ParaTwoDescription,
		blog.CreatedBy, blog.AuthorName, blog.AuthorAvatar, blog.Published)
	return err
}

// FindByID retrieves a single blog by ID.
func (s *SQLiteBlogStore) FindByID(ctx context.Context, id string) (models.Blog, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+blogColumns+" FROM blogs WHERE id = ?", id)
	blog, err := scanBlog(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Blog{}, ErrNotFound
		}
		return models.Blog{}, err
	}
	return blog, nil
}

// FindPublished retrieves all published blogs, newest first.
func (s *SQLiteBlogStore) FindPublished(ctx context.Context) ([]models.Blog, error) {
	return s.queryBlogs(ctx, "SELECT "+blogColumns+" FROM blogs WHERE published = 1 ORDER BY created_at DESC")
}

// FindByAuthor retrieves every blog created by the given user, drafts included.
func (s *SQLiteBlogStore) FindByAuthor(ctx context.Context, userID string) ([]models.Blog, error) {
	return s.queryBlogs(ctx, "SELECT "+blogColumns+" FROM blogs WHERE created_by = ? ORDER BY created_at DESC", userID)
}

func (s *SQLiteBlogStore) queryBlogs(ctx context.Context, query string, args ...any) ([]models.Blog, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []models.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning blog row: %w", err)
		}
		blogs = append(blogs, blog)
	}
	return blogs, rows.Err()
}

// Update replaces every mutable field of the document in one statement.
func (s *SQLiteBlogStore) Update(ctx context.Context, blog models.Blog) error {
	p1id, p1url := slotValues(blog.ParaOneImage)
	p2id, p2url := slotValues(blog.ParaTwoImage)

	res, err := s.db.ExecContext(ctx, `UPDATE blogs SET
		title = ?, intro = ?, category = ?,
		main_image_id = ?, main_image_url = ?,
		para_one_image_id = ?, para_one_image_url = ?, para_one_title = ?, para_one_description = ?,
		para_two_image_id = ?, para_two_image_url = ?, para_two_title = ?, para_two_description = ?,
		published = ?
		WHERE id = ?`,
		blog.Title, blog.Intro, blog.Category,
		blog.MainImage.PublicID, blog.MainImage.URL,
		p1id, p1url, blog.ParaOneTitle, blog.ParaOneDescription,
		p2id, p2url, blog.ParaTwoTitle, blog.ParaTwoDescription,
		blog.Published, blog.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a blog document.
func (s *SQLiteBlogStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM blogs WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of blog documents.
func (s *SQLiteBlogStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blogs").Scan(&n)
	return n, err
}
