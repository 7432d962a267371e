package database

import (
	"time"

	"property-portal/internal/models"

	"github.com/google/uuid"
)

// ListPublishedPosts returns published posts newest first, with the
// total published count for pagination.
func (gdb *GormDB) ListPublishedPosts(limit, offset int) ([]models.BlogPost, int64, error) {
	if limit < 1 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	q := gdb.db.Model(&models.BlogPost{}).Where("published = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.BlogPost
	err := q.Order("published_at DESC, id ASC").Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetPostBySlug retrieves a published post by slug
func (gdb *GormDB) GetPostBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := gdb.db.Where("slug = ? AND published = ?", slug, true).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// SavePost creates or updates a blog post. Publishing for the first
// time stamps published_at.
func (gdb *GormDB) SavePost(post *models.BlogPost) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	if post.Published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	return gdb.db.Save(post).Error
}

// DeletePost removes a blog post
func (gdb *GormDB) DeletePost(id string) error {
	return gdb.db.Delete(&models.BlogPost{}, "id = ?", id).Error
}
