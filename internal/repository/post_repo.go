package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// PostRepository defines data access for announcements and their replies.
type PostRepository interface {
	CreatePost(ctx context.Context, post *model.AdminPost) error
	GetPostByID(ctx context.Context, id string) (*model.AdminPost, error)
	ListPosts(ctx context.Context) ([]model.AdminPost, error)
	DeletePost(ctx context.Context, id string) error
	CreateReply(ctx context.Context, reply *model.AdminPostReply) error
	GetReplyByID(ctx context.Context, id string) (*model.AdminPostReply, error)
	DeleteReply(ctx context.Context, id string) error
	DeleteRepliesForPost(ctx context.Context, postID string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) CreatePost(ctx context.Context, post *model.AdminPost) error {
	return GetDB(ctx, r.db).Create(post).Error
}

func (r *postRepository) GetPostByID(ctx context.Context, id string) (*model.AdminPost, error) {
	var post model.AdminPost
	if err := GetDB(ctx, r.db).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPosts(ctx context.Context) ([]model.AdminPost, error) {
	var posts []model.AdminPost
	err := GetDB(ctx, r.db).
		Preload("Admin").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("admin_post_replies.created_at ASC")
		}).
		Preload("Replies.User").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) DeletePost(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.AdminPost{}).Error
}

func (r *postRepository) CreateReply(ctx context.Context, reply *model.AdminPostReply) error {
	return GetDB(ctx, r.db).Create(reply).Error
}

func (r *postRepository) GetReplyByID(ctx context.Context, id string) (*model.AdminPostReply, error) {
	var reply model.AdminPostReply
	if err := GetDB(ctx, r.db).First(&reply, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *postRepository) DeleteReply(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.AdminPostReply{}).Error
}

func (r *postRepository) DeleteRepliesForPost(ctx context.Context, postID string) error {
	return GetDB(ctx, r.db).Where("post_id = ?", postID).Delete(&model.AdminPostReply{}).Error
}
