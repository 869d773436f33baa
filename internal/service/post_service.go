package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs
type CreatePostRequest struct {
	Title   string
	Content string
	Photo   string
}

type CreateReplyRequest struct {
	Content string
	Photo   string
}

// PostService owns the announcement board. Independent of the inventory
// workflows; deletes are permitted to the author or a superadmin.
type PostService interface {
	CreatePost(ctx context.Context, adminID string, req CreatePostRequest) (*model.AdminPost, error)
	ListPosts(ctx context.Context) ([]model.AdminPost, error)
	AddReply(ctx context.Context, postID, userID string, req CreateReplyRequest) (*model.AdminPostReply, error)
	DeletePost(ctx context.Context, postID, callerID, callerRole string) error
	DeleteReply(ctx context.Context, replyID, callerID, callerRole string) error
}

type postService struct {
	posts     repository.PostRepository
	txManager repository.TransactionManager
}

func NewPostService(posts repository.PostRepository, txManager repository.TransactionManager) PostService {
	return &postService{posts: posts, txManager: txManager}
}

func (s *postService) CreatePost(ctx context.Context, adminID string, req CreatePostRequest) (*model.AdminPost, error) {
	if req.Title == "" || req.Content == "" {
		return nil, apperror.InvalidArgument("Title and content are required")
	}

	uid, err := uuid.Parse(adminID)
	if err != nil {
		return nil, apperror.InvalidArgument("Invalid admin id")
	}

	post := &model.AdminPost{
		AdminID: uid,
		Title:   req.Title,
		Content: req.Content,
		Photo:   req.Photo,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context) ([]model.AdminPost, error) {
	return s.posts.ListPosts(ctx)
}

func (s *postService) AddReply(ctx context.Context, postID, userID string, req CreateReplyRequest) (*model.AdminPostReply, error) {
	if req.Content == "" {
		return nil, apperror.InvalidArgument("Content is required")
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.InvalidArgument("Invalid user id")
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, err
	}

	reply := &model.AdminPostReply{
		PostID:  post.ID,
		UserID:  uid,
		Content: req.Content,
		Photo:   req.Photo,
	}
	if err := s.posts.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *postService) DeletePost(ctx context.Context, postID, callerID, callerRole string) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Post not found")
		}
		return err
	}

	if post.AdminID.String() != callerID && callerRole != model.RoleSuperadmin {
		return apperror.Forbidden("Only the author or a superadmin can delete this post")
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.posts.DeleteRepliesForPost(txCtx, postID); err != nil {
			return err
		}
		return s.posts.DeletePost(txCtx, postID)
	})
}

func (s *postService) DeleteReply(ctx context.Context, replyID, callerID, callerRole string) error {
	reply, err := s.posts.GetReplyByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Reply not found")
		}
		return err
	}

	if reply.UserID.String() != callerID && callerRole != model.RoleSuperadmin {
		return apperror.Forbidden("Only the author or a superadmin can delete this reply")
	}

	return s.posts.DeleteReply(ctx, replyID)
}
