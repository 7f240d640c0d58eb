package impl

import (
	"context"
	"log/slog"

	deliverycontext "pinboard/internal/delivery/context"
	"pinboard/internal/domain/entity"
	"pinboard/internal/domain/repository"
	"pinboard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// postService implements the PostUsecase interface.
type postService struct {
	postRepo repository.PostRepository
	logger   *slog.Logger
}

// PostServiceParams holds dependencies for postService, injected by Fx.
type PostServiceParams struct {
	fx.In

	PostRepo repository.PostRepository
	Logger   *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	return &postService{
		postRepo: params.PostRepo,
		logger:   params.Logger,
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns all posts.
func (srv *postService) List(ctx context.Context) ([]*entity.Post, error) {
	posts, err := srv.postRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return posts, nil
}

// Get returns a single post, or nil when no post has the given id.
func (srv *postService) Get(ctx context.Context, id int64) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to load post")
	}

	return post, nil
}

// Create stores a new post owned by the given user.
func (srv *postService) Create(ctx context.Context, creatorID int64, input *usecase.CreatePostInput) (*entity.Post, error) {
	post := &entity.Post{
		Title:     input.Title,
		CreatorID: creatorID,
	}

	if err := srv.postRepo.Create(ctx, post); err != nil {
		return nil, errors.Wrap(err, "failed to create post")
	}

	srv.log(ctx).Info("Post created", slog.Int64("postID", post.ID), slog.Int64("creatorID", creatorID))

	return post, nil
}

// Update changes a post's title. It returns nil when the post is absent.
func (srv *postService) Update(ctx context.Context, id int64, input *usecase.UpdatePostInput) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to load post for update")
	}

	post.Title = input.Title
	if err := srv.postRepo.Update(ctx, post); err != nil {
		return nil, errors.Wrap(err, "failed to update post")
	}

	return post, nil
}

// Delete removes a post. It reports whether a post was actually deleted.
func (srv *postService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := srv.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to delete post")
	}

	srv.log(ctx).Info("Post deleted", slog.Int64("postID", id))

	return true, nil
}
