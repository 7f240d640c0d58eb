package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pinboard/internal/domain/entity"
	"pinboard/internal/domain/repository"
	mockRepo "pinboard/internal/mocks/repository"
	"pinboard/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type postServiceFixtures struct {
	service  usecase.PostUsecase
	postRepo *mockRepo.MockPostRepository
}

func createTestPostService(t *testing.T) postServiceFixtures {
	postRepo := mockRepo.NewMockPostRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewPostService(PostServiceParams{
		PostRepo: postRepo,
		Logger:   logger,
	})

	return postServiceFixtures{
		service:  service,
		postRepo: postRepo,
	}
}

func TestPostService_Create(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()

	fx.postRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Post")).
		Run(func(ctx context.Context, post *entity.Post) {
			post.ID = 11
		}).
		Return(nil)

	post, err := fx.service.Create(ctx, 3, &usecase.CreatePostInput{Title: "hello world"})

	require.NoError(t, err)
	assert.Equal(t, int64(11), post.ID)
	assert.Equal(t, "hello world", post.Title)
	assert.Equal(t, int64(3), post.CreatorID)
}

func TestPostService_Get_Absent(t *testing.T) {
	fx := createTestPostService(t)

	ctx := context.Background()

	fx.postRepo.EXPECT().FindByID(ctx, int64(99)).Return(nil, repository.ErrPostNotFound)

	post, err := fx.service.Get(ctx, 99)

	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestPostService_Update(t *testing.T) {
	t.Run("existing post", func(t *testing.T) {
		fx := createTestPostService(t)
		ctx := context.Background()
		existing := &entity.Post{ID: 11, Title: "old title", CreatorID: 3}

		fx.postRepo.EXPECT().FindByID(ctx, int64(11)).Return(existing, nil)
		fx.postRepo.EXPECT().
			Update(ctx, mock.AnythingOfType("*entity.Post")).
			Run(func(ctx context.Context, post *entity.Post) {
				assert.Equal(t, "new title", post.Title)
			}).
			Return(nil)

		post, err := fx.service.Update(ctx, 11, &usecase.UpdatePostInput{Title: "new title"})

		require.NoError(t, err)
		assert.Equal(t, "new title", post.Title)
	})

	t.Run("absent post", func(t *testing.T) {
		fx := createTestPostService(t)
		ctx := context.Background()

		fx.postRepo.EXPECT().FindByID(ctx, int64(99)).Return(nil, repository.ErrPostNotFound)

		post, err := fx.service.Update(ctx, 99, &usecase.UpdatePostInput{Title: "new title"})

		require.NoError(t, err)
		assert.Nil(t, post)
	})
}

func TestPostService_Delete(t *testing.T) {
	t.Run("existing post", func(t *testing.T) {
		fx := createTestPostService(t)
		ctx := context.Background()

		fx.postRepo.EXPECT().Delete(ctx, int64(11)).Return(nil)

		deleted, err := fx.service.Delete(ctx, 11)

		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("absent post", func(t *testing.T) {
		fx := createTestPostService(t)
		ctx := context.Background()

		fx.postRepo.EXPECT().Delete(ctx, int64(99)).Return(repository.ErrPostNotFound)

		deleted, err := fx.service.Delete(ctx, 99)

		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("storage failure", func(t *testing.T) {
		fx := createTestPostService(t)
		ctx := context.Background()

		fx.postRepo.EXPECT().Delete(ctx, int64(11)).Return(errors.New("connection reset"))

		deleted, err := fx.service.Delete(ctx, 11)

		require.Error(t, err)
		assert.False(t, deleted)
	})
}
