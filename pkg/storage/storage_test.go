package storage_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"portfolio-backend/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume.pdf"), []byte("%PDF-1.4"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Should open an existing file", func(t *testing.T) {
		asset, err := store.Open(ctx, "resume.pdf")
		require.NoError(t, err)
		defer asset.Close()

		data, err := io.ReadAll(asset.Body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(data))
		assert.Equal(t, int64(8), asset.Size)
	})

	t.Run("Should report missing files and directories as not found", func(t *testing.T) {
		_, err := store.Open(ctx, "missing.pdf")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = store.Open(ctx, "nested")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Should refuse paths escaping the root", func(t *testing.T) {
		for _, name := range []string{"../secret.pdf", "", "."} {
			_, err := store.Open(ctx, name)
			assert.ErrorIs(t, err, storage.ErrForbidden, name)
		}
	})
}

type MockObjectGetter struct {
	mock.Mock
}

func (m *MockObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()
	modified := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Should read the prefixed key", func(t *testing.T) {
		client := new(MockObjectGetter)
		client.On("GetObject", ctx, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return aws.ToString(in.Bucket) == "portfolio" && aws.ToString(in.Key) == "assets/resume.pdf"
		})).Return(&s3.GetObjectOutput{
			Body:          io.NopCloser(strings.NewReader("%PDF-1.4")),
			ContentLength: aws.Int64(8),
			LastModified:  aws.Time(modified),
		}, nil).Once()

		asset, err := storage.NewS3Store(client, "portfolio", "assets/").Open(ctx, "resume.pdf")
		require.NoError(t, err)
		defer asset.Close()

		assert.Equal(t, int64(8), asset.Size)
		assert.Equal(t, modified, asset.ModTime)
		client.AssertExpectations(t)
	})

	t.Run("Should map a missing key to ErrNotFound", func(t *testing.T) {
		client := new(MockObjectGetter)
		client.On("GetObject", ctx, mock.Anything).Return(nil, &types.NoSuchKey{}).Once()

		_, err := storage.NewS3Store(client, "portfolio", "").Open(ctx, "missing.pdf")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Should wrap other failures", func(t *testing.T) {
		client := new(MockObjectGetter)
		client.On("GetObject", ctx, mock.Anything).Return(nil, errors.New("connection reset")).Once()

		_, err := storage.NewS3Store(client, "portfolio", "").Open(ctx, "resume.pdf")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrNotFound)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("Should refuse traversal without calling the bucket", func(t *testing.T) {
		client := new(MockObjectGetter)

		_, err := storage.NewS3Store(client, "portfolio", "").Open(ctx, "../other/key.pdf")
		assert.ErrorIs(t, err, storage.ErrForbidden)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything)
	})
}
