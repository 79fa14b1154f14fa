package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/justic/video-gateway/internal/video/models"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) UploadVideo(ctx context.Context, userID, taskID string, body io.Reader, processed bool) error {
	args := m.Called(ctx, userID, taskID, body, processed)
	return args.Error(0)
}

func (m *StoreMock) UploadThumbnail(ctx context.Context, userID, taskID string, body io.Reader) error {
	args := m.Called(ctx, userID, taskID, body)
	return args.Error(0)
}

func (m *StoreMock) GetVideo(ctx context.Context, userID, taskID string, processed bool) (io.ReadCloser, error) {
	args := m.Called(ctx, userID, taskID, processed)
	if v := args.Get(0); v != nil {
		return v.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) GetThumbnail(ctx context.Context, userID, taskID string) (io.ReadCloser, error) {
	args := m.Called(ctx, userID, taskID)
	if v := args.Get(0); v != nil {
		return v.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) ListVideos(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) UpsertFinalVideo(ctx context.Context, v *models.FinalVideo) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *RepoMock) MarkPublished(ctx context.Context, videoKey, publishedID string) error {
	args := m.Called(ctx, videoKey, publishedID)
	return args.Error(0)
}

func (m *RepoMock) ListLibrary(ctx context.Context, userID string) ([]models.FinalVideo, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]models.FinalVideo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RepoMock) AppendLog(ctx context.Context, entry *models.OperationLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type QueueMock struct {
	mock.Mock
}

func (m *QueueMock) Enqueue(ctx context.Context, job models.JobDescriptor) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

type GeneratorMock struct {
	mock.Mock
}

func (m *GeneratorMock) Configured() bool {
	return m.Called().Bool(0)
}

func (m *GeneratorMock) Generate(ctx context.Context, variant models.Variant, prompt string) (*models.Generation, error) {
	args := m.Called(ctx, variant, prompt)
	if v := args.Get(0); v != nil {
		return v.(*models.Generation), args.Error(1)
	}
	return nil, args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Upload(ctx context.Context, userID, filePath, title, description string) (string, error) {
	args := m.Called(ctx, userID, filePath, title, description)
	return args.String(0), args.Error(1)
}

type DownloaderMock struct {
	mock.Mock
}

func (m *DownloaderMock) DownloadToTemp(ctx context.Context, url, pattern string) (string, error) {
	args := m.Called(ctx, url, pattern)
	return args.String(0), args.Error(1)
}

type ThumbnailerMock struct {
	mock.Mock
}

func (m *ThumbnailerMock) Capture(ctx context.Context, videoPath, thumbPath string) error {
	args := m.Called(ctx, videoPath, thumbPath)
	return args.Error(0)
}
