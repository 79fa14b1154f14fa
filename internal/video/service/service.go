package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/justic/video-gateway/internal/storage/s3"
	"github.com/justic/video-gateway/internal/video/models"
	"github.com/justic/video-gateway/internal/video/repository"
)

const titleMaxRunes = 50

// ObjectStore is the blob side of the system: uploaded videos and
// thumbnails plus the per-user key listing.
type ObjectStore interface {
	UploadVideo(ctx context.Context, userID, taskID string, body io.Reader, processed bool) error
	UploadThumbnail(ctx context.Context, userID, taskID string, body io.Reader) error
	GetVideo(ctx context.Context, userID, taskID string, processed bool) (io.ReadCloser, error)
	GetThumbnail(ctx context.Context, userID, taskID string) (io.ReadCloser, error)
	ListVideos(ctx context.Context, userID string) ([]string, error)
}

type Generator interface {
	Configured() bool
	Generate(ctx context.Context, variant models.Variant, prompt string) (*models.Generation, error)
}

type JobQueue interface {
	Enqueue(ctx context.Context, job models.JobDescriptor) error
}

// Publisher uploads a local video file to the external platform and
// returns the platform-assigned identifier, which may be empty when the
// platform accepted the upload but reported no id.
type Publisher interface {
	Upload(ctx context.Context, userID, filePath, title, description string) (string, error)
}

type Downloader interface {
	DownloadToTemp(ctx context.Context, url, pattern string) (string, error)
}

type Thumbnailer interface {
	Capture(ctx context.Context, videoPath, thumbPath string) error
}

type Deps struct {
	Store       ObjectStore
	Repo        repository.MetadataRepository
	Queue       JobQueue
	Generator   Generator
	Publisher   Publisher
	Downloader  Downloader
	Thumbnailer Thumbnailer
	Logger      zerolog.Logger
}

// Service drives the generation and publish pipelines. It holds no state
// across requests; concurrent calls run independently and each produces
// its own task id.
type Service struct {
	store       ObjectStore
	repo        repository.MetadataRepository
	queue       JobQueue
	generator   Generator
	publisher   Publisher
	downloader  Downloader
	thumbnailer Thumbnailer
	logger      zerolog.Logger
	clock       func() time.Time
	idGen       func() string
}

func New(deps Deps) *Service {
	return &Service{
		store:       deps.Store,
		repo:        deps.Repo,
		queue:       deps.Queue,
		generator:   deps.Generator,
		publisher:   deps.Publisher,
		downloader:  deps.Downloader,
		thumbnailer: deps.Thumbnailer,
		logger:      deps.Logger.With().Str("component", "orchestrator").Logger(),
		clock:       time.Now,
		idGen:       func() string { return uuid.NewString()[:8] },
	}
}

// Generate runs the full generation pipeline for one prompt. Every
// external call is a single attempt; the first failure is terminal and
// the caller is expected to re-submit. Exactly one operation-log entry
// is appended per attempt.
func (s *Service) Generate(ctx context.Context, variant models.Variant, userID, prompt string) (string, error) {
	if userID == "" || prompt == "" {
		return "", models.ErrInvalidArgument
	}

	if !s.generator.Configured() {
		err := fmt.Errorf("generation API key missing: %w", models.ErrNotConfigured)
		s.appendLog(ctx, userID, variant.GenerateLogType, models.StatusFail, "", err.Error())
		return "", err
	}

	gen, err := s.generator.Generate(ctx, variant, prompt)
	if err != nil {
		s.appendLog(ctx, userID, variant.GenerateLogType, models.StatusFail, "", err.Error())
		return "", err
	}

	taskID := gen.TaskID
	if taskID == "" {
		taskID = variant.TaskIDPrefix + s.idGen()
	}

	if gen.VideoURL == "" {
		err := fmt.Errorf("%w: response has no video url", models.ErrUpstream)
		s.appendLog(ctx, userID, variant.GenerateLogType, models.StatusFail, taskID, err.Error())
		return "", err
	}

	task := models.VideoTask{
		TaskID:     taskID,
		UserID:     userID,
		Prompt:     prompt,
		CreatedVia: variant.Name,
	}
	if err := s.runPipeline(ctx, task, gen.VideoURL); err != nil {
		s.appendLog(ctx, userID, variant.GenerateLogType, models.StatusFail, taskID, err.Error())
		return "", err
	}

	s.appendLog(ctx, userID, variant.GenerateLogType, models.StatusSuccess, taskID, "video generated and queued for processing")
	return taskID, nil
}

// runPipeline covers download through enqueue. Both temp files are
// removed on every exit path, whether or not the thumbnail step ran.
func (s *Service) runPipeline(ctx context.Context, task models.VideoTask, videoURL string) error {
	videoPath, err := s.downloader.DownloadToTemp(ctx, videoURL, "gateway-video-*.mp4")
	if err != nil {
		return fmt.Errorf("download video: %w", err)
	}
	defer func() { _ = os.Remove(videoPath) }()

	thumb, err := os.CreateTemp("", "gateway-thumb-*.jpg")
	if err != nil {
		return fmt.Errorf("create thumbnail file: %w", err)
	}
	thumbPath := thumb.Name()
	thumb.Close()
	defer func() { _ = os.Remove(thumbPath) }()

	if err := s.thumbnailer.Capture(ctx, videoPath, thumbPath); err != nil {
		return err
	}

	if err := s.uploadFile(videoPath, func(r io.Reader) error {
		return s.store.UploadVideo(ctx, task.UserID, task.TaskID, r, false)
	}); err != nil {
		return err
	}
	if err := s.uploadFile(thumbPath, func(r io.Reader) error {
		return s.store.UploadThumbnail(ctx, task.UserID, task.TaskID, r)
	}); err != nil {
		return err
	}

	record := &models.FinalVideo{
		VideoKey:    task.TaskID,
		UserID:      task.UserID,
		Title:       truncateTitle(task.Prompt, titleMaxRunes),
		Description: task.Prompt,
		SelectedAt:  s.clock(),
	}
	if err := s.repo.UpsertFinalVideo(ctx, record); err != nil {
		return err
	}

	job := models.JobDescriptor{
		InputKey:  s3.VideoKey(task.UserID, task.TaskID, false),
		OutputKey: s3.VideoKey(task.UserID, task.TaskID, true),
		Variant:   task.CreatedVia,
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("enqueue job: %w", err)
	}
	return nil
}

// Publish uploads a stored video to the external platform, preferring
// the processed asset and falling back to the original. Marking the
// record published is best-effort once the platform upload succeeded.
func (s *Service) Publish(ctx context.Context, variant models.Variant, userID, videoKey, title, description string) (string, error) {
	if userID == "" || videoKey == "" || title == "" {
		return "", models.ErrInvalidArgument
	}

	stream, err := s.store.GetVideo(ctx, userID, videoKey, true)
	if err != nil {
		stream, err = s.store.GetVideo(ctx, userID, videoKey, false)
	}
	if err != nil {
		wrapped := fmt.Errorf("video %s: %w", videoKey, models.ErrNotFound)
		s.appendLog(ctx, userID, variant.PublishLogType, models.StatusFail, videoKey, wrapped.Error())
		return "", wrapped
	}

	path, err := materializeStream(stream)
	if err != nil {
		s.appendLog(ctx, userID, variant.PublishLogType, models.StatusFail, videoKey, err.Error())
		return "", err
	}
	defer func() { _ = os.Remove(path) }()

	if description == "" {
		description = fmt.Sprintf("Generated by Justic AI\nTask ID: %s", videoKey)
	}

	publishedID, err := s.publisher.Upload(ctx, userID, path, title, description)
	if err != nil {
		s.appendLog(ctx, userID, variant.PublishLogType, models.StatusFail, videoKey, fmt.Sprintf("youtube upload failed: %v", err))
		return "", err
	}

	if publishedID != "" {
		if err := s.repo.MarkPublished(ctx, videoKey, publishedID); err != nil {
			// The platform upload already happened; a lost mark must not
			// fail the request.
			s.logger.Warn().Err(err).Str("video_key", videoKey).Msg("mark published failed")
		}
	}

	status := models.StatusSuccess
	if publishedID == "" {
		status = models.StatusUnknown
	}
	s.appendLog(ctx, userID, variant.PublishLogType, status, videoKey, fmt.Sprintf("YouTube upload finished (id=%s)", publishedID))
	return publishedID, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, models.ErrInvalidArgument
	}
	return s.store.ListVideos(ctx, userID)
}

// StreamVideo hands back the raw object stream. Any fetch failure is
// reported as not-found; this layer does not distinguish a missing
// object from a store error.
func (s *Service) StreamVideo(ctx context.Context, userID, taskID string, processed bool) (io.ReadCloser, error) {
	rc, err := s.store.GetVideo(ctx, userID, taskID, processed)
	if err != nil {
		return nil, fmt.Errorf("video %s: %w", taskID, models.ErrNotFound)
	}
	return rc, nil
}

func (s *Service) StreamThumbnail(ctx context.Context, userID, taskID string) (io.ReadCloser, error) {
	rc, err := s.store.GetThumbnail(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", taskID, models.ErrNotFound)
	}
	return rc, nil
}

func (s *Service) Library(ctx context.Context, userID string) ([]models.FinalVideo, error) {
	if userID == "" {
		return nil, models.ErrInvalidArgument
	}
	return s.repo.ListLibrary(ctx, userID)
}

func (s *Service) appendLog(ctx context.Context, userID, logType string, status models.LogStatus, videoKey, message string) {
	entry := &models.OperationLog{
		UserID:   userID,
		LogType:  logType,
		Status:   status,
		VideoKey: videoKey,
		Message:  message,
	}
	if err := s.repo.AppendLog(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("log_type", logType).Msg("operation log append failed")
	}
}

func (s *Service) uploadFile(path string, upload func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return upload(f)
}

func materializeStream(stream io.ReadCloser) (string, error) {
	defer stream.Close()

	f, err := os.CreateTemp("", "gateway-publish-*.mp4")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	if _, err := io.Copy(f, stream); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("materialize stream: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

func truncateTitle(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
