package s3

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// API is the slice of the S3 client the store needs.
type API interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
}

// Store keeps video and thumbnail objects under {user_id}/{task_id}-derived keys.
type Store struct {
	client API
	bucket string
}

func New(client API, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

func VideoKey(userID, taskID string, processed bool) string {
	if processed {
		return fmt.Sprintf("%s/%s_processed.mp4", userID, taskID)
	}
	return fmt.Sprintf("%s/%s.mp4", userID, taskID)
}

func ThumbnailKey(userID, taskID string) string {
	return fmt.Sprintf("%s/%s.jpg", userID, taskID)
}

func (s *Store) UploadVideo(ctx context.Context, userID, taskID string, body io.Reader, processed bool) error {
	return s.put(ctx, VideoKey(userID, taskID, processed), body, "video/mp4")
}

func (s *Store) UploadThumbnail(ctx context.Context, userID, taskID string, body io.Reader) error {
	return s.put(ctx, ThumbnailKey(userID, taskID), body, "image/jpeg")
}

func (s *Store) put(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetVideo(ctx context.Context, userID, taskID string, processed bool) (io.ReadCloser, error) {
	return s.get(ctx, VideoKey(userID, taskID, processed))
}

func (s *Store) GetThumbnail(ctx context.Context, userID, taskID string) (io.ReadCloser, error) {
	return s.get(ctx, ThumbnailKey(userID, taskID))
}

func (s *Store) get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s: %w", key, err)
	}
	return out.Body, nil
}

// ListVideos returns the caller's video identifiers, newest key first.
// Thumbnails and other non-video objects are filtered out by suffix.
func (s *Store) ListVideos(ctx context.Context, userID string) ([]string, error) {
	prefix := userID + "/"
	out, err := s.client.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 list %s: %w", prefix, err)
	}

	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}
	return filterVideoKeys(keys), nil
}

func filterVideoKeys(keys []string) []string {
	var out []string
	for _, key := range keys {
		name := key
		if i := strings.LastIndex(key, "/"); i >= 0 {
			name = key[i+1:]
		}
		if strings.HasSuffix(name, ".mp4") {
			out = append(out, strings.TrimSuffix(name, ".mp4"))
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
