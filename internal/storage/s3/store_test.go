package s3

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	puts    map[string]string // key -> content type
	objects map[string][]byte
	listed  []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{puts: map[string]string{}, objects: map[string][]byte{}}
}

func (f *fakeAPI) PutObject(_ context.Context, in *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	f.objects[aws.ToString(in.Key)] = data
	return &awss3.PutObjectOutput{}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, in *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &awss3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeAPI) ListObjectsV2(_ context.Context, in *awss3.ListObjectsV2Input, _ ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error) {
	out := &awss3.ListObjectsV2Output{}
	for key := range f.objects {
		if strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, s3types.Object{Key: aws.String(key)})
		}
	}
	return out, nil
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "u1/abc.mp4", VideoKey("u1", "abc", false))
	assert.Equal(t, "u1/abc_processed.mp4", VideoKey("u1", "abc", true))
	assert.Equal(t, "u1/abc.jpg", ThumbnailKey("u1", "abc"))
}

func TestUploadSetsContentTypes(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	store := New(api, "videos")

	require.NoError(t, store.UploadVideo(ctx, "u1", "abc", strings.NewReader("vid"), false))
	require.NoError(t, store.UploadThumbnail(ctx, "u1", "abc", strings.NewReader("jpg")))

	assert.Equal(t, "video/mp4", api.puts["u1/abc.mp4"])
	assert.Equal(t, "image/jpeg", api.puts["u1/abc.jpg"])
}

func TestGetVideo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	store := New(api, "videos")

	require.NoError(t, store.UploadVideo(ctx, "u1", "abc", strings.NewReader("payload"), true))

	rc, err := store.GetVideo(ctx, "u1", "abc", true)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = store.GetVideo(ctx, "u1", "missing", false)
	require.Error(t, err)
}

func TestListVideos_FiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	store := New(api, "videos")

	require.NoError(t, store.UploadVideo(ctx, "u1", "aaa", strings.NewReader("a"), false))
	require.NoError(t, store.UploadVideo(ctx, "u1", "bbb", strings.NewReader("b"), false))
	require.NoError(t, store.UploadThumbnail(ctx, "u1", "aaa", strings.NewReader("t")))
	require.NoError(t, store.UploadVideo(ctx, "u2", "zzz", strings.NewReader("z"), false))

	got, err := store.ListVideos(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bbb", "aaa"}, got)
}

func TestFilterVideoKeys(t *testing.T) {
	got := filterVideoKeys([]string{
		"u1/abc.mp4",
		"u1/abc_processed.mp4",
		"u1/abc.jpg",
		"u1/def.mp4",
	})
	assert.Equal(t, []string{"def", "abc_processed", "abc"}, got)
}
