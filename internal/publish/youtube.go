package publish

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/justic/video-gateway/internal/video/models"
)

const (
	// YouTube category 22 is "People & Blogs".
	categoryID    = "22"
	privacyStatus = "private"
)

// CredentialStore resolves a stored oauth token for a user. A missing
// credential maps to models.ErrNotFound.
type CredentialStore interface {
	Token(ctx context.Context, userID string) (*oauth2.Token, error)
}

// CredentialFunc adapts a plain function to CredentialStore.
type CredentialFunc func(ctx context.Context, userID string) (*oauth2.Token, error)

func (f CredentialFunc) Token(ctx context.Context, userID string) (*oauth2.Token, error) {
	return f(ctx, userID)
}

// YouTube publishes local video files to the user's channel. Uploads
// always go out as private; visibility changes stay a manual step on
// the platform side.
type YouTube struct {
	oauth *oauth2.Config
	creds CredentialStore
}

func NewYouTube(clientID, clientSecret string, creds CredentialStore) *YouTube {
	return &YouTube{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{youtube.YoutubeUploadScope},
		},
		creds: creds,
	}
}

// Upload sends the file at filePath to the user's channel and returns
// the id the platform assigned. The id can be empty when the API call
// succeeded but the response carried none.
func (y *YouTube) Upload(ctx context.Context, userID, filePath, title, description string) (string, error) {
	token, err := y.creds.Token(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("youtube credentials for %s: %w", userID, err)
	}

	svc, err := youtube.NewService(ctx, option.WithTokenSource(y.oauth.TokenSource(ctx, token)))
	if err != nil {
		return "", fmt.Errorf("youtube service: %w", err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       title,
			Description: description,
			CategoryId:  categoryID,
		},
		Status: &youtube.VideoStatus{PrivacyStatus: privacyStatus},
	}

	resp, err := svc.Videos.Insert([]string{"snippet", "status"}, video).
		Media(f).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%w: youtube insert: %v", models.ErrUpstream, err)
	}
	return resp.Id, nil
}
