package youtubeapi

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// People & Blogs, the category the uploads are filed under.
const uploadCategoryID = "22"

// OAuthCredentials carries the offline-access credentials used for
// uploads. API keys cannot upload; a refresh token is required.
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

func (c OAuthCredentials) validate() error {
	if c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "" {
		return errors.New("youtube: oauth client id, secret and refresh token are required for uploads")
	}
	return nil
}

// Uploader publishes clips via Videos.Insert. On success it removes the
// local clip file.
type Uploader struct {
	svc         *youtube.Service
	description string
}

// NewUploader builds an upload client from offline OAuth credentials.
// description is attached to every published clip.
func NewUploader(ctx context.Context, creds OAuthCredentials, description string) (*Uploader, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}
	cfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope},
	}
	ts := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	svc, err := youtube.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("youtube: create upload service: %w", err)
	}
	return &Uploader{svc: svc, description: description}, nil
}

// Publish uploads clipPath with the given title and visibility and
// returns the remote video id. The local file is reclaimed on success.
func (u *Uploader) Publish(ctx context.Context, clipPath, title, visibility string) (string, error) {
	f, err := os.Open(clipPath)
	if err != nil {
		return "", fmt.Errorf("youtube: open clip: %w", err)
	}
	defer f.Close()

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       title,
			Description: u.description,
			CategoryId:  uploadCategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: visibility,
		},
	}

	resp, err := u.svc.Videos.Insert([]string{"snippet", "status"}, video).
		Media(f).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("youtube: upload %s: %w", clipPath, err)
	}

	f.Close()
	// Best-effort reclaim; the upload itself already succeeded.
	_ = os.Remove(clipPath)
	return resp.Id, nil
}
