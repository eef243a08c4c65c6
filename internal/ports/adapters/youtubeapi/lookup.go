// Package youtubeapi talks to the YouTube Data API v3 for channel
// resolution, recent-video listing, and clip uploads.
package youtubeapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/amryshahrul0/auto-youtube-clipper/internal/retry"
	"github.com/amryshahrul0/auto-youtube-clipper/internal/types"
)

// ErrChannelNotFound indicates a handle or id resolved to no channel.
var ErrChannelNotFound = errors.New("youtube: channel not found")

// Lookup resolves channel handles and lists recent uploads. All Data
// API calls share a rate limiter to stay clear of quota bursts.
type Lookup struct {
	svc     *youtube.Service
	limiter *rate.Limiter
	retry   retry.Config
}

// NewLookup builds a lookup client authenticated with an API key.
func NewLookup(ctx context.Context, apiKey string) (*Lookup, error) {
	if apiKey == "" {
		return nil, errors.New("youtube: api key required")
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}
	return &Lookup{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		retry:   retry.DefaultConfig(),
	}, nil
}

// ResolveHandle maps a handle such as "@somecast" to its channel id.
func (l *Lookup) ResolveHandle(ctx context.Context, handle string) (string, error) {
	var id string
	err := retry.Do(ctx, l.retry, isRetryableAPIError, func(ctx context.Context) error {
		if err := l.limiter.Wait(ctx); err != nil {
			return err
		}
		resp, err := l.svc.Channels.List([]string{"id"}).ForHandle(handle).Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			return ErrChannelNotFound
		}
		id = resp.Items[0].Id
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListRecent returns up to n most recent uploads for channelID, newest
// first, by walking the channel's uploads playlist.
func (l *Lookup) ListRecent(ctx context.Context, channelID string, n int) ([]types.VideoRef, error) {
	if n <= 0 {
		return nil, nil
	}

	var uploads string
	err := retry.Do(ctx, l.retry, isRetryableAPIError, func(ctx context.Context) error {
		if err := l.limiter.Wait(ctx); err != nil {
			return err
		}
		resp, err := l.svc.Channels.List([]string{"contentDetails"}).Id(channelID).Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			return ErrChannelNotFound
		}
		uploads = resp.Items[0].ContentDetails.RelatedPlaylists.Uploads
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uploads == "" {
		return nil, nil
	}

	var refs []types.VideoRef
	err = retry.Do(ctx, l.retry, isRetryableAPIError, func(ctx context.Context) error {
		if err := l.limiter.Wait(ctx); err != nil {
			return err
		}
		resp, err := l.svc.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(uploads).
			MaxResults(int64(n)).
			Context(ctx).Do()
		if err != nil {
			return err
		}
		refs = refs[:0]
		for _, it := range resp.Items {
			vid := it.ContentDetails.VideoId
			if vid == "" {
				continue
			}
			refs = append(refs, types.VideoRef{
				VideoID:   vid,
				URL:       watchURL(vid),
				ChannelID: channelID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}

// isRetryableAPIError treats rate limiting and server-side failures as
// transient; everything else (bad request, not found, auth) is final.
func isRetryableAPIError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrChannelNotFound) {
		return false
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == 429 || gerr.Code >= 500
	}
	return true
}
