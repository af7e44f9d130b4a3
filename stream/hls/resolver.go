package hls

import (
	"context"

	"github.com/nabetama/nhk-radio-player/logging"
)

// PlaylistFetcher retrieves raw playlist text by URL.
type PlaylistFetcher interface {
	FetchPlaylist(ctx context.Context, url string) ([]byte, error)
}

// Resolve follows master-playlist indirection starting from playlistURL and
// returns the URL of the final media playlist together with its first parse.
// Master playlists are followed through their first variant, up to
// maxRedirects levels. The caller caches the returned URL per channel for
// the life of the session; later failures on the cached URL are transient
// fetch errors, never a reason to re-resolve.
func Resolve(ctx context.Context, fetcher PlaylistFetcher, playlistURL string, maxRedirects int) (string, *Playlist, error) {
	url := playlistURL

	for range maxRedirects + 1 {
		content, err := fetcher.FetchPlaylist(ctx, url)
		if err != nil {
			return "", nil, err
		}

		playlist, err := ParsePlaylist(content, url)
		if err != nil {
			return "", nil, err
		}

		if !playlist.IsMaster {
			return url, playlist, nil
		}

		if len(playlist.Variants) == 0 {
			return "", nil, NewStreamError(url, ErrCodeInvalidFormat,
				"master playlist has no variants", nil)
		}

		next := playlist.Variants[0].URL
		logging.Debug("master playlist detected, following variant", logging.Fields{
			"master_url":  url,
			"variant_url": next,
		})
		url = next
	}

	return "", nil, NewStreamError(playlistURL, ErrCodeUnsupported,
		"too many master playlist redirects", nil)
}
