package hls

import (
	"bytes"

	"github.com/grafov/m3u8"
)

// ParsePlaylist parses raw playlist text fetched from baseURL. The playlist
// grammar itself is handled by grafov/m3u8; this function only projects the
// parse tree into the model, normalizing every segment, key, and variant URL
// against baseURL.
func ParsePlaylist(content []byte, baseURL string) (*Playlist, error) {
	parsed, listType, err := m3u8.DecodeFrom(bytes.NewReader(content), true)
	if err != nil {
		return nil, NewStreamError(baseURL, ErrCodeInvalidFormat,
			"failed to parse playlist", err)
	}

	switch listType {
	case m3u8.MASTER:
		return projectMaster(parsed.(*m3u8.MasterPlaylist), baseURL), nil
	case m3u8.MEDIA:
		return projectMedia(parsed.(*m3u8.MediaPlaylist), baseURL), nil
	default:
		return nil, NewStreamError(baseURL, ErrCodeInvalidFormat,
			"unrecognized playlist type", nil)
	}
}

func projectMaster(master *m3u8.MasterPlaylist, baseURL string) *Playlist {
	playlist := &Playlist{IsMaster: true}

	for _, variant := range master.Variants {
		if variant == nil || variant.URI == "" {
			continue
		}
		playlist.Variants = append(playlist.Variants, Variant{
			URL:       NormalizeURL(baseURL, variant.URI),
			Bandwidth: variant.Bandwidth,
			Codecs:    variant.Codecs,
		})
	}

	return playlist
}

func projectMedia(media *m3u8.MediaPlaylist, baseURL string) *Playlist {
	playlist := &Playlist{
		IsLive:         !media.Closed,
		TargetDuration: media.TargetDuration,
		MediaSequence:  media.SeqNo,
	}

	// EXT-X-KEY applies to every following segment until replaced, so the
	// active key is carried forward across the segment list.
	activeKey := media.Key

	// Segment sequence numbers continue the playlist's EXT-X-MEDIA-SEQUENCE,
	// matching what the origin used when deriving per-segment IVs.
	seq := media.SeqNo
	for _, segment := range media.Segments {
		if segment == nil {
			continue
		}
		if segment.Key != nil {
			activeKey = segment.Key
		}

		seg := Segment{
			URL:      NormalizeURL(baseURL, segment.URI),
			SeqNo:    seq,
			Duration: segment.Duration,
		}
		if activeKey != nil && activeKey.Method != "" && activeKey.Method != "NONE" {
			if activeKey.URI != "" {
				seg.KeyURL = NormalizeURL(baseURL, activeKey.URI)
			}
			seg.IV = activeKey.IV
		}

		playlist.Segments = append(playlist.Segments, seg)
		seq++
	}

	return playlist
}
