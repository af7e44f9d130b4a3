package player

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nabetama/nhk-radio-player/audio/transcode"
	"github.com/nabetama/nhk-radio-player/logging"
	"github.com/nabetama/nhk-radio-player/nhk"
	"github.com/nabetama/nhk-radio-player/stream/hls"
)

// StreamSource fetches playlists, keys, and segments. nhk.Client is the
// production implementation.
type StreamSource interface {
	hls.PlaylistFetcher
	FetchKey(ctx context.Context, keyURL string) ([]byte, error)
	FetchSegment(ctx context.Context, segmentURL string) ([]byte, error)
}

// PCMSink receives decoded audio in playlist order. Flush drops anything
// queued but not yet played.
type PCMSink interface {
	Enqueue(ctx context.Context, pcm []int16)
	Flush()
}

// Selection is the value carried by the channel-switch signal.
type Selection struct {
	Channel     nhk.Channel
	PlaylistURL string
}

// Session polls the selected channel's playlist on a fixed cadence and
// drives segments through fetch, decrypt, and decode into the sink. It
// never terminates on stream errors; every failure is logged and retried
// after a backoff. Only context cancellation stops the loop.
type Session struct {
	cfg    *Config
	source StreamSource
	dec    transcode.Decoder
	sink   PCMSink
	signal *Signal[Selection]

	// resolved caches the final media playlist URL per channel so the
	// master playlist is only walked once per channel per session.
	resolved map[nhk.Channel]string

	// seen is the bounded dedup window over segment URLs, reset on every
	// channel switch. seenOrder tracks insertion for FIFO eviction.
	seen      map[string]struct{}
	seenOrder []string
}

// NewSession wires a session over the given source, decoder, and sink.
// The signal selects which channel is being played; Set on it switches.
func NewSession(cfg *Config, source StreamSource, dec transcode.Decoder, sink PCMSink, signal *Signal[Selection]) *Session {
	return &Session{
		cfg:      cfg,
		source:   source,
		dec:      dec,
		sink:     sink,
		signal:   signal,
		resolved: make(map[nhk.Channel]string),
		seen:     make(map[string]struct{}),
	}
}

// Run polls until ctx is cancelled. Each iteration observes the switch
// signal, polls the current playlist, and delivers unseen segments in
// playlist order. A signal change mid-batch abandons the rest of the batch
// and skips the poll sleep so the new channel starts immediately.
func (s *Session) Run(ctx context.Context) error {
	sel, version := s.signal.Latest()
	s.adopt(sel)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if latest, v := s.signal.Latest(); v != version {
			sel, version = latest, v
			s.adopt(sel)
		}

		changed := s.signal.Changed()
		sleep := s.cfg.PollInterval
		if err := s.cycle(ctx, sel, version); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			var streamErr *hls.StreamError
			if errors.As(err, &streamErr) {
				streamErr.Log()
			} else {
				logging.Error(err, "poll cycle failed", logging.Fields{
					"channel": sel.Channel.Key(),
				})
			}
			sleep = s.cfg.RetryBackoff
		}

		t := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-changed:
			t.Stop()
		case <-t.C:
		}
	}
}

// adopt switches the session to a new selection: the dedup window resets
// so the new channel's current segments all play, and the sink flushes so
// leftover audio from the previous channel is dropped.
func (s *Session) adopt(sel Selection) {
	s.seen = make(map[string]struct{})
	s.seenOrder = nil
	s.sink.Flush()
	logging.Info("tuned to channel", logging.Fields{
		"channel": sel.Channel.Key(),
		"station": sel.Channel.DisplayName(),
	})
}

// cycle is one poll: resolve, fetch, parse, and deliver unseen segments.
// Returned errors are all retryable; the caller applies the backoff.
func (s *Session) cycle(ctx context.Context, sel Selection, version uint64) error {
	playlist, err := s.currentPlaylist(ctx, sel)
	if err != nil {
		return err
	}

	// One key per cycle. Live playlists declare the key on the first
	// segment and reuse it for the rest of the window.
	var key []byte
	if len(playlist.Segments) > 0 && playlist.Segments[0].Encrypted() {
		key, err = s.source.FetchKey(ctx, playlist.Segments[0].KeyURL)
		if err != nil {
			return err
		}
	}

	for _, seg := range playlist.Segments {
		if _, v := s.signal.Latest(); v != version {
			// Switched mid-batch. The rest of this window belongs to
			// the old channel; drop it.
			return nil
		}
		if _, ok := s.seen[seg.URL]; ok {
			continue
		}
		s.markSeen(seg.URL)
		s.deliverSegment(ctx, seg, key)
	}
	return nil
}

// currentPlaylist fetches and parses the media playlist for sel, resolving
// through the master playlist on first contact with a channel. Resolution
// happens once per channel per session; failures on the cached URL are
// transient and retried against the same URL.
func (s *Session) currentPlaylist(ctx context.Context, sel Selection) (*hls.Playlist, error) {
	mediaURL, ok := s.resolved[sel.Channel]
	if !ok {
		finalURL, playlist, err := hls.Resolve(ctx, s.source, sel.PlaylistURL, s.cfg.MaxRedirects)
		if err != nil {
			return nil, err
		}
		s.resolved[sel.Channel] = finalURL
		logging.Debug("resolved media playlist", logging.Fields{
			"channel": sel.Channel.Key(),
			"url":     finalURL,
		})
		return playlist, nil
	}

	content, err := s.source.FetchPlaylist(ctx, mediaURL)
	if err != nil {
		return nil, err
	}
	playlist, err := hls.ParsePlaylist(content, mediaURL)
	if err != nil {
		return nil, err
	}
	if playlist.IsMaster {
		// Transient origin misbehavior. The cache entry stays for the
		// life of the session; the next cycle retries the same URL.
		return nil, hls.NewStreamError(mediaURL, hls.ErrCodeInvalidFormat,
			"media playlist URL answered with a master playlist", nil)
	}
	return playlist, nil
}

// deliverSegment runs one segment through fetch, decrypt, and decode.
// Failures skip the segment; the stream continues with the next one.
func (s *Session) deliverSegment(ctx context.Context, seg hls.Segment, key []byte) {
	data, err := s.source.FetchSegment(ctx, seg.URL)
	if err != nil {
		logging.Warn("segment fetch failed, skipping", logging.Fields{
			"url":   seg.URL,
			"error": err.Error(),
		})
		return
	}

	if seg.Encrypted() {
		data, err = hls.DecryptSegment(data, key, seg.IV, seg.SeqNo)
		if err != nil {
			logging.Warn("segment decrypt failed, skipping", logging.Fields{
				"url":   seg.URL,
				"error": err.Error(),
			})
			return
		}
	}

	pcm, err := s.dec.DecodeBytes(data)
	if err != nil {
		logging.Warn("segment decode failed, skipping", logging.Fields{
			"url":   seg.URL,
			"error": err.Error(),
		})
		return
	}
	if pcm.Empty() {
		logging.Debug("segment produced no audio", logging.Fields{"url": seg.URL})
		return
	}

	s.sink.Enqueue(ctx, pcm.Samples)
}

func (s *Session) markSeen(url string) {
	s.seen[url] = struct{}{}
	s.seenOrder = append(s.seenOrder, url)
	for len(s.seenOrder) > s.cfg.SeenWindow {
		delete(s.seen, s.seenOrder[0])
		s.seenOrder = s.seenOrder[1:]
	}
}

// Play runs the session loop and the sink together until ctx is
// cancelled. Cancellation is the normal way to stop, so it is not
// reported as an error.
func Play(ctx context.Context, session *Session, sink *Sink) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sink.Run(gctx) })
	g.Go(func() error { return session.Run(gctx) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
