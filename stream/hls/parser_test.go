package hls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://radio.example.com/live/r1/playlist.m3u8"

func TestParsePlaylistMedia(t *testing.T) {
	playlist, err := ParsePlaylist([]byte(TestMediaPlaylist), testBaseURL)

	require.NoError(t, err)
	require.NotNil(t, playlist)
	assert.False(t, playlist.IsMaster)
	assert.False(t, playlist.IsLive) // has EXT-X-ENDLIST
	require.Len(t, playlist.Segments, 3)

	seg := playlist.Segments[0]
	assert.Equal(t, "https://radio.example.com/live/r1/segment0.ts", seg.URL)
	assert.Equal(t, uint64(0), seg.SeqNo)
	assert.InDelta(t, 9.009, seg.Duration, 0.001)
	assert.False(t, seg.Encrypted())

	assert.Equal(t, uint64(2), playlist.Segments[2].SeqNo)
}

func TestParsePlaylistLive(t *testing.T) {
	playlist, err := ParsePlaylist([]byte(TestLivePlaylist), testBaseURL)

	require.NoError(t, err)
	assert.True(t, playlist.IsLive)
	assert.Equal(t, uint64(123456), playlist.MediaSequence)
	require.Len(t, playlist.Segments, 3)
	assert.Equal(t, uint64(123456), playlist.Segments[0].SeqNo)
	assert.Equal(t, uint64(123458), playlist.Segments[2].SeqNo)
}

func TestParsePlaylistEncrypted(t *testing.T) {
	playlist, err := ParsePlaylist([]byte(TestEncryptedLivePlaylist), testBaseURL)

	require.NoError(t, err)
	require.Len(t, playlist.Segments, 2)

	// The key applies to every segment that follows it.
	for _, seg := range playlist.Segments {
		assert.True(t, seg.Encrypted())
		assert.Equal(t, "https://radio.example.com/live/r1/key/42.bin", seg.KeyURL)
		assert.Equal(t, "0x000102030405060708090A0B0C0D0E0F", seg.IV)
	}
}

func TestParsePlaylistMaster(t *testing.T) {
	playlist, err := ParsePlaylist([]byte(TestMasterPlaylist), testBaseURL)

	require.NoError(t, err)
	assert.True(t, playlist.IsMaster)
	assert.Empty(t, playlist.Segments)
	require.Len(t, playlist.Variants, 2)
	assert.Equal(t, "https://radio.example.com/live/r1/48/playlist.m3u8", playlist.Variants[0].URL)
	assert.Equal(t, uint32(48000), playlist.Variants[0].Bandwidth)
}

func TestParsePlaylistInvalid(t *testing.T) {
	for _, content := range []string{"", "not a playlist", "#EXTM3U-ish"} {
		_, err := ParsePlaylist([]byte(content), testBaseURL)

		require.Error(t, err)
		var streamErr *StreamError
		require.ErrorAs(t, err, &streamErr)
		assert.Equal(t, ErrCodeInvalidFormat, streamErr.Code)
	}
}
