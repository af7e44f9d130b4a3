package hls

// Sample playlist content shared across test files.
var (
	TestMediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:9.009,
segment0.ts
#EXTINF:9.009,
segment1.ts
#EXTINF:9.009,
segment2.ts
#EXT-X-ENDLIST`

	TestLivePlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:123456
#EXTINF:10.0,
segment123456.aac
#EXTINF:10.0,
segment123457.aac
#EXTINF:10.0,
segment123458.aac`

	TestEncryptedLivePlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:6
#EXT-X-MEDIA-SEQUENCE:42
#EXT-X-KEY:METHOD=AES-128,URI="key/42.bin",IV=0x000102030405060708090A0B0C0D0E0F
#EXTINF:6.0,
segment42.aac
#EXTINF:6.0,
segment43.aac`

	TestMasterPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-STREAM-INF:BANDWIDTH=48000,CODECS="mp4a.40.5"
48/playlist.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=96000,CODECS="mp4a.40.5"
96/playlist.m3u8`
)
