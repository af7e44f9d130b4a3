package hls

// Playlist represents a parsed playlist, either a media playlist carrying
// segments or a master playlist carrying variant playlist URLs. The two
// cases are distinguished structurally so callers never have to sniff error
// text to detect a master-playlist redirect.
type Playlist struct {
	IsMaster       bool      `json:"is_master"`
	IsLive         bool      `json:"is_live"`
	TargetDuration float64   `json:"target_duration"`
	MediaSequence  uint64    `json:"media_sequence"`
	Segments       []Segment `json:"segments"`
	Variants       []Variant `json:"variants"`
}

// Segment represents an individual media segment. URL and KeyURL are
// absolute (normalized against the playlist URL). IV is the raw hex string
// from EXT-X-KEY when present; SeqNo is the segment's media sequence number
// and is used to derive an IV when none is given.
type Segment struct {
	URL      string  `json:"url"`
	KeyURL   string  `json:"key_url,omitempty"`
	IV       string  `json:"iv,omitempty"`
	SeqNo    uint64  `json:"seq_no"`
	Duration float64 `json:"duration"`
}

// Encrypted reports whether the segment declares a decryption key.
func (s *Segment) Encrypted() bool {
	return s.KeyURL != ""
}

// Variant represents one alternative media playlist in a master playlist.
type Variant struct {
	URL       string `json:"url"`
	Bandwidth uint32 `json:"bandwidth"`
	Codecs    string `json:"codecs,omitempty"`
}
