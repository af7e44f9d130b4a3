// Package nhk talks to the NHK radio service endpoints: the station
// directory (config_web.xml), the now-on-air program feed, and the HLS
// playlist/key/segment URLs themselves.
package nhk

import "fmt"

// Channel identifies one of the three NHK radio services. The set is closed
// and created once at process start; channels are never destroyed.
type Channel int

const (
	ChannelR1 Channel = iota // ラジオ第1
	ChannelR2                // ラジオ第2
	ChannelFM                // NHK-FM
)

// Channels lists every channel in UI order.
var Channels = []Channel{ChannelR1, ChannelR2, ChannelFM}

// ParseChannel maps a user-supplied channel key to a Channel.
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "r1":
		return ChannelR1, nil
	case "r2":
		return ChannelR2, nil
	case "fm":
		return ChannelFM, nil
	}
	return 0, fmt.Errorf("invalid channel %q: must be one of r1, r2, fm", s)
}

// Key returns the short channel key used on the CLI.
func (c Channel) Key() string {
	switch c {
	case ChannelR1:
		return "r1"
	case ChannelR2:
		return "r2"
	default:
		return "fm"
	}
}

// DisplayName returns the Japanese station name.
func (c Channel) DisplayName() string {
	switch c {
	case ChannelR1:
		return "ラジオ第1"
	case ChannelR2:
		return "ラジオ第2"
	default:
		return "NHK-FM"
	}
}

// ShortName returns the compact station label used in the channel tabs.
func (c Channel) ShortName() string {
	switch c {
	case ChannelR1:
		return "R1"
	case ChannelR2:
		return "R2"
	default:
		return "FM"
	}
}

// Next returns the following channel, wrapping around.
func (c Channel) Next() Channel {
	return Channels[(int(c)+1)%len(Channels)]
}

// Prev returns the preceding channel, wrapping around.
func (c Channel) Prev() Channel {
	return Channels[(int(c)+len(Channels)-1)%len(Channels)]
}

func (c Channel) String() string {
	return c.Key()
}
