package nhk

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Config is the station directory served as config_web.xml. It is fetched
// once at startup and read-only afterwards.
type Config struct {
	XMLName       xml.Name   `xml:"radiru_config"`
	Info          string     `xml:"info"`
	URLProgramNOA string     `xml:"url_program_noa"`
	URLProgramDay string     `xml:"url_program_day"`
	Areas         []Area     `xml:"stream_url>data"`
}

// Area maps one broadcast area to its per-channel playlist URLs.
type Area struct {
	AreaJP  string `xml:"areajp"`
	Key     string `xml:"area"`
	APIKey  string `xml:"apikey"`
	AreaKey string `xml:"areakey"`
	R1HLS   string `xml:"r1hls"`
	R2HLS   string `xml:"r2hls"`
	FMHLS   string `xml:"fmhls"`
}

// PlaylistURL returns the HLS playlist URL for the given channel.
func (a *Area) PlaylistURL(c Channel) string {
	switch c {
	case ChannelR1:
		return a.R1HLS
	case ChannelR2:
		return a.R2HLS
	default:
		return a.FMHLS
	}
}

// Area looks up an area by its key ("tokyo", "osaka", ...).
func (c *Config) Area(key string) (*Area, error) {
	for i := range c.Areas {
		if c.Areas[i].Key == key {
			return &c.Areas[i], nil
		}
	}
	return nil, fmt.Errorf("area not found: %s", key)
}

// ProgramNowURL builds the now-on-air program URL for an area, substituting
// the {area} placeholder and normalizing the scheme-relative prefix.
func (c *Config) ProgramNowURL(areaKey string) string {
	url := c.URLProgramNOA
	if strings.HasPrefix(url, "//") {
		url = "https:" + url
	}
	return strings.ReplaceAll(url, "{area}", areaKey)
}

// Area name aliases accepted on the CLI: Japanese names and the numeric
// codes the service used before area keys.
var areaAliases = map[string]string{
	"東京":  "tokyo",
	"大阪":  "osaka",
	"名古屋": "nagoya",
	"札幌":  "sapporo",
	"仙台":  "sendai",
	"広島":  "hiroshima",
	"松山":  "matsuyama",
	"福岡":  "fukuoka",
	"130": "tokyo",
	"400": "osaka",
	"300": "nagoya",
	"010": "sapporo",
	"040": "sendai",
	"540": "hiroshima",
	"580": "matsuyama",
	"810": "fukuoka",
}

// NormalizeAreaName resolves aliases to canonical area keys.
func NormalizeAreaName(area string) string {
	lower := strings.ToLower(area)
	if key, ok := areaAliases[area]; ok {
		return key
	}
	if key, ok := areaAliases[lower]; ok {
		return key
	}
	return lower
}
