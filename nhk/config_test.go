package nhk

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDecode(t *testing.T) {
	var config Config
	require.NoError(t, xml.Unmarshal([]byte(TestConfigXML), &config))

	require.Len(t, config.Areas, 2)

	area := config.Areas[0]
	assert.Equal(t, "東京", area.AreaJP)
	assert.Equal(t, "tokyo", area.Key)
	assert.Equal(t, "130", area.AreaKey)
	assert.Equal(t, "https://radio.example.com/tokyo/r1/master.m3u8", area.PlaylistURL(ChannelR1))
	assert.Equal(t, "https://radio.example.com/tokyo/r2/master.m3u8", area.PlaylistURL(ChannelR2))
	assert.Equal(t, "https://radio.example.com/tokyo/fm/master.m3u8", area.PlaylistURL(ChannelFM))
}

func TestConfigAreaLookup(t *testing.T) {
	var config Config
	require.NoError(t, xml.Unmarshal([]byte(TestConfigXML), &config))

	area, err := config.Area("osaka")
	require.NoError(t, err)
	assert.Equal(t, "大阪", area.AreaJP)

	_, err = config.Area("mars")
	assert.Error(t, err)
}

func TestProgramNowURL(t *testing.T) {
	var config Config
	require.NoError(t, xml.Unmarshal([]byte(TestConfigXML), &config))

	url := config.ProgramNowURL("130")
	assert.Equal(t, "https://api.nhk.example/r5/pg/now/4/130/netradio.json", url)
}

func TestNormalizeAreaName(t *testing.T) {
	tests := map[string]string{
		"東京":    "tokyo",
		"大阪":    "osaka",
		"130":   "tokyo",
		"810":   "fukuoka",
		"Tokyo": "tokyo",
		"osaka": "osaka",
		"niigata": "niigata", // unknown keys pass through lowercased
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeAreaName(in), "input %q", in)
	}
}
