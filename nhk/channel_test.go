package nhk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannel(t *testing.T) {
	for key, want := range map[string]Channel{
		"r1": ChannelR1,
		"r2": ChannelR2,
		"fm": ChannelFM,
	} {
		got, err := ParseChannel(key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseChannel("am")
	assert.Error(t, err)
}

func TestChannelCycle(t *testing.T) {
	assert.Equal(t, ChannelR2, ChannelR1.Next())
	assert.Equal(t, ChannelFM, ChannelR2.Next())
	assert.Equal(t, ChannelR1, ChannelFM.Next())

	assert.Equal(t, ChannelFM, ChannelR1.Prev())
	assert.Equal(t, ChannelR1, ChannelR2.Prev())
	assert.Equal(t, ChannelR2, ChannelFM.Prev())
}

func TestChannelNames(t *testing.T) {
	assert.Equal(t, "ラジオ第1", ChannelR1.DisplayName())
	assert.Equal(t, "R2", ChannelR2.ShortName())
	assert.Equal(t, "fm", ChannelFM.Key())
}
