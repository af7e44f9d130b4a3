package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestS16FromBytes(t *testing.T) {
	data := []byte{0x00, 0x00, 0xFF, 0x7F, 0x00, 0x80, 0x01} // trailing odd byte
	assert.Equal(t, []int16{0, 32767, -32768}, S16FromBytes(data))
}

func TestUpmixMono(t *testing.T) {
	assert.Equal(t, []int16{1, 1, 2, 2, 3, 3}, UpmixMono([]int16{1, 2, 3}))
	assert.Empty(t, UpmixMono(nil))
}
