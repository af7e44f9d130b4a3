package transcode

// AAC sample rate index table (ISO 14496-3).
var aacSampleRates = [...]int{
	96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050,
	16000, 12000, 11025, 8000, 7350,
}

// adtsFrame is a single AAC frame carved out of an ADTS byte stream,
// header included, with the format fields the decoder stage needs.
type adtsFrame struct {
	data       []byte
	sampleRate int
	channels   int
}

// splitADTS scans data for ADTS frames. It is deliberately tolerant: bytes
// before the first sync word are skipped, a truncated trailing frame is
// dropped, and input with no recognizable frame yields an empty slice. The
// decode stage treats all of those as "no audio", never as an error.
func splitADTS(data []byte) []adtsFrame {
	var frames []adtsFrame
	offset := 0

	for offset < len(data) {
		if len(data)-offset < 7 {
			break
		}

		// Sync word: 0xFFF
		if data[offset] != 0xFF || (data[offset+1]&0xF0) != 0xF0 {
			offset++
			continue
		}

		hasCRC := (data[offset+1] & 0x01) == 0
		headerSize := 7
		if hasCRC {
			headerSize = 9
		}

		sampleRateIdx := (data[offset+2] >> 2) & 0x0F
		if int(sampleRateIdx) >= len(aacSampleRates) {
			offset++
			continue
		}

		channelCfg := ((data[offset+2] & 0x01) << 2) | ((data[offset+3] >> 6) & 0x03)

		frameLen := int(data[offset+3]&0x03)<<11 |
			int(data[offset+4])<<3 |
			int(data[offset+5]>>5)

		if frameLen < headerSize {
			offset++
			continue
		}
		if offset+frameLen > len(data) {
			break // truncated tail
		}

		frames = append(frames, adtsFrame{
			data:       data[offset : offset+frameLen],
			sampleRate: aacSampleRates[sampleRateIdx],
			channels:   int(channelCfg),
		})

		offset += frameLen
	}

	return frames
}
