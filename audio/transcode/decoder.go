// Package transcode converts compressed segment audio into playable PCM.
// The bitstream-to-PCM transform itself is delegated to the FDK-AAC codec;
// this package owns the call contract and the failure policy: a segment
// that cannot be probed or decoded produces empty PCM, never an error.
package transcode

import (
	"github.com/winlinvip/go-fdkaac/fdkaac"

	"github.com/nabetama/nhk-radio-player/logging"
)

// Playback target format. The service broadcasts 48 kHz AAC; mono streams
// are upmixed to the stereo target.
const (
	TargetSampleRate = 48000
	TargetChannels   = 2
)

// PCMData is decoded audio: interleaved signed 16-bit samples.
type PCMData struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// Empty reports whether the decode produced no audio.
func (d *PCMData) Empty() bool {
	return len(d.Samples) == 0
}

// Decoder converts compressed audio bytes to PCM. Implementations return
// empty PCMData (not an error) for input that carries no decodable audio.
type Decoder interface {
	DecodeBytes(data []byte) (*PCMData, error)
}

// AACDecoder decodes ADTS AAC streams through FDK-AAC.
type AACDecoder struct{}

// NewAACDecoder creates an AAC decoder.
func NewAACDecoder() *AACDecoder {
	return &AACDecoder{}
}

// DecodeBytes decodes an ADTS AAC byte stream to interleaved stereo s16
// PCM. Per-frame decode failures are logged and skipped; input with no
// recognizable frames yields empty PCM and a nil error so that one
// malformed segment never halts the stream.
func (d *AACDecoder) DecodeBytes(data []byte) (*PCMData, error) {
	out := &PCMData{SampleRate: TargetSampleRate, Channels: TargetChannels}

	frames := splitADTS(data)
	if len(frames) == 0 {
		logging.Debug("no ADTS frames in segment", logging.Fields{"bytes": len(data)})
		return out, nil
	}

	codec := fdkaac.NewAacDecoder()
	if err := codec.InitAdts(); err != nil {
		logging.Debug("failed to init AAC codec", logging.Fields{"error": err.Error()})
		return out, nil
	}
	defer codec.Close()

	rateMismatch := false
	for _, frame := range frames {
		pcm, err := codec.Decode(frame.data)
		if err != nil {
			logging.Debug("frame decode failed, skipping", logging.Fields{"error": err.Error()})
			continue
		}
		if len(pcm) == 0 {
			continue // codec is still buffering
		}

		samples := S16FromBytes(pcm)
		if frame.channels == 1 {
			samples = UpmixMono(samples)
		}
		if frame.sampleRate != TargetSampleRate && !rateMismatch {
			rateMismatch = true
			logging.Debug("stream sample rate differs from target", logging.Fields{
				"stream_rate": frame.sampleRate,
				"target_rate": TargetSampleRate,
			})
		}

		out.Samples = append(out.Samples, samples...)
	}

	return out, nil
}
