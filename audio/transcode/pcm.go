package transcode

import "encoding/binary"

// S16FromBytes reinterprets little-endian signed 16-bit bytes as samples.
// A trailing odd byte is dropped.
func S16FromBytes(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return samples
}

// UpmixMono duplicates each mono sample into a stereo pair, preserving
// frame order.
func UpmixMono(samples []int16) []int16 {
	out := make([]int16, 0, len(samples)*2)
	for _, s := range samples {
		out = append(out, s, s)
	}
	return out
}
