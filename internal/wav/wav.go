// Package wav reads and writes RIFF/WAVE containers holding 16-bit PCM.
// Decoding validates the strict format the segmentation engine requires:
// mono, 16-bit samples, and one of the supported sample rates.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"vadcut/internal/services"
)

// Format describes the PCM layout of a decoded file.
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
}

var supportedRates = map[int]bool{8000: true, 16000: true, 32000: true, 48000: true}

// SupportedRate reports whether rate is one the engine accepts.
func SupportedRate(rate int) bool {
	return supportedRates[rate]
}

type riffHeader struct {
	ChunkID   [4]byte
	ChunkSize uint32
	Format    [4]byte
}

type fmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// Decode parses a WAV file and returns a view of its PCM payload along with
// the declared format. The format is validated up front: anything other
// than mono 16-bit PCM at a supported rate fails fast with a validation
// error before any framing happens.
func Decode(data []byte) ([]byte, Format, error) {
	reader := bytes.NewReader(data)

	var header riffHeader
	if err := binary.Read(reader, binary.LittleEndian, &header); err != nil {
		return nil, Format{}, services.Wrap(services.ErrValidation, "wav", "decode", "truncated RIFF header", err)
	}
	if string(header.ChunkID[:]) != "RIFF" || string(header.Format[:]) != "WAVE" {
		return nil, Format{}, services.Wrap(services.ErrValidation, "wav", "decode", "not a RIFF/WAVE file", nil)
	}

	var format Format
	sawFmt := false
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if body+chunkSize > len(data) {
			return nil, Format{}, services.Wrap(services.ErrValidation, "wav", "decode",
				fmt.Sprintf("%s chunk of %d bytes exceeds file size", chunkID, chunkSize), nil)
		}

		switch chunkID {
		case "fmt ":
			var fc fmtChunk
			if err := binary.Read(bytes.NewReader(data[body:body+chunkSize]), binary.LittleEndian, &fc); err != nil {
				return nil, Format{}, services.Wrap(services.ErrValidation, "wav", "decode", "malformed fmt chunk", err)
			}
			if fc.AudioFormat != 1 {
				return nil, Format{}, services.Wrap(services.ErrValidation, "wav", "decode",
					fmt.Sprintf("unsupported audio format %d (only PCM)", fc.AudioFormat), nil)
			}
			format = Format{
				Channels:      int(fc.NumChannels),
				SampleRate:    int(fc.SampleRate),
				BitsPerSample: int(fc.BitsPerSample),
			}
			sawFmt = true
		case "data":
			if !sawFmt {
				return nil, Format{}, services.Wrap(services.ErrValidation, "wav", "decode", "data chunk before fmt chunk", nil)
			}
			if err := validate(format); err != nil {
				return nil, Format{}, err
			}
			return data[body : body+chunkSize], format, nil
		}

		// Chunks are word-aligned.
		offset = body + chunkSize + chunkSize%2
	}

	return nil, Format{}, services.Wrap(services.ErrValidation, "wav", "decode", "no data chunk found", nil)
}

func validate(f Format) error {
	if f.Channels != 1 {
		return services.Wrap(services.ErrValidation, "wav", "validate",
			fmt.Sprintf("unsupported channel count %d (only mono)", f.Channels), nil)
	}
	if f.BitsPerSample != 16 {
		return services.Wrap(services.ErrValidation, "wav", "validate",
			fmt.Sprintf("unsupported bit depth %d (only 16-bit)", f.BitsPerSample), nil)
	}
	if !SupportedRate(f.SampleRate) {
		return services.Wrap(services.ErrValidation, "wav", "validate",
			fmt.Sprintf("unsupported sample rate %d (want 8000, 16000, 32000, or 48000)", f.SampleRate), nil)
	}
	return nil
}

type wavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// Encode wraps a mono 16-bit PCM payload in a 44-byte WAV header.
func Encode(sampleRate int, payload []byte) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("payload of %d bytes is not a whole number of 16-bit samples", len(payload))
	}

	header := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + uint32(len(payload)),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * 2,
		BlockAlign:    2,
		BitsPerSample: 16,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(len(payload)),
	}

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(payload)))
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("write wav header: %w", err)
	}
	buf.Write(payload)
	return buf.Bytes(), nil
}
