package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"testing"

	"vadcut/internal/services"
)

func pcmBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := pcmBytes([]int16{0, 100, -100, 32767, -32768})
	encoded, err := Encode(16000, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 44+len(payload) {
		t.Fatalf("expected 44-byte header, got total %d", len(encoded))
	}

	pcm, format, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format.SampleRate != 16000 || format.Channels != 1 || format.BitsPerSample != 16 {
		t.Fatalf("unexpected format %+v", format)
	}
	if !bytes.Equal(pcm, payload) {
		t.Fatal("payload changed through round trip")
	}
}

func TestDecodeSkipsExtraChunks(t *testing.T) {
	payload := pcmBytes([]int16{1, 2, 3, 4})
	encoded, err := Encode(8000, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Splice a LIST chunk between fmt and data, as ffmpeg emits.
	list := append([]byte("LIST"), 4, 0, 0, 0)
	list = append(list, []byte("INFO")...)
	spliced := append([]byte(nil), encoded[:36]...)
	spliced = append(spliced, list...)
	spliced = append(spliced, encoded[36:]...)
	binary.LittleEndian.PutUint32(spliced[4:], uint32(len(spliced)-8))

	pcm, format, err := Decode(spliced)
	if err != nil {
		t.Fatalf("Decode with LIST chunk: %v", err)
	}
	if format.SampleRate != 8000 || !bytes.Equal(pcm, payload) {
		t.Fatalf("unexpected decode result %+v", format)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	cases := map[string][]byte{
		"empty":     nil,
		"short":     []byte("RIFF"),
		"not riff":  bytes.Repeat([]byte{0x42}, 64),
		"no data":   append([]byte("RIFF\x10\x00\x00\x00WAVE"), make([]byte, 8)...),
	}
	for name, data := range cases {
		if _, _, err := Decode(data); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestDecodeRejectsUnsupportedFormats(t *testing.T) {
	payload := pcmBytes([]int16{1, 2})

	stereo, err := Encode(16000, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	binary.LittleEndian.PutUint16(stereo[22:], 2) // channel count
	if _, _, err := Decode(stereo); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected stereo rejection, got %v", err)
	}

	badRate, err := Encode(16000, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	binary.LittleEndian.PutUint32(badRate[24:], 44100)
	if _, _, err := Decode(badRate); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected 44.1kHz rejection, got %v", err)
	}
}

func TestEncodeRejectsOddPayload(t *testing.T) {
	if _, err := Encode(16000, []byte{0x01}); err == nil {
		t.Fatal("expected error for odd payload length")
	}
	if _, err := Encode(0, nil); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestSupportedRate(t *testing.T) {
	for _, rate := range []int{8000, 16000, 32000, 48000} {
		if !SupportedRate(rate) {
			t.Fatalf("rate %d should be supported", rate)
		}
	}
	for _, rate := range []int{0, 44100, 22050, 96000} {
		if SupportedRate(rate) {
			t.Fatalf("rate %d should not be supported", rate)
		}
	}
}

func TestDirSinkWritesPlayableFile(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewDirSink(dir)
	if err != nil {
		t.Fatalf("NewDirSink: %v", err)
	}

	payload := pcmBytes([]int16{5, -5, 10, -10})
	if err := sink.WriteClip("clip-001", 16000, payload); err != nil {
		t.Fatalf("WriteClip: %v", err)
	}

	data, err := os.ReadFile(sink.Path("clip-001"))
	if err != nil {
		t.Fatalf("read clip file: %v", err)
	}
	pcm, format, err := Decode(data)
	if err != nil {
		t.Fatalf("decode clip file: %v", err)
	}
	if format.SampleRate != 16000 || !bytes.Equal(pcm, payload) {
		t.Fatal("clip file did not round trip")
	}
}
