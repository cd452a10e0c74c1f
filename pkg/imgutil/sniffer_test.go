package imgutil

import (
	"bytes"
	"testing"
)

func TestDetectHeader(t *testing.T) {
	cases := []struct {
		name   string
		header []byte
		want   Kind
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}, KindPNG},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0}, KindJPEG},
		{"tiff-le", []byte{0x49, 0x49, 0x2a, 0x00, 0, 0, 0, 0}, KindTIFF},
		{"tiff-be", []byte{0x4d, 0x4d, 0x00, 0x2a, 0, 0, 0, 0}, KindTIFF},
		{"gif89", []byte("GIF89a\x00\x00"), KindGIF},
		{"gif87", []byte("GIF87a\x00\x00"), KindGIF},
		{"bmp", []byte("BM\x00\x00\x00\x00\x00\x00"), KindBMP},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), KindWEBP},
		{"heic", append([]byte{0, 0, 0, 0x18}, []byte("ftypheic\x00\x00\x00\x00")...), KindHEIF},
		{"avif", append([]byte{0, 0, 0, 0x18}, []byte("ftypavif\x00\x00\x00\x00")...), KindHEIF},
		{"text", []byte("hello world, not an image"), KindUnknown},
	}

	for _, tc := range cases {
		kind, err := DetectHeader(tc.header)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if kind != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, kind, tc.want)
		}
	}
}

func TestDetectHeaderTooShort(t *testing.T) {
	if _, err := DetectHeader([]byte{0x89, 'P'}); err == nil {
		t.Fatal("expected error for short header")
	}
}

func TestSniffReader(t *testing.T) {
	data := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, bytes.Repeat([]byte{0}, 32)...)
	kind, err := SniffReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if kind != KindPNG {
		t.Fatalf("got %s, want png", kind)
	}
}

func TestSniffReaderShortFile(t *testing.T) {
	// Files shorter than HeaderSize but long enough for a signature still sniff.
	data := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	kind, err := SniffReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if kind != KindJPEG {
		t.Fatalf("got %s, want jpeg", kind)
	}
}
