package imgutil

import (
	"errors"
	"io"
	"os"
)

// Kind identifies a supported image container by its byte signature.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindTIFF
	KindWEBP
	KindGIF
	KindBMP
	KindHEIF
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindTIFF:
		return "tiff"
	case KindWEBP:
		return "webp"
	case KindGIF:
		return "gif"
	case KindBMP:
		return "bmp"
	case KindHEIF:
		return "heif"
	default:
		return "unknown"
	}
}

// HeaderSize is how many leading bytes DetectHeader needs to see.
const HeaderSize = 16

var (
	pngSig    = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSig   = []byte{0xff, 0xd8, 0xff}
	tiffSigLE = []byte{0x49, 0x49, 0x2a, 0x00}
	tiffSigBE = []byte{0x4d, 0x4d, 0x00, 0x2a}
	gif87Sig  = []byte("GIF87a")
	gif89Sig  = []byte("GIF89a")
	bmpSig    = []byte("BM")
	riffSig   = []byte("RIFF")
	webpSig   = []byte("WEBP")
	ftypSig   = []byte("ftyp")
)

// heifBrands are the ftyp brands treated as HEIF/HEIC/AVIF containers.
var heifBrands = [][]byte{
	[]byte("heic"), []byte("heix"), []byte("hevc"), []byte("hevx"),
	[]byte("mif1"), []byte("msf1"), []byte("avif"), []byte("avis"),
}

// DetectHeader inspects the leading bytes of a file for known signatures.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < 8 {
		return KindUnknown, errors.New("header too short")
	}

	if hasPrefix(header, jpegSig) {
		return KindJPEG, nil
	}
	if hasPrefix(header, pngSig) {
		return KindPNG, nil
	}
	if hasPrefix(header, tiffSigLE) || hasPrefix(header, tiffSigBE) {
		return KindTIFF, nil
	}
	if hasPrefix(header, gif87Sig) || hasPrefix(header, gif89Sig) {
		return KindGIF, nil
	}
	if hasPrefix(header, bmpSig) {
		return KindBMP, nil
	}
	if len(header) >= 12 && hasPrefix(header, riffSig) && hasPrefix(header[8:], webpSig) {
		return KindWEBP, nil
	}
	// ISO BMFF: size (4 bytes), "ftyp", then the major brand.
	if len(header) >= 12 && hasPrefix(header[4:], ftypSig) {
		brand := header[8:12]
		for _, b := range heifBrands {
			if hasPrefix(brand, b) {
				return KindHEIF, nil
			}
		}
	}

	return KindUnknown, nil
}

// SniffFile reads the leading bytes of the file at path to determine its type.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads the leading bytes from r and determines its type.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return KindUnknown, err
	}

	return DetectHeader(header[:n])
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
