//go:build heif

package codec

import (
	"image"
	"io"

	heif "github.com/strukturag/libheif-go"
)

func heifAvailable() bool { return true }

func decodeHEIF(r io.Reader) (*DecodedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	ctx, err := heif.NewContext()
	if err != nil {
		return nil, err
	}
	if err := ctx.ReadFromMemory(data); err != nil {
		return nil, err
	}
	handle, err := ctx.GetPrimaryImageHandle()
	if err != nil {
		return nil, err
	}
	decoded, err := handle.DecodeImage(heif.ColorspaceUndefined, heif.ChromaUndefined, nil)
	if err != nil {
		return nil, err
	}
	img, err := decoded.GetImage()
	if err != nil {
		return nil, err
	}
	return single(img), nil
}

func encodeHEIF(path string, img image.Image, quality int) error {
	ctx, err := heif.EncodeFromImage(img, heif.CompressionHEVC, quality,
		heif.LosslessModeDisabled, heif.LoggingLevelNone)
	if err != nil {
		return err
	}
	return ctx.WriteToFile(path)
}
