package qr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeQRPNG(t *testing.T, text string) []byte {
	t.Helper()

	matrix, err := qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, 256, 256, nil)
	require.NoError(t, err)

	img := image.NewGray(image.Rect(0, 0, matrix.GetWidth(), matrix.GetHeight()))
	for y := 0; y < matrix.GetHeight(); y++ {
		for x := 0; x < matrix.GetWidth(); x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	t.Run("decodes a rendered qr code", func(t *testing.T) {
		payload := "079201012345|012345678|NGUYEN VAN A|01/01/1990|Male|Hanoi|01/01/2020"
		text, err := DecodeImage(encodeQRPNG(t, payload))
		require.NoError(t, err)
		assert.Equal(t, payload, text)
	})

	t.Run("rejects bytes that are not an image", func(t *testing.T) {
		_, err := DecodeImage([]byte("definitely not an image"))
		assert.Error(t, err)
	})

	t.Run("rejects an image without a qr code", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 64, 64))))
		_, err := DecodeImage(buf.Bytes())
		assert.Error(t, err)
	})
}
