package postprocess

import (
	"image"
	"math"
)

// Fit crops img to its non-transparent pixels and centres the result on a
// size×size canvas, scaled so its longer side spans fillRatio of the canvas.
// A fully transparent image yields an empty canvas.
func Fit(img *image.NRGBA, size int, fillRatio float64) *image.NRGBA {
	bounds, ok := alphaBounds(img)
	if !ok {
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	}
	return scaleAndCenter(img.SubImage(bounds).(*image.NRGBA), size, fillRatio)
}

// alphaBounds returns the smallest rectangle holding every pixel with alpha > 0.
func alphaBounds(img *image.NRGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

func scaleAndCenter(img *image.NRGBA, canvasSize int, fillRatio float64) *image.NRGBA {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	// Scale to fit within fillRatio of canvas
	maxDim := float64(canvasSize) * fillRatio
	scaleF := maxDim / math.Max(float64(srcW), float64(srcH))
	newW := max(int(float64(srcW)*scaleF+0.5), 1)
	newH := max(int(float64(srcH)*scaleF+0.5), 1)

	scaled := scale(img, newW, newH)

	// Center on canvas
	canvas := image.NewNRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	offX := (canvasSize - newW) / 2
	offY := (canvasSize - newH) / 2
	for y := 0; y < newH; y++ {
		cy := offY + y
		if cy < 0 || cy >= canvasSize {
			continue
		}
		srcOff := y * scaled.Stride
		dstOff := cy*canvas.Stride + offX*4
		copyLen := newW * 4
		if offX+newW > canvasSize {
			copyLen = (canvasSize - offX) * 4
		}
		if offX >= 0 && copyLen > 0 {
			copy(canvas.Pix[dstOff:dstOff+copyLen], scaled.Pix[srcOff:srcOff+copyLen])
		}
	}
	return canvas
}
