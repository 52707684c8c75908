package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled render to targetSize×targetSize.
// Returns img unchanged when it is already small enough.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= targetSize && b.Dy() <= targetSize {
		return img
	}
	return scale(img, targetSize, targetSize)
}

// scale resizes img to w×h with CatmullRom filtering in premultiplied alpha,
// so transparent texels do not bleed dark halos into edges.
func scale(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), premul, b, draw.Src, nil)

	out := image.NewNRGBA(scaled.Bounds())
	draw.Draw(out, out.Bounds(), scaled, image.Point{}, draw.Src)
	return out
}
