package feature

import (
	"image"

	"golang.org/x/image/draw"
)

// Per-channel normalization applied after scaling pixels to [0, 1].
const (
	normMean = 0.5
	normStd  = 0.5
)

// ToRGB converts img to an RGBA image with its origin at (0, 0) and an opaque
// alpha channel. Alpha is dropped without blending, so translucent pixels keep
// their straight (non-premultiplied) color. Grayscale and paletted images are
// expanded to three channels.
func ToRGB(img image.Image) *image.RGBA {
	b := img.Bounds()
	src, ok := img.(*image.NRGBA)
	if !ok {
		src = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)
		b = src.Bounds()
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		s := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		d := dst.Pix[y*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			d[4*x] = s[4*x]
			d[4*x+1] = s[4*x+1]
			d[4*x+2] = s[4*x+2]
			d[4*x+3] = 0xff
		}
	}
	return dst
}

// Resize scales img to size using interp. A nil interp selects bilinear.
// Images already at the target size are returned as is.
func Resize(img *image.RGBA, size image.Point, interp draw.Interpolator) *image.RGBA {
	if img.Bounds().Size() == size {
		return img
	}
	if interp == nil {
		interp = draw.BiLinear
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	interp.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Normalize converts an RGB image into a CHW tensor with values
// (p/255 − 0.5) / 0.5.
func Normalize(img *image.RGBA) Input {
	size := img.Bounds().Size()
	n := size.X * size.Y
	in := Input{
		Channels: 3,
		Height:   size.Y,
		Width:    size.X,
		Data:     make([]float32, 3*n),
	}

	for y := range size.Y {
		row := img.Pix[y*img.Stride : y*img.Stride+4*size.X]
		for x := range size.X {
			i := y*size.X + x
			px := row[4*x : 4*x+3]
			for c := range 3 {
				in.Data[c*n+i] = float32((float64(px[c])/255 - normMean) / normStd)
			}
		}
	}

	return in
}

// Preprocess runs ToRGB, Resize and Normalize.
func Preprocess(img image.Image, size image.Point, interp draw.Interpolator) Input {
	return Normalize(Resize(ToRGB(img), size, interp))
}
