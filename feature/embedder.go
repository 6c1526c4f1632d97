package feature

import (
	"context"
	"image"
)

// Input is a normalized image tensor in channel-major (CHW) layout:
// Data[c*Height*Width + y*Width + x]. Values are in [-1, 1].
type Input struct {
	Channels int
	Height   int
	Width    int
	Data     []float32
}

// At returns the value of channel c at row y, column x.
func (in Input) At(c, y, x int) float32 {
	return in.Data[(c*in.Height+y)*in.Width+x]
}

// Embedder maps a preprocessed image to a fixed-length feature vector.
//
// Implementations wrap a pretrained network (e.g. the pool features of an
// Inception model). Embed must return vectors of the same length for every
// input; errors are treated as a failure of that single image.
type Embedder interface {
	// InputSize is the spatial size (width, height) images are resized to.
	InputSize() image.Point
	Embed(ctx context.Context, in Input) ([]float64, error)
}

// EmbedderFunc adapts a function to the Embedder interface.
type EmbedderFunc struct {
	Size image.Point
	Fn   func(ctx context.Context, in Input) ([]float64, error)
}

// InputSize implements Embedder.
func (f EmbedderFunc) InputSize() image.Point { return f.Size }

// Embed implements Embedder.
func (f EmbedderFunc) Embed(ctx context.Context, in Input) ([]float64, error) {
	return f.Fn(ctx, in)
}
