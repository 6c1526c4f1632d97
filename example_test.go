package imgeval_test

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/hupe1980/imgeval"
	"github.com/hupe1980/imgeval/blobstore"
	"github.com/hupe1980/imgeval/distributional"
	"github.com/hupe1980/imgeval/feature"
	"github.com/hupe1980/imgeval/mask"
	"github.com/hupe1980/imgeval/testutil"
)

// ExampleMeanIoU computes mIoU of a 2x2 prediction.
func ExampleMeanIoU() {
	pred := mask.MustLabelGrid([][]int{{0, 1}, {1, 1}})
	truth := mask.MustLabelGrid([][]int{{0, 0}, {1, 1}})

	res, err := imgeval.MeanIoU(pred, truth, 2)
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range res.Classes {
		iou, _ := c.IoU()
		fmt.Printf("class %d: %.4f\n", c.Class, iou)
	}
	fmt.Printf("mIoU: %.4f\n", res.Value)
	// Output:
	// class 0: 0.5000
	// class 1: 0.6667
	// mIoU: 0.5833
}

// ExampleAveragePrecision shows that an empty batch scores zero.
func ExampleAveragePrecision() {
	ap, err := imgeval.AveragePrecision(nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ap)
	// Output: 0
}

// Example_kid evaluates two in-memory image sets with a toy embedder.
func Example_kid() {
	ctx := context.Background()

	store := blobstore.NewMemoryStore()
	rng := testutil.NewRNG(1)
	for i := range 4 {
		_ = store.Put(ctx, fmt.Sprintf("real/%d.png", i), testutil.EncodePNG(rng.NoiseImage(16, 16)))
		_ = store.Put(ctx, fmt.Sprintf("generated/%d.png", i), testutil.EncodePNG(rng.NoiseImage(16, 16)))
	}

	// A real deployment wraps a pretrained network here.
	embedder := feature.EmbedderFunc{
		Size: image.Pt(4, 4),
		Fn: func(_ context.Context, in feature.Input) ([]float64, error) {
			out := make([]float64, len(in.Data))
			for i, v := range in.Data {
				out[i] = float64(v)
			}
			return out, nil
		},
	}

	ev := imgeval.New(embedder, imgeval.WithKID(func(o *distributional.KIDOptions) {
		o.NumSubsets = 10
		o.Seed = 42
	}))

	res, err := ev.KID(ctx,
		imgeval.ImageSet{Store: store, Prefix: "real"},
		imgeval.ImageSet{Store: store, Prefix: "generated"},
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("subset size:", res.SubsetSize)
	fmt.Println("seed:", res.Seed)
	// Output:
	// subset size: 4
	// seed: 42
}
