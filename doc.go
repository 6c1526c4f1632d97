// Package imgeval provides quality metrics for generative image models and
// segmentation outputs.
//
// Two metric families are supported:
//
//   - Distributional distances between a real and a generated image set,
//     computed over feature embeddings: Fréchet Inception Distance (FID) and
//     Kernel Inception Distance (KID).
//   - Supervised comparisons between predicted and true labels: mean
//     Intersection over Union (mIoU) and pixel-level Average Precision (AP).
//
// A face verification value is provided as a thin layer over an injected
// face encoder.
//
// # Quick Start
//
// The embedding network is injected through feature.Embedder:
//
//	ev := imgeval.New(inception,
//	    imgeval.WithLogger(imgeval.NewTextLogger(slog.LevelInfo)),
//	    imgeval.WithKID(func(o *distributional.KIDOptions) { o.Seed = 42 }),
//	)
//
//	fid, _ := ev.FID(ctx, imgeval.Dir("./real", true), imgeval.Dir("./generated", true))
//	kid, _ := ev.KID(ctx, imgeval.Dir("./real", true), imgeval.Dir("./generated", true))
//	fmt.Println(fid.Distance, kid.Value, kid.Seed)
//
// Image sets can live in any blobstore.BlobStore:
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("eval/"))
//	real := imgeval.ImageSet{Store: store, Prefix: "real/", Recursive: true}
//
// # Segmentation Metrics
//
// Segmentation metrics need no embedder:
//
//	miou, _ := imgeval.MeanIoU(pred, truth, 19)
//	if miou.Defined {
//	    fmt.Println(miou.Value)
//	}
//	ap, _ := imgeval.AveragePrecision(samples)
//
// # Feature Cache
//
// Extraction dominates the cost of FID and KID. With WithFeatureCache, image
// sets that carry a CacheKey are embedded once and reloaded from the cache
// store afterwards.
//
// # Reproducibility
//
// KID draws its subsets from a math/rand source seeded with
// KIDOptions.Seed; the seed is reported in the result. All metrics are
// deterministic given their inputs and seed.
package imgeval
