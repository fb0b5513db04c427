package geojson

import (
	"runtime"
	"sync"

	"github.com/gisops/go-polygon-qa/scan"
	"github.com/gisops/go-polygon-qa/spatial"
)

// decodeAll decodes features on a small worker pool. Results land in an
// index-addressed slice so the delivered feature order is preserved no
// matter how the workers interleave; the scan depends on that order.
func decodeAll(features []Feature, working *spatial.Working) ([]scan.Feature, error) {
	if len(features) == 0 {
		return []scan.Feature{}, nil
	}

	workers := runtime.NumCPU()
	if workers > len(features) {
		workers = len(features)
	}

	out := make([]scan.Feature, len(features))
	errs := make([]error, len(features))
	jobs := make(chan int, len(features))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i], errs[i] = decodeFeature(features[i], i, working)
			}
		}()
	}

	for i := range features {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
