// Command region-stress exercises the region reclamation core end to end:
// one owner goroutine allocates into regions and drains expired
// descriptors, while holder goroutines retain and release descriptors
// concurrently. A debug HTTP inspector and an optional file-based dump
// trigger expose live stats.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/orizon-lang/regionrt/internal/region"
	"github.com/orizon-lang/regionrt/internal/regiondebug"
)

func main() {
	var (
		addr       = flag.String("addr", "127.0.0.1:0", "debug HTTP listen address (empty to disable)")
		duration   = flag.Duration("duration", 10*time.Second, "how long to run")
		holders    = flag.Int("holders", 4, "concurrent descriptor holder goroutines")
		poolBound  = flag.Int("pool-bound", region.DefaultPoolBound, "free-page pool capacity")
		opsPerSec  = flag.Float64("rate", 0, "owner loop iterations per second (0 = unlimited)")
		trigger    = flag.String("trigger", "", "stats dump trigger file (empty to disable)")
		epochEvery = flag.Int("epoch-every", 64, "advance the epoch every N iterations")
	)
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	src := region.NewHeapPageSource()
	root := region.NewRoot(region.RootConfig{PoolBound: *poolBound, Source: src})

	if *addr != "" {
		insp, err := regiondebug.StartDebugHTTP(root.Stats, *addr)
		if err != nil {
			log.Fatalf("debug http: %v", err)
		}
		log.Printf("inspector listening on http://%s/regions", insp.Addr())
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = insp.Shutdown(ctx)
		}()
	}

	if *trigger != "" {
		tw, err := regiondebug.WatchDumpTrigger(*trigger, func() {
			dumpStats(root)
		})
		if err != nil {
			log.Fatalf("dump trigger: %v", err)
		}
		log.Printf("touch %s to dump stats", *trigger)
		defer tw.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	workCh := make(chan *region.Region, 4*(*holders))
	recycleCh := make(chan *region.Region, 4*(*holders))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < *holders; i++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case r, ok := <-workCh:
					if !ok {
						return nil
					}
					if r.Release() {
						select {
						case recycleCh <- r:
						case <-gctx.Done():
							return nil
						}
					}
				}
			}
		})
	}

	var limiter *rate.Limiter
	if *opsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(*opsPerSec), 1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var queue region.DescriptorQueue
	var iterations, recycled, expired int

	for i := 0; ; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
		} else if ctx.Err() != nil {
			break
		}

		r, err := root.NewRegion()
		if err != nil {
			log.Fatalf("new region: %v", err)
		}
		for n := 1 + rng.Intn(8); n > 0; n-- {
			if _, err := root.AllocateFrom(r, 64+rng.Intn(region.PayloadSize-64)); err != nil {
				log.Fatalf("allocate: %v", err)
			}
		}

		if i%3 == 0 {
			// Descriptor-queue path: one expired descriptor retired by the
			// owner through the expiration driver.
			r.Retain()
			queue.PutExpired(r)
			expired += root.DrainExpired(&queue)
		} else {
			// Concurrent path: every holder releases one descriptor; the
			// zero observer hands the region back for reclamation.
			for h := 0; h < *holders; h++ {
				r.Retain()
			}
			sent := true
			for h := 0; h < *holders && sent; h++ {
				select {
				case workCh <- r:
				case <-ctx.Done():
					sent = false
				}
			}
			if !sent {
				break
			}
		}

		if *epochEvery > 0 && i%*epochEvery == *epochEvery-1 {
			root.AdvanceEpoch()
		}

	drain:
		for {
			select {
			case r := <-recycleCh:
				root.RecycleRegion(r)
				recycled++
			default:
				break drain
			}
		}
		iterations++
	}

	close(workCh)
	if err := g.Wait(); err != nil {
		log.Fatalf("holders: %v", err)
	}
	for {
		select {
		case r := <-recycleCh:
			root.RecycleRegion(r)
			recycled++
			continue
		default:
		}
		break
	}

	log.Printf("done: iterations=%d recycled=%d expired=%d pooled=%d/%d source_acquired=%d source_released=%d",
		iterations, recycled, expired, root.PooledPages(), root.PoolBound(),
		src.Acquired(), src.Released())
	dumpStats(root)
}

func dumpStats(root *region.Root) {
	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(root.Stats())
}
