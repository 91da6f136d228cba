// SPDX-License-Identifier: GPL-3.0-or-later

package seriestore

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreConcurrencyScenarios(t *testing.T) {
	tests := map[string]struct {
		run func(t *testing.T)
	}{
		"concurrent counter increments lose no updates": {
			run: func(t *testing.T) {
				s := NewStore()
				d := mustDeclare(t, s, "ops_total", KindCounter, []string{"worker"})
				sr, err := d.Series("shared")
				require.NoError(t, err)

				const workers = 8
				const perWorker = 5000

				var wg sync.WaitGroup
				wg.Add(workers)
				for w := 0; w < workers; w++ {
					go func() {
						defer wg.Done()
						for i := 0; i < perWorker; i++ {
							sr.add(1)
						}
					}()
				}
				wg.Wait()

				mustValue(t, s, "ops_total", []string{"shared"}, float64(workers*perWorker))
			},
		},
		"concurrent series creation yields one cell per identity": {
			run: func(t *testing.T) {
				s := NewStore()
				d := mustDeclare(t, s, "ops_total", KindCounter, []string{"worker"})

				const workers = 16
				var wg sync.WaitGroup
				var failed atomic.Int64
				wg.Add(workers)
				for w := 0; w < workers; w++ {
					go func() {
						defer wg.Done()
						if err := s.Increment("ops_total", []string{"same"}, 1); err != nil {
							failed.Add(1)
						}
					}()
				}
				wg.Wait()

				require.Zero(t, failed.Load())
				require.Equal(t, 1, d.Len())
				mustValue(t, s, "ops_total", []string{"same"}, float64(workers))
			},
		},
		"declare does not block writers of other metrics": {
			run: func(t *testing.T) {
				s := NewStore()
				mustDeclare(t, s, "busy_total", KindCounter, nil)

				var wg sync.WaitGroup
				var failed atomic.Int64
				stop := make(chan struct{})
				started := make(chan struct{})

				wg.Add(1)
				go func() {
					defer wg.Done()
					for n := 0; ; n++ {
						select {
						case <-stop:
							return
						default:
							if err := s.Increment("busy_total", nil, 1); err != nil {
								failed.Add(1)
								return
							}
							if n == 0 {
								close(started)
							}
						}
					}
				}()

				<-started
				for i := 0; i < 100; i++ {
					name := "g" + string(rune('a'+i%26)) + string(rune('a'+i/26))
					_, err := s.Declare(name, KindGauge, nil)
					require.NoError(t, err)
				}
				close(stop)
				wg.Wait()

				require.Zero(t, failed.Load())
				v, err := s.Value("busy_total", nil)
				require.NoError(t, err)
				assert.Greater(t, v, 0.0)
			},
		},
		"histogram points stay internally consistent under writes": {
			run: func(t *testing.T) {
				s := NewStore()
				d := mustDeclare(t, s, "latency_seconds", KindHistogram, nil, WithBounds(1, 2, 3))

				const writers = 4
				const perWriter = 2000

				var wg sync.WaitGroup
				var inconsistent atomic.Int64
				done := make(chan struct{})

				wg.Add(writers)
				for w := 0; w < writers; w++ {
					go func(w int) {
						defer wg.Done()
						for i := 0; i < perWriter; i++ {
							_ = s.Observe("latency_seconds", nil, float64(w%4)+0.5)
						}
					}(w)
				}

				// cumulative counts must be monotone and bounded by count at every read
				go func() {
					defer close(done)
					for i := 0; i < 200; i++ {
						pts := collectPoints(d)
						if len(pts) == 0 {
							continue
						}
						hp := pts[0].Histogram
						last := uint64(0)
						for _, b := range hp.Buckets {
							if b.CumulativeCount < last {
								inconsistent.Add(1)
							}
							last = b.CumulativeCount
						}
						if hp.Count < last {
							inconsistent.Add(1)
						}
					}
				}()

				wg.Wait()
				<-done

				require.Zero(t, inconsistent.Load())
				pts := collectPoints(d)
				require.Len(t, pts, 1)
				require.Equal(t, uint64(writers*perWriter), pts[0].Histogram.Count)
			},
		},
		"concurrent toggles end on a valid state": {
			run: func(t *testing.T) {
				s := NewStore()
				mustDeclare(t, s, "flag", KindBoolean, nil)

				const workers = 8
				const perWorker = 1001

				var wg sync.WaitGroup
				var failed atomic.Int64
				wg.Add(workers)
				for w := 0; w < workers; w++ {
					go func() {
						defer wg.Done()
						for i := 0; i < perWorker; i++ {
							if _, err := s.Toggle("flag", nil); err != nil {
								failed.Add(1)
								return
							}
						}
					}()
				}
				wg.Wait()

				require.Zero(t, failed.Load())
				v, err := s.Value("flag", nil)
				require.NoError(t, err)
				assert.Contains(t, []float64{0, 1}, v)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, tc.run)
	}
}
