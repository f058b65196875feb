package ballistics_test

import (
	"math"
	"runtime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/projectile/internal/ballistics"
)

var _ = Describe("Path", func() {
	var p ballistics.Projectile

	BeforeEach(func() {
		p = ballistics.New(0, 30, 45, 10)
	})

	Describe("sample count", func() {
		count := func(start, end float64, perSecond int) int {
			n, err := ballistics.DefaultSampleCount(start, end, perSecond)
			Expect(err).NotTo(HaveOccurred())
			return n
		}

		It("derives 50 samples per second of the interval", func() {
			Expect(count(0, 10, 0)).To(Equal(500))
			Expect(count(1, 3.4, 0)).To(Equal(100))
			Expect(count(0, 10, 20)).To(Equal(200))
		})

		It("rounds half to even", func() {
			Expect(count(0, 2.5, 0)).To(Equal(100))
			Expect(count(0, 3.5, 0)).To(Equal(200))
		})

		It("takes the absolute value of a reversed interval", func() {
			Expect(count(10, 0, 0)).To(Equal(500))
		})

		DescribeTable("rejects intervals it cannot sample",
			func(start, end float64) {
				_, err := ballistics.DefaultSampleCount(start, end, 0)
				Expect(err).To(MatchError(ballistics.ErrInvalidSampleRange))

				_, err = p.GeneratePath(g, start, end, ballistics.PathConfig{ConditionalStop: true})
				Expect(err).To(MatchError(ballistics.ErrInvalidSampleRange))
			},
			Entry("overflowing count", 0.0, 2e17),
			Entry("reversed overflowing count", 2e17, 0.0),
			Entry("infinite span", -math.MaxFloat64, math.MaxFloat64),
			Entry("NaN end", 0.0, math.NaN()),
		)

		It("rejects explicit counts above the limit", func() {
			for _, n := range []int{ballistics.MaxSamples + 1, -ballistics.MaxSamples - 1, math.MinInt} {
				_, err := p.GeneratePath(g, 0, 1, ballistics.PathConfig{Samples: n})
				Expect(err).To(MatchError(ballistics.ErrInvalidSampleRange))
			}
		})

		It("rejects non-finite bounds with an explicit count", func() {
			_, err := p.GeneratePath(g, 0, math.Inf(1), ballistics.PathConfig{Samples: 10})
			Expect(err).To(MatchError(ballistics.ErrInvalidSampleRange))
		})
	})

	It("spaces samples evenly over the closed interval", func() {
		path, err := p.GeneratePath(g, 0, 10, ballistics.PathConfig{})
		Expect(err).NotTo(HaveOccurred())
		Expect(path.Len()).To(Equal(500))
		Expect(path.Times[0]).To(Equal(0.0))
		Expect(path.Times[499]).To(Equal(10.0))
		Expect(path.Truncated).To(BeFalse())

		step := 10.0 / 499
		vx, _ := p.Velocity()
		for i := 0; i < path.Len(); i++ {
			Expect(path.Times[i]).To(BeNumerically("~", float64(i)*step, 1e-9))
			Expect(path.X[i]).To(BeNumerically("~", vx*path.Times[i], 1e-9))
			Expect(path.Y[i]).To(Equal(p.PositionY(path.Times[i], g)))
		}
	})

	It("honours an explicit sample count", func() {
		path, err := p.GeneratePath(g, 0, 1, ballistics.PathConfig{Samples: 11})
		Expect(err).NotTo(HaveOccurred())
		Expect(path.Times).To(HaveLen(11))
		Expect(path.Times[5]).To(BeNumerically("~", 0.5, 1e-12))

		path, err = p.GeneratePath(g, 0, 1, ballistics.PathConfig{Samples: -4})
		Expect(err).NotTo(HaveOccurred())
		Expect(path.Times).To(HaveLen(4))

		path, err = p.GeneratePath(g, 2, 7, ballistics.PathConfig{Samples: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(path.Times).To(Equal([]float64{2}))
	})

	It("samples a reversed interval backwards", func() {
		path, err := p.GeneratePath(g, 0, -10, ballistics.PathConfig{})
		Expect(err).NotTo(HaveOccurred())
		Expect(path.Len()).To(Equal(500))
		Expect(path.Times[0]).To(Equal(0.0))
		Expect(path.Times[499]).To(Equal(-10.0))
	})

	It("rejects a reversed interval under strict validation", func() {
		_, err := p.GeneratePath(g, 10, 0, ballistics.PathConfig{StrictRange: true})
		Expect(err).To(MatchError(ballistics.ErrInvalidSampleRange))
	})

	It("rejects an interval that yields no samples", func() {
		_, err := p.GeneratePath(g, 3, 3.2, ballistics.PathConfig{})
		Expect(err).To(MatchError(ballistics.ErrInvalidSampleRange))
	})

	Describe("conditional stop", func() {
		It("freezes at ground level and stops before the nominal end", func() {
			path, err := p.GeneratePath(g, 0, 10, ballistics.PathConfig{ConditionalStop: true, StopY: 0})
			Expect(err).NotTo(HaveOccurred())

			touchdown, err := p.TouchdownTime(0, g)
			Expect(err).NotTo(HaveOccurred())
			Expect(path.TouchdownTime).To(Equal(touchdown))
			Expect(path.Truncated).To(BeTrue())
			Expect(path.Len()).To(BeNumerically("<", 500))

			for i, y := range path.Y {
				Expect(y).To(BeNumerically(">=", 0))
				if path.Times[i] > touchdown-ballistics.StopThreshold {
					Expect(y).To(Equal(0.0))
				}
			}
			last := path.At(path.Len() - 1)
			Expect(last.Y).To(Equal(0.0))
			Expect(last.T).To(BeNumerically("<=", 10))
			Expect(touchdown - last.T).To(BeNumerically("<", ballistics.StopThreshold))
			Expect(touchdown - path.Times[path.Len()-2]).To(BeNumerically(">=", ballistics.StopThreshold))
		})

		It("stops at the apex height when asked to", func() {
			h, err := p.MaxHeight(g)
			Expect(err).NotTo(HaveOccurred())
			path, err := p.GeneratePath(g, 0, 10, ballistics.PathConfig{ConditionalStop: true, StopY: h})
			Expect(err).NotTo(HaveOccurred())
			Expect(path.Y[path.Len()-1]).To(Equal(h))
		})

		It("allocates for the flight rather than the nominal interval", func() {
			var before, after runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&before)

			path, err := p.GeneratePath(g, 0, 1e6, ballistics.PathConfig{ConditionalStop: true})

			runtime.ReadMemStats(&after)
			Expect(err).NotTo(HaveOccurred())
			Expect(path.Truncated).To(BeTrue())
			Expect(path.Len()).To(BeNumerically("<", 300))
			Expect(cap(path.Times)).To(BeNumerically("<=", path.Len()+2))
			Expect(after.TotalAlloc - before.TotalAlloc).To(BeNumerically("<", 1<<20))
		})

		It("keeps the full interval when touchdown lies beyond it", func() {
			path, err := p.GeneratePath(g, 0, 2, ballistics.PathConfig{ConditionalStop: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(path.Len()).To(Equal(100))
			Expect(path.Truncated).To(BeFalse())
		})

		It("fails when the stop height is unreachable", func() {
			_, err := p.GeneratePath(g, 0, 10, ballistics.PathConfig{ConditionalStop: true, StopY: 1000})
			Expect(err).To(MatchError(ballistics.ErrNoTouchdown))
		})
	})

	Describe("Samples", func() {
		It("is restartable", func() {
			seq, err := p.Samples(g, 0, 5, ballistics.PathConfig{ConditionalStop: true})
			Expect(err).NotTo(HaveOccurred())

			var first, second []ballistics.Sample
			for s := range seq {
				first = append(first, s)
			}
			for s := range seq {
				second = append(second, s)
			}
			Expect(first).NotTo(BeEmpty())
			Expect(second).To(Equal(first))
		})

		It("stops when the consumer breaks", func() {
			seq, err := p.Samples(g, 0, 10, ballistics.PathConfig{})
			Expect(err).NotTo(HaveOccurred())
			count := 0
			for range seq {
				count++
				if count == 3 {
					break
				}
			}
			Expect(count).To(Equal(3))
		})
	})

	It("reproduces heights between samples by linear interpolation", func() {
		path, err := p.GeneratePath(g, 0, 4, ballistics.PathConfig{Samples: 10001})
		Expect(err).NotTo(HaveOccurred())

		for _, t := range []float64{0, 0.12345, 1.5, 2.1626, 3.99999, 4} {
			y, ok := ballistics.Interpolate(path, t)
			Expect(ok).To(BeTrue())
			Expect(y).To(BeNumerically("~", p.PositionY(t, g), 1e-5))
		}

		_, ok := ballistics.Interpolate(path, 4.1)
		Expect(ok).To(BeFalse())
		_, ok = ballistics.Interpolate(path, math.NaN())
		Expect(ok).To(BeFalse())
		_, ok = ballistics.Interpolate(&ballistics.Path{}, 0)
		Expect(ok).To(BeFalse())
	})

	It("builds linspace like a closed interval", func() {
		Expect(ballistics.Linspace(0, 1, 5)).To(Equal([]float64{0, 0.25, 0.5, 0.75, 1}))
		Expect(ballistics.Linspace(0, 1, 0)).To(BeNil())
		Expect(math.IsNaN(ballistics.Linspace(3, 3, 2)[1])).To(BeFalse())
	})
})
