package ballistics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/projectile/internal/ballistics"
)

const g = -9.81

var _ = Describe("Projectile", func() {
	var p ballistics.Projectile

	BeforeEach(func() {
		p = ballistics.New(0, 30, 45, 10)
	})

	DescribeTable("DecomposeVelocity preserves magnitude",
		func(speed, angle float64) {
			vx, vy := ballistics.DecomposeVelocity(speed, angle)
			Expect(vx*vx + vy*vy).To(BeNumerically("~", speed*speed, 1e-9*math.Max(1, speed*speed)))
		},
		Entry("flat", 10.0, 0.0),
		Entry("diagonal", 30.0, 45.0),
		Entry("vertical", 12.5, 90.0),
		Entry("downward", 7.0, -30.0),
		Entry("beyond a turn", 3.0, 400.0),
		Entry("negative speed", -4.0, 60.0),
		Entry("zero", 0.0, 33.0),
	)

	It("decomposes 90 degrees to a pure vertical component", func() {
		vx, vy := ballistics.DecomposeVelocity(20, 90)
		Expect(vx).To(BeNumerically("~", 0, 1e-12))
		Expect(vy).To(BeNumerically("~", 20, 1e-12))
	})

	Describe("PositionY", func() {
		It("returns the initial height at time zero", func() {
			for _, a := range []float64{g, 0, 3.7, -1.62} {
				q := ballistics.New(12.5, 30, 45, 10)
				Expect(q.PositionY(0, a)).To(Equal(12.5))
			}
		})

		It("computes negative times literally", func() {
			_, vy := p.Velocity()
			Expect(p.PositionY(-1, g)).To(BeNumerically("~", -vy+0.5*g, 1e-12))
		})

		It("does not change the projectile", func() {
			before := p
			p.PositionY(2, g)
			p.KineticEnergy(2, g)
			Expect(p).To(Equal(before))
		})
	})

	Describe("energy", func() {
		It("scales speed by half the mass without squaring", func() {
			Expect(p.KineticEnergy(0, g)).To(BeNumerically("~", 0.5*10*30, 1e-9))

			vx, vy := p.Velocity()
			vy += g * 2
			Expect(p.KineticEnergy(2, g)).To(BeNumerically("~", 0.5*10*math.Sqrt(vx*vx+vy*vy), 1e-9))
		})

		It("derives potential energy from the height", func() {
			Expect(p.PotentialEnergy(0, g)).To(BeNumerically("~", 0, 1e-12))
			Expect(p.PotentialEnergy(1.5, g)).To(BeNumerically("~", 10*g*p.PositionY(1.5, g), 1e-9))
		})

		It("reports launch momentum and gravity force", func() {
			px, py := p.Momentum()
			vx, vy := p.Velocity()
			Expect(px).To(BeNumerically("~", 10*vx, 1e-12))
			Expect(py).To(BeNumerically("~", 10*vy, 1e-12))
			Expect(p.GravityForce(g)).To(BeNumerically("~", -98.1, 1e-12))
		})
	})

	Describe("MaxHeight", func() {
		It("matches the classic 45 degree launch", func() {
			h, err := p.MaxHeight(g)
			Expect(err).NotTo(HaveOccurred())
			expected := math.Pow(30*math.Sin(math.Pi/4), 2) / (2 * 9.81)
			Expect(h).To(BeNumerically("~", expected, 1e-9))
			Expect(h).To(BeNumerically("~", 22.94, 0.01))
		})

		It("agrees with the height at the analytic peak time", func() {
			for _, y0 := range []float64{0, 4, 150} {
				q := ballistics.New(y0, 25, 70, 2)
				h, err := q.MaxHeight(g)
				Expect(err).NotTo(HaveOccurred())
				_, vy := q.Velocity()
				Expect(y0 + h).To(BeNumerically("~", q.PositionY(-vy/g, g), 1e-9))

				apex, err := q.Apex(g)
				Expect(err).NotTo(HaveOccurred())
				Expect(apex.Y).To(BeNumerically("~", y0+h, 1e-9))
				Expect(apex.X).To(BeNumerically("~", q.PositionX(apex.T), 1e-12))
			}
		})

		It("rejects zero acceleration", func() {
			_, err := p.MaxHeight(0)
			Expect(errors.Is(err, ballistics.ErrInvalidAcceleration)).To(BeTrue())

			_, err = p.ApexTime(0)
			Expect(err).To(MatchError(ballistics.ErrInvalidAcceleration))
		})
	})

	Describe("TouchdownTime", func() {
		It("lands the classic launch back on the ground", func() {
			t, err := p.TouchdownTime(0, g)
			Expect(err).NotTo(HaveOccurred())
			Expect(t).To(BeNumerically("~", 2*30*math.Sin(math.Pi/4)/9.81, 1e-9))
			Expect(t).To(BeNumerically("~", 4.33, 0.01))
		})

		DescribeTable("returns to launch height after -2·vy/a",
			func(y0, speed, angle, a float64) {
				q := ballistics.New(y0, speed, angle, 1)
				_, vy := q.Velocity()
				t, err := q.TouchdownTime(y0, a)
				Expect(err).NotTo(HaveOccurred())
				Expect(t).To(BeNumerically("~", -2*vy/a, 1e-9))
			},
			Entry("earth", 0.0, 30.0, 45.0, g),
			Entry("raised", 5.0, 18.0, 60.0, g),
			Entry("moon", 1.0, 10.0, 30.0, -1.62),
			Entry("upward acceleration, downward launch", 0.0, 10.0, -30.0, 4.0),
		)

		It("takes the later root when launched from a height", func() {
			q := ballistics.New(50, 10, 0, 1)
			t, err := q.TouchdownTime(0, g)
			Expect(err).NotTo(HaveOccurred())
			Expect(t).To(BeNumerically("~", math.Sqrt(100/9.81), 1e-9))
			Expect(q.PositionY(t, g)).To(BeNumerically("~", 0, 1e-9))
		})

		It("fails for a target above the apex", func() {
			_, err := p.TouchdownTime(100, g)
			Expect(err).To(MatchError(ballistics.ErrNoTouchdown))

			var pe *ballistics.ParamError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Target).To(Equal(100.0))
			Expect(pe.Acceleration).To(Equal(g))
			Expect(pe.Error()).To(ContainSubstring("target=100"))
		})

		It("rejects zero acceleration", func() {
			_, err := p.TouchdownTime(0, 0)
			Expect(err).To(MatchError(ballistics.ErrInvalidAcceleration))
		})
	})
})
