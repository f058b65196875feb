package ballistics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/projectile/internal/ballistics"
)

var _ = Describe("Cache", func() {
	var (
		p ballistics.Projectile
		c *ballistics.Cache
	)

	BeforeEach(func() {
		p = ballistics.New(0, 30, 45, 10)
		c = ballistics.NewCache(p)
	})

	It("keys max height by acceleration", func() {
		earth, err := c.MaxHeight(g)
		Expect(err).NotTo(HaveOccurred())
		moon, err := c.MaxHeight(-1.62)
		Expect(err).NotTo(HaveOccurred())
		Expect(moon).To(BeNumerically(">", earth))

		again, err := c.MaxHeight(g)
		Expect(err).NotTo(HaveOccurred())
		Expect(again).To(Equal(earth))
		Expect(c.Len()).To(Equal(2))
	})

	It("keys touchdown by target and acceleration", func() {
		ground, err := c.TouchdownTime(0, g)
		Expect(err).NotTo(HaveOccurred())
		raised, err := c.TouchdownTime(10, g)
		Expect(err).NotTo(HaveOccurred())
		Expect(raised).To(BeNumerically("<", ground))

		want, _ := p.TouchdownTime(0, g)
		Expect(ground).To(Equal(want))
		Expect(c.Len()).To(Equal(2))
	})

	It("does not cache failures", func() {
		_, err := c.MaxHeight(0)
		Expect(err).To(MatchError(ballistics.ErrInvalidAcceleration))
		_, err = c.TouchdownTime(500, g)
		Expect(err).To(MatchError(ballistics.ErrNoTouchdown))
		Expect(c.Len()).To(BeZero())
		Expect(c.Projectile()).To(Equal(p))
	})
})
