package spring_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/settle"
	"github.com/san-kum/springsim/internal/spring"
)

var _ = Describe("Value on the default scheduler", func() {
	It("animates in real time when built without a scheduler", func() {
		v := spring.NewValue(nil, 0, spring.DefaultConfig())

		var sig *settle.Signal
		frame.Do(func() {
			sig = v.Set(1, &spring.Override{Stiffness: spring.Float(1000), Damping: spring.Float(60)})
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		r, err := sig.Wait(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Finished).To(BeTrue())
		Expect(r.Value).To(Equal(1.0))

		var (
			pos       float64
			animating bool
			members   int
		)
		frame.Do(func() {
			pos, animating = v.Get(), v.IsAnimating()
			v.Destroy()
			members = frame.Default().Len()
		})
		Expect(pos).To(Equal(1.0))
		Expect(animating).To(BeFalse())
		Expect(members).To(BeZero())
	})
})
