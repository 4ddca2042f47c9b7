package trail_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/spring"
	"github.com/san-kum/springsim/internal/trail"
)

var _ = Describe("Trail", func() {
	var (
		sched *frame.Scheduler
		clock *frame.Manual
		tr    *trail.Trail
	)

	BeforeEach(func() {
		sched, clock = frame.NewManualScheduler()
		tr = trail.New(sched, 3, trail.Options{FollowDelay: 2, Config: spring.DefaultConfig()})
	})

	It("starts every follower at the initial value", func() {
		Expect(tr.Len()).To(Equal(3))
		Expect(tr.GetValues()).To(Equal([]float64{0, 0, 0}))
	})

	It("releases follower i after (i+1) delays", func() {
		tr.Set(100, nil)
		Expect(tr.Leader().IsAnimating()).To(BeTrue())
		Expect(tr.Pending()).To(Equal(3))

		clock.Step()
		Expect(tr.GetValues()).To(Equal([]float64{0, 0, 0}))

		clock.Step()
		vals := tr.GetValues()
		Expect(vals[0]).To(BeNumerically(">", 0))
		Expect(vals[1]).To(BeZero())
		Expect(tr.Pending()).To(Equal(2))

		clock.StepN(2)
		vals = tr.GetValues()
		Expect(vals[1]).To(BeNumerically(">", 0))
		Expect(vals[2]).To(BeZero())

		clock.RunUntilIdle(1000)
		Expect(tr.GetValues()).To(Equal([]float64{100, 100, 100}))
		Expect(tr.IsAnimating()).To(BeFalse())
	})

	It("brings five followers to rest in order, none before its delay", func() {
		const delay = 2
		tr = trail.New(sched, 5, trail.Options{FollowDelay: delay, Config: spring.DefaultConfig()})
		tr.Set(100, nil)

		moved := make([]int, tr.Len())
		rested := make([]int, tr.Len())
		for tick := 1; tick <= 2000 && clock.Step(); tick++ {
			for i, v := range tr.GetValues() {
				if moved[i] == 0 && v != 0 {
					moved[i] = tick
				}
				if rested[i] == 0 && v == 100 {
					rested[i] = tick
				}
			}
		}

		for i := range rested {
			Expect(rested[i]).NotTo(BeZero(), "follower %d never rested", i)
			Expect(moved[i]).To(Equal((i+1)*delay), "follower %d moved early or late", i)
			Expect(rested[i]).To(BeNumerically(">=", i*delay))
			if i > 0 {
				Expect(rested[i]).To(BeNumerically(">=", rested[i-1]))
			}
		}
		Expect(rested[0]).To(BeNumerically("<=", rested[4]))
	})

	It("never lets a stale follower update overwrite a newer target", func() {
		var seen [][]float64
		tr.Subscribe(func(v []float64) { seen = append(seen, v) })

		first := tr.Set(100, nil)
		clock.Step()
		second := tr.Set(-50, nil)

		clock.RunUntilIdle(1000)
		for _, vals := range seen {
			for _, v := range vals {
				Expect(v).To(BeNumerically("<=", 0))
			}
		}
		Expect(tr.GetValues()).To(Equal([]float64{-50, -50, -50}))

		r, _ := first.Result()
		Expect(r.Cancelled).To(BeTrue())
		r, _ = second.Result()
		Expect(r.Finished).To(BeTrue())
	})

	It("keeps only the last of two retargets issued in the same frame", func() {
		tr.Set(100, nil)
		tr.Set(30, nil)
		Expect(tr.Pending()).To(Equal(3))

		clock.RunUntilIdle(1000)
		Expect(tr.GetValues()).To(Equal([]float64{30, 30, 30}))
	})

	It("jumps everything at once and discards scheduled updates", func() {
		tr.Set(100, nil)
		clock.Step()
		tr.Jump(5)

		Expect(tr.Pending()).To(BeZero())
		Expect(tr.GetValues()).To(Equal([]float64{5, 5, 5}))
		Expect(tr.Leader().Get()).To(Equal(5.0))

		clock.RunUntilIdle(100)
		Expect(tr.GetValues()).To(Equal([]float64{5, 5, 5}))
	})

	It("retargets followers immediately without a delay", func() {
		tr = trail.New(sched, 2, trail.Options{})
		tr.Set(10, nil)
		Expect(tr.Pending()).To(BeZero())
		clock.Step()
		for _, v := range tr.GetValues() {
			Expect(v).To(BeNumerically(">", 0))
		}
	})

	It("notifies once per frame when debounced", func() {
		tr = trail.New(sched, 4, trail.Options{Config: spring.DefaultConfig(), Debounce: true})
		calls := 0
		tr.Subscribe(func([]float64) { calls++ })
		tr.Set(10, nil)

		for i := 0; i < 5; i++ {
			before := calls
			clock.Step()
			Expect(calls - before).To(Equal(1))
		}
	})

	It("tears everything down on destroy", func() {
		sig := tr.Set(100, nil)
		clock.Step()
		tr.Destroy()
		tr.Destroy()

		Expect(tr.Pending()).To(BeZero())
		r, ok := sig.Result()
		Expect(ok).To(BeTrue())
		Expect(r.Cancelled).To(BeTrue())

		clock.RunUntilIdle(100)
		Expect(sched.Len()).To(BeZero())
		Expect(sched.Idle()).To(BeTrue())
	})
})
