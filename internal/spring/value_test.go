package spring_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/spring"
)

func nan() float64 { return math.NaN() }
func inf() float64 { return math.Inf(1) }

var _ = Describe("Value", func() {
	var (
		sched *frame.Scheduler
		clock *frame.Manual
		v     *spring.Value
	)

	BeforeEach(func() {
		sched, clock = frame.NewManualScheduler()
		v = spring.NewValue(sched, 0, spring.DefaultConfig())
	})

	It("calls a new subscriber with the current value", func() {
		var got []float64
		v.Subscribe(func(x float64) { got = append(got, x) })
		Expect(got).To(Equal([]float64{0}))
	})

	It("reaches the target of Set and resolves finished", func() {
		sig := v.Set(100, nil)
		Expect(v.IsAnimating()).To(BeTrue())

		clock.RunUntilIdle(1000)

		Expect(v.Get()).To(Equal(100.0))
		Expect(v.IsAnimating()).To(BeFalse())
		r, ok := sig.Result()
		Expect(ok).To(BeTrue())
		Expect(r.Finished).To(BeTrue())
		Expect(r.Value).To(Equal(100.0))
	})

	It("jumps synchronously and cancels the animation in flight", func() {
		var last float64
		v.Subscribe(func(x float64) { last = x })
		sig := v.Set(100, nil)
		clock.StepN(5)

		v.Jump(42)
		Expect(last).To(Equal(42.0))
		Expect(v.Get()).To(Equal(42.0))
		Expect(v.Velocity()).To(BeZero())
		Expect(sched.Len()).To(BeZero())

		r, _ := sig.Result()
		Expect(r.Cancelled).To(BeTrue())

		clock.StepN(10)
		Expect(v.Get()).To(Equal(42.0))
	})

	It("runs at most one animation however often it is retargeted", func() {
		var sigs []interface{ IsResolved() bool }
		for i := 1; i <= 20; i++ {
			sigs = append(sigs, v.Set(float64(i), nil))
			clock.Step()
			Expect(sched.Len()).To(BeNumerically("<=", 1))
		}
		for _, s := range sigs[:len(sigs)-1] {
			Expect(s.IsResolved()).To(BeTrue())
		}
		clock.RunUntilIdle(2000)
		Expect(v.Get()).To(Equal(20.0))
	})

	It("carries velocity into a retarget", func() {
		v.Set(100, nil)
		clock.StepN(5)
		Expect(v.Velocity()).To(BeNumerically(">", 0))

		still := spring.NewValue(sched, v.Get(), spring.DefaultConfig())
		v.Set(-100, nil)
		still.Set(-100, nil)
		clock.Step()

		Expect(v.Target()).To(Equal(-100.0))
		Expect(v.Get()).To(BeNumerically(">", still.Get()))
	})

	It("uses a per-call override without changing the base config", func() {
		v.Set(1, &spring.Override{Stiffness: spring.Float(500)})
		Expect(v.Config().Stiffness).To(Equal(spring.DefaultConfig().Stiffness))
	})

	It("freezes in place on Stop", func() {
		sig := v.Set(10, nil)
		clock.StepN(3)
		pos := v.Get()

		v.Stop()
		clock.StepN(3)
		Expect(v.Get()).To(Equal(pos))
		Expect(v.Velocity()).To(BeZero())
		r, _ := sig.Result()
		Expect(r.Cancelled).To(BeTrue())
	})

	It("bumps the generation on every supersession", func() {
		g := v.Generation()
		v.Set(1, nil)
		v.Jump(2)
		Expect(v.Generation()).To(BeNumerically(">", g+1))
	})

	It("pauses and resumes the running animation", func() {
		v.Set(10, nil)
		clock.StepN(2)
		v.Pause()
		pos := v.Get()
		Expect(v.IsPaused()).To(BeTrue())
		clock.StepN(4)
		Expect(v.Get()).To(Equal(pos))

		v.Resume()
		clock.RunUntilIdle(1000)
		Expect(v.Get()).To(Equal(10.0))
	})

	It("stops notifying after unsubscribe", func() {
		calls := 0
		unsub := v.Subscribe(func(float64) { calls++ })
		unsub()
		unsub()
		v.Jump(3)
		Expect(calls).To(Equal(1))
	})

	It("applies SetConfig to a live animation", func() {
		v.Set(10, nil)
		v.SetConfig(&spring.Override{Stiffness: spring.Float(400)})
		Expect(v.Config().Stiffness).To(Equal(400.0))
		clock.RunUntilIdle(1000)
		Expect(v.Get()).To(Equal(10.0))
	})

	It("keeps the per-call override when SetConfig changes another field", func() {
		cfg := spring.DefaultConfig()
		cfg.Stiffness, cfg.Damping = 300, 2
		v = spring.NewValue(sched, 0, cfg)
		v.Set(100, &spring.Override{Clamp: spring.Bool(true)})
		clock.StepN(2)
		v.SetConfig(&spring.Override{Mass: spring.Float(1)})

		peak := 0.0
		v.Subscribe(func(x float64) { peak = math.Max(peak, x) })
		clock.RunUntilIdle(5000)

		Expect(peak).To(BeNumerically("<=", 100.0))
		Expect(v.Get()).To(Equal(100.0))
		Expect(v.Config().Clamp).To(BeFalse())
	})

	Context("after Destroy", func() {
		BeforeEach(func() {
			v.Set(10, nil)
			clock.Step()
			v.Destroy()
			v.Destroy()
		})

		It("is inert", func() {
			Expect(v.IsDestroyed()).To(BeTrue())
			Expect(sched.Len()).To(BeZero())

			sig := v.Set(5, nil)
			r, ok := sig.Result()
			Expect(ok).To(BeTrue())
			Expect(r.Cancelled).To(BeTrue())

			pos := v.Get()
			v.Jump(99)
			Expect(v.Get()).To(Equal(pos))
		})
	})
})
