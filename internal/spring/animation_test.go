package spring_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/spring"
)

var _ = Describe("Animation", func() {
	var (
		sched *frame.Scheduler
		clock *frame.Manual
	)

	BeforeEach(func() {
		sched, clock = frame.NewManualScheduler()
	})

	It("settles exactly on the target and resolves finished", func() {
		var updates []float64
		completed := 0
		cfg := spring.DefaultConfig()
		cfg.Hooks.OnUpdate = func(v float64) { updates = append(updates, v) }
		cfg.Hooks.OnComplete = func(float64) { completed++ }

		a := spring.NewAnimation(sched, 0, 100, cfg)
		a.Start()
		Expect(a.IsRunning()).To(BeTrue())
		Expect(sched.Has(a)).To(BeTrue())

		clock.RunUntilIdle(1000)

		Expect(a.IsComplete()).To(BeTrue())
		Expect(a.Position()).To(Equal(100.0))
		Expect(a.Velocity()).To(BeZero())
		Expect(completed).To(Equal(1))
		Expect(updates).NotTo(BeEmpty())
		Expect(updates[len(updates)-1]).To(Equal(100.0))
		Expect(sched.Len()).To(BeZero())

		r, ok := a.Done().Result()
		Expect(ok).To(BeTrue())
		Expect(r.Finished).To(BeTrue())
		Expect(r.Value).To(Equal(100.0))
	})

	It("registers once no matter how often it is started", func() {
		started := 0
		cfg := spring.DefaultConfig()
		cfg.Hooks.OnStart = func() { started++ }

		a := spring.NewAnimation(sched, 0, 1, cfg)
		a.Start()
		a.Start()
		Expect(sched.Len()).To(Equal(1))
		Expect(started).To(Equal(1))
	})

	It("holds still while paused", func() {
		a := spring.NewAnimation(sched, 0, 10, spring.DefaultConfig())
		a.Start()
		clock.StepN(3)
		a.Pause()
		pos := a.Position()

		Expect(sched.Has(a)).To(BeFalse())
		clock.StepN(5)
		Expect(a.Position()).To(Equal(pos))
		Expect(a.State()).To(Equal(spring.Paused))

		a.Resume()
		clock.Step()
		Expect(a.Position()).NotTo(Equal(pos))
	})

	It("cancels its signal when destroyed mid-flight", func() {
		a := spring.NewAnimation(sched, 0, 10, spring.DefaultConfig())
		a.Start()
		clock.StepN(2)
		a.Destroy()
		a.Destroy()

		r, ok := a.Done().Result()
		Expect(ok).To(BeTrue())
		Expect(r.Cancelled).To(BeTrue())
		Expect(sched.Len()).To(BeZero())

		a.Start()
		Expect(a.IsRunning()).To(BeFalse())
	})

	It("never leaves the range between start and target when clamped", func() {
		cfg := spring.DefaultConfig()
		cfg.Damping = 2
		cfg.Clamp = true

		a := spring.NewAnimation(sched, 0, 1, cfg)
		a.Start()
		for clock.Step() {
			Expect(a.Position()).To(BeNumerically(">=", 0))
			Expect(a.Position()).To(BeNumerically("<=", 1))
		}
		Expect(a.Position()).To(Equal(1.0))
	})

	It("restarts with a fresh signal when retargeted after completion", func() {
		a := spring.NewAnimation(sched, 0, 1, spring.DefaultConfig())
		a.Start()
		clock.RunUntilIdle(1000)
		first := a.Done()

		a.Redirect(5)
		Expect(a.IsRunning()).To(BeTrue())
		Expect(a.Done()).NotTo(BeIdenticalTo(first))
		Expect(a.From()).To(Equal(1.0))

		clock.RunUntilIdle(1000)
		Expect(a.Position()).To(Equal(5.0))
	})

	It("swaps start and target on reverse", func() {
		a := spring.NewAnimation(sched, 2, 8, spring.DefaultConfig())
		a.Reverse()
		Expect(a.From()).To(Equal(8.0))
		Expect(a.To()).To(Equal(2.0))
	})

	It("replaces non-finite inputs", func() {
		a := spring.NewAnimation(sched, nan(), inf(), spring.DefaultConfig())
		Expect(a.From()).To(BeZero())
		Expect(a.To()).To(BeZero())
	})

	It("keeps ticking the others when a hook panics", func() {
		cfg := spring.DefaultConfig()
		cfg.Hooks.OnUpdate = func(float64) { panic("boom") }
		bad := spring.NewAnimation(sched, 0, 1, cfg)
		good := spring.NewAnimation(sched, 0, 1, spring.DefaultConfig())
		bad.Start()
		good.Start()

		clock.RunUntilIdle(1000)
		Expect(bad.IsComplete()).To(BeTrue())
		Expect(good.IsComplete()).To(BeTrue())
	})
})
