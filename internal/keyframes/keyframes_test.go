package keyframes_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/keyframes"
	"github.com/san-kum/springsim/internal/spring"
)

var _ = Describe("Keyframes", func() {
	var (
		sched     *frame.Scheduler
		clock     *frame.Manual
		k         *keyframes.Keyframes
		entered   []int
		completed int
		updates   []float64
	)

	BeforeEach(func() {
		sched, clock = frame.NewManualScheduler()
		entered, completed, updates = nil, 0, nil

		var err error
		k, err = keyframes.New(sched, []keyframes.Keyframe{
			{Value: 0},
			{Value: 10},
			{Value: 5, Config: &spring.Override{Stiffness: spring.Float(300)}},
		}, keyframes.Options{
			OnKeyframe: func(i int) { entered = append(entered, i) },
			OnUpdate:   func(v float64) { updates = append(updates, v) },
			OnComplete: func() { completed++ },
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an empty sequence", func() {
		_, err := keyframes.New(sched, nil, keyframes.Options{})
		Expect(errors.Is(err, dynamo.ErrInvalidKeyframes)).To(BeTrue())
	})

	It("plays every segment in order and completes once", func() {
		Expect(k.State()).To(Equal(keyframes.Idle))
		k.Play()
		Expect(k.State()).To(Equal(keyframes.Playing))

		clock.RunUntilIdle(5000)

		Expect(entered).To(Equal([]int{0, 1, 2}))
		Expect(completed).To(Equal(1))
		Expect(k.State()).To(Equal(keyframes.Done))
		Expect(k.Get()).To(Equal(5.0))
		Expect(updates).To(ContainElement(10.0))
		Expect(sched.Len()).To(BeZero())
	})

	It("waits for each segment to rest before advancing", func() {
		k.Play()
		clock.StepN(3)
		Expect(k.Index()).To(BeNumerically("<=", 1))
		for clock.Step() {
			if k.Index() == 2 {
				break
			}
		}
		Expect(k.Get()).To(Equal(10.0))
	})

	It("freezes mid-segment while paused", func() {
		k.Play()
		clock.StepN(20)
		k.Pause()
		pos, idx := k.Get(), k.Index()
		Expect(k.State()).To(Equal(keyframes.Paused))

		clock.StepN(30)
		Expect(k.Get()).To(Equal(pos))
		Expect(k.Index()).To(Equal(idx))

		k.Play()
		Expect(k.State()).To(Equal(keyframes.Playing))
		clock.RunUntilIdle(5000)
		Expect(k.State()).To(Equal(keyframes.Done))
		Expect(completed).To(Equal(1))
	})

	It("resets to the first keyframe on stop", func() {
		k.Play()
		clock.StepN(40)
		k.Stop()

		Expect(k.Get()).To(Equal(0.0))
		Expect(k.Index()).To(BeZero())
		Expect(k.State()).To(Equal(keyframes.Idle))
		clock.RunUntilIdle(100)
		Expect(k.Get()).To(Equal(0.0))
		Expect(completed).To(BeZero())
	})

	It("jumps to a clamped index without animating", func() {
		k.JumpTo(99)
		Expect(k.Index()).To(Equal(2))
		Expect(k.Get()).To(Equal(5.0))
		Expect(entered).To(Equal([]int{2}))
		Expect(updates).To(ContainElement(5.0))
		Expect(sched.Len()).To(BeZero())

		k.JumpTo(-4)
		Expect(k.Index()).To(BeZero())
	})

	It("continues from the jumped-to keyframe while playing", func() {
		k.Play()
		clock.Step()
		k.JumpTo(1)
		clock.RunUntilIdle(5000)

		Expect(entered).To(Equal([]int{0, 1, 2}))
		Expect(k.Get()).To(Equal(5.0))
		Expect(completed).To(Equal(1))
	})

	It("restarts from the top once done", func() {
		k.Play()
		clock.RunUntilIdle(5000)
		entered = nil

		k.Play()
		clock.RunUntilIdle(5000)
		Expect(entered).To(Equal([]int{0, 1, 2}))
		Expect(completed).To(Equal(2))
	})

	It("moves a segment with that keyframe's spring override", func() {
		lastSegment := func(o *spring.Override) []float64 {
			sched, clock := frame.NewManualScheduler()
			var seg []float64
			inLast := false
			k, err := keyframes.New(sched, []keyframes.Keyframe{
				{Value: 0},
				{Value: 10},
				{Value: 5, Config: o},
			}, keyframes.Options{
				OnKeyframe: func(i int) { inLast = i == 2 },
				OnUpdate: func(v float64) {
					if inLast {
						seg = append(seg, v)
					}
				},
			})
			Expect(err).NotTo(HaveOccurred())
			k.Play()
			clock.RunUntilIdle(5000)
			Expect(k.State()).To(Equal(keyframes.Done))
			return seg
		}

		plain := lastSegment(nil)
		stiff := lastSegment(&spring.Override{Stiffness: spring.Float(1000), Damping: spring.Float(60)})
		Expect(plain).NotTo(BeEmpty())
		Expect(stiff).NotTo(BeEmpty())

		Expect(stiff[0]).To(BeNumerically("<", plain[0]), "a stiffer spring covers more ground in its first step")
		Expect(len(stiff)).To(BeNumerically("<", len(plain)))
	})

	It("halts on destroy", func() {
		k.Play()
		clock.StepN(5)
		k.Destroy()
		k.Destroy()

		clock.RunUntilIdle(100)
		Expect(completed).To(BeZero())
		Expect(sched.Len()).To(BeZero())
		k.Play()
		Expect(sched.Has(k)).To(BeFalse())
		Expect(k.IsDestroyed()).To(BeTrue())
	})
})
