package group_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/group"
	"github.com/san-kum/springsim/internal/spring"
)

var _ = Describe("Group", func() {
	var (
		sched *frame.Scheduler
		clock *frame.Manual
		g     *group.Group
	)

	BeforeEach(func() {
		sched, clock = frame.NewManualScheduler()
		g = group.New(sched, map[string]float64{"x": 0, "y": 0}, spring.DefaultConfig())
	})

	It("exposes its members", func() {
		Expect(g.Keys()).To(Equal([]string{"x", "y"}))
		x, ok := g.Member("x")
		Expect(ok).To(BeTrue())
		Expect(x.Get()).To(BeZero())
		_, ok = g.Member("z")
		Expect(ok).To(BeFalse())
	})

	It("resolves only after every member has come to rest", func() {
		sig := g.Set(map[string]float64{"x": 100, "y": 50}, nil)
		Expect(g.IsAnimating()).To(BeTrue())

		for clock.Step() {
			if sig.IsResolved() {
				Expect(g.IsAnimating()).To(BeFalse())
				Expect(g.Get()).To(Equal(map[string]float64{"x": 100, "y": 50}))
			}
		}

		r, ok := sig.Result()
		Expect(ok).To(BeTrue())
		Expect(r.Finished).To(BeTrue())
	})

	It("notifies subscribers at most once per frame with the full record", func() {
		var records []map[string]float64
		g.Subscribe(func(r map[string]float64) { records = append(records, r) })
		Expect(records).To(HaveLen(1))

		g.Set(map[string]float64{"x": 100, "y": 50}, nil)
		for i := 0; i < 10; i++ {
			before := len(records)
			clock.Step()
			Expect(len(records) - before).To(Equal(1))
			last := records[len(records)-1]
			Expect(last).To(HaveKey("x"))
			Expect(last).To(HaveKey("y"))
			Expect(last["x"]).To(Equal(g.Get()["x"]))
		}

		clock.RunUntilIdle(1000)
		Expect(records[len(records)-1]).To(Equal(map[string]float64{"x": 100, "y": 50}))
	})

	It("only animates the members it is given", func() {
		g.Set(map[string]float64{"x": 10, "nope": 3}, nil)
		y, _ := g.Member("y")
		Expect(y.IsAnimating()).To(BeFalse())
		clock.RunUntilIdle(1000)
		Expect(g.Get()).To(Equal(map[string]float64{"x": 10, "y": 0}))
	})

	It("jumps without animating", func() {
		g.Jump(map[string]float64{"y": 7})
		Expect(g.Get()["y"]).To(Equal(7.0))
		Expect(g.IsAnimating()).To(BeFalse())
	})

	It("resolves outstanding work and drops the queued notification on destroy", func() {
		calls := 0
		g.Subscribe(func(map[string]float64) { calls++ })
		sig := g.Set(map[string]float64{"x": 10, "y": 10}, nil)
		clock.Step()
		g.Jump(map[string]float64{"x": 1})

		g.Destroy()
		g.Destroy()
		before := calls
		clock.RunUntilIdle(10)

		Expect(calls).To(Equal(before))
		r, ok := sig.Result()
		Expect(ok).To(BeTrue())
		Expect(r.Cancelled).To(BeTrue())
		Expect(sched.Len()).To(BeZero())

		Expect(g.Set(map[string]float64{"x": 1}, nil).IsResolved()).To(BeTrue())
	})
})
