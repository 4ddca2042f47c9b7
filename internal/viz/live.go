package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/group"
	"github.com/san-kum/springsim/internal/keyframes"
	"github.com/san-kum/springsim/internal/trail"
)

const (
	laneWidth       = 50
	historyCapacity = 120
)

type TickMsg time.Time

// teaSource is a frame.Source fed by the program's tick messages, so every
// animation runs on the bubbletea goroutine.
type teaSource struct {
	pending func(time.Time)
}

func (s *teaSource) Request(fn func(time.Time)) {
	s.pending = fn
}

func (s *teaSource) deliver(now time.Time) bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn(now)
	return true
}

// Live shows a trail chasing a movable target, a two-member group and a
// keyframe sequence, all on one scheduler.
type Live struct {
	interval time.Duration
	src      *teaSource
	sched    *frame.Scheduler

	trail *trail.Trail
	group *group.Group
	keys  *keyframes.Keyframes

	lo, hi   float64
	target   float64
	follower []float64
	record   map[string]float64
	corner   int

	history []float64
	frames  int
	paused  bool
	theme   Theme
	err     error
}

func NewLive(cfg *config.Config) (*Live, error) {
	src := &teaSource{}
	sched := frame.New(src)

	lo, hi := cfg.Run.From, cfg.Run.To
	if lo == hi {
		hi = lo + 1
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	keys, err := keyframes.New(sched, cfg.Keyframes, cfg.KeyframeOptions())
	if err != nil {
		return nil, err
	}

	m := &Live{
		interval: cfg.Frame.Interval,
		src:      src,
		sched:    sched,
		trail:    trail.New(sched, cfg.Trail.Count, cfg.TrailOptions()),
		group:    group.New(sched, cfg.Group, cfg.SpringConfig()),
		keys:     keys,
		lo:       lo,
		hi:       hi,
		target:   cfg.Run.To,
		history:  make([]float64, 0, historyCapacity),
		theme:    Themes[0],
	}
	m.trail.Subscribe(func(v []float64) { m.follower = v })
	m.group.Subscribe(func(r map[string]float64) { m.record = r })
	m.trail.Set(m.target, nil)
	return m, nil
}

func (m *Live) Init() tea.Cmd {
	return m.tick()
}

func (m *Live) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Close()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "left", "h":
			m.retarget(m.target - (m.hi-m.lo)/10)
		case "right", "l":
			m.retarget(m.target + (m.hi-m.lo)/10)
		case "j":
			m.trail.Jump(m.target)
		case "g":
			m.corner = (m.corner + 1) % 4
			m.group.Set(m.cornerRecord(), nil)
		case "p":
			if m.keys.State() == keyframes.Playing {
				m.keys.Pause()
			} else {
				m.keys.Play()
			}
		case "s":
			m.keys.Stop()
		case "t":
			m.theme = m.theme.next()
		}
	case TickMsg:
		if !m.paused {
			m.Step(time.Time(msg))
		}
		return m, m.tick()
	}
	return m, nil
}

// Step delivers one frame to the scheduler if one was requested.
func (m *Live) Step(now time.Time) {
	if !m.src.deliver(now) {
		return
	}
	m.frames++
	m.history = append(m.history, m.trail.Leader().Get())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Live) retarget(to float64) {
	m.target = min(max(to, m.lo), m.hi)
	m.trail.Set(m.target, nil)
}

func (m *Live) cornerRecord() map[string]float64 {
	rec := make(map[string]float64, len(m.group.Keys()))
	for i, k := range m.group.Keys() {
		if (m.corner>>(i%2))&1 == 1 {
			rec[k] = m.hi
		} else {
			rec[k] = m.lo
		}
	}
	return rec
}

// Close destroys every animation the view owns.
func (m *Live) Close() {
	m.trail.Destroy()
	m.group.Destroy()
	m.keys.Destroy()
}

func (m *Live) lane(values ...float64) string {
	l := NewLane(laneWidth, m.lo, m.hi)
	for _, v := range values {
		l.Mark(v)
	}
	return l.String()
}

func (m *Live) View() string {
	st := m.theme.styles()
	var s strings.Builder

	status := st.accent.Render("RUNNING")
	if m.paused {
		status = st.warning.Render("PAUSED")
	}
	s.WriteString(st.header.Render("SPRINGSIM LIVE") + "  " + status + "\n")

	leader := m.trail.Leader()
	s.WriteString(st.label.Render("target") + st.value.Render(fmt.Sprintf("%8.2f", m.target)) + "\n")
	s.WriteString(st.label.Render("leader") + st.leader.Render(m.lane(leader.Get())) + "\n")
	for i, v := range m.follower {
		s.WriteString(st.label.Render(fmt.Sprintf("follower %d", i)) + st.follow.Render(m.lane(v)) + "\n")
	}
	s.WriteString(st.label.Render("pending") + st.value.Render(fmt.Sprintf("%d", m.trail.Pending())) + "\n\n")

	for _, k := range m.group.Keys() {
		s.WriteString(st.label.Render("group "+k) + st.group.Render(m.lane(m.record[k])) + "\n")
	}

	frames := m.keys.Frames()
	progress := 0.0
	if len(frames) > 1 {
		progress = float64(m.keys.Index()) / float64(len(frames)-1)
	}
	s.WriteString("\n" + st.label.Render("keyframes") + st.value.Render(fmt.Sprintf("%-8s %d/%d ", m.keys.State(), m.keys.Index()+1, len(frames))) +
		st.accent.Render(ProgressBar(progress, 20)) + "\n")
	s.WriteString(st.label.Render("value") + st.leader.Render(m.lane(m.keys.Get())) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(6), asciigraph.Width(laneWidth), asciigraph.Caption("leader position"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	s.WriteString(st.help.Render("←/→ target  j jump  g group  p play/pause keyframes  s stop  t theme  space pause  q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, st.panel.Render(s.String()))
}

// Frames is the number of frames delivered so far.
func (m *Live) Frames() int {
	return m.frames
}

func (m *Live) Target() float64 {
	return m.target
}

func (m *Live) Trail() *trail.Trail {
	return m.trail
}

func (m *Live) Group() *group.Group {
	return m.group
}

func (m *Live) Keyframes() *keyframes.Keyframes {
	return m.keys
}
