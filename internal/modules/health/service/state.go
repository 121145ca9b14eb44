package service

import (
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	lastPollUnix atomic.Int64 // unix seconds
	cycles       atomic.Int64
	cycleErrors  atomic.Int64
	eventsSent   atomic.Int64
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

// TouchPoll отмечает успешный цикл опроса.
func (s *State) TouchPoll(t time.Time, events int) {
	s.lastPollUnix.Store(t.Unix())
	s.cycles.Add(1)
	s.eventsSent.Add(int64(events))
}

func (s *State) CycleError() { s.cycleErrors.Add(1) }

func (s *State) LastPoll() time.Time {
	u := s.lastPollUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Cycles() int64      { return s.cycles.Load() }
func (s *State) CycleErrors() int64 { return s.cycleErrors.Load() }
func (s *State) EventsSent() int64  { return s.eventsSent.Load() }

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
