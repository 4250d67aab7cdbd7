package form

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

var ErrBusy = errors.New("form is not idle")

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
)

// SubmitFunc stores the given field values and returns the created record.
type SubmitFunc func(ctx context.Context, fields map[string]string) (any, error)

// Timer is the part of *time.Timer the machine needs.
type Timer interface {
	Stop() bool
}

type AfterFunc func(d time.Duration, f func()) Timer

// Snapshot is a copy of the machine state handed to listeners.
type Snapshot struct {
	State  State             `json:"state"`
	Fields map[string]string `json:"fields"`
	Record any               `json:"record,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// Machine drives one open form: Idle -> Submitting -> Success -> Idle, or
// Idle -> Submitting -> Idle when the submission is rejected. The return to
// Idle after a success happens on a timer and clears the fields.
type Machine struct {
	mu        sync.Mutex
	state     State
	fields    map[string]string
	record    any
	lastErr   error
	timer     Timer
	closed    bool
	listeners []func(Snapshot)

	submit     SubmitFunc
	resetDelay time.Duration
	afterFunc  AfterFunc
}

type MachineOption func(*Machine)

// WithAfterFunc replaces time.AfterFunc, mainly so tests can fire the reset by hand.
func WithAfterFunc(af AfterFunc) MachineOption {
	return func(m *Machine) { m.afterFunc = af }
}

func NewMachine(submit SubmitFunc, resetDelay time.Duration, opts ...MachineOption) *Machine {
	m := &Machine{
		state:      StateIdle,
		fields:     map[string]string{},
		submit:     submit,
		resetDelay: resetDelay,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnChange registers fn to receive a snapshot after every transition.
func (m *Machine) OnChange(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Update merges field values into the form. Only allowed while idle.
func (m *Machine) Update(fields map[string]string) error {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return ErrBusy
	}
	for k, v := range fields {
		m.fields[k] = v
	}
	m.lastErr = nil
	snap, listeners := m.snapshotLocked(), m.listenersLocked()
	m.mu.Unlock()

	notify(listeners, snap)
	return nil
}

func (m *Machine) Submit(ctx context.Context) (any, error) {
	m.mu.Lock()
	if m.state != StateIdle || m.closed {
		m.mu.Unlock()
		return nil, ErrBusy
	}
	m.state = StateSubmitting
	m.lastErr = nil
	fields := copyFields(m.fields)
	snap, listeners := m.snapshotLocked(), m.listenersLocked()
	m.mu.Unlock()
	notify(listeners, snap)

	record, err := m.submit(ctx, fields)

	m.mu.Lock()
	if err != nil {
		// 입력값은 그대로 유지
		m.state = StateIdle
		m.lastErr = err
	} else {
		m.state = StateSuccess
		m.record = record
		if !m.closed {
			m.timer = m.afterFunc(m.resetDelay, m.reset)
		}
	}
	snap, listeners = m.snapshotLocked(), m.listenersLocked()
	m.mu.Unlock()
	notify(listeners, snap)

	return record, err
}

// Close stops a pending reset. The machine accepts no further submissions.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Machine) reset() {
	m.mu.Lock()
	if m.state != StateSuccess {
		m.mu.Unlock()
		return
	}
	m.state = StateIdle
	m.fields = map[string]string{}
	m.record = nil
	m.timer = nil
	snap, listeners := m.snapshotLocked(), m.listenersLocked()
	m.mu.Unlock()

	notify(listeners, snap)
}

func (m *Machine) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:  m.state,
		Fields: copyFields(m.fields),
		Record: m.record,
	}
	if m.lastErr != nil {
		snap.Error = m.lastErr.Error()
	}
	return snap
}

func (m *Machine) listenersLocked() []func(Snapshot) {
	return slices.Clone(m.listeners)
}

func notify(listeners []func(Snapshot), snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}

func copyFields(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
