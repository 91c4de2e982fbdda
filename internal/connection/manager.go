package connection

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Manager keeps one stream subscription alive and forwards its events.
type Manager interface {
	// Start begins the first connection attempt and returns immediately.
	Start(ctx context.Context) error

	// Stop cancels any pending retry, closes the active connection and
	// moves to the terminal state without a failure notification.
	Stop(ctx context.Context) error

	// Done is closed once the manager reaches the terminal state.
	Done() <-chan struct{}

	// Stats returns a snapshot of the session.
	Stats() ManagerStats
}

// ManagerOption customizes a Manager.
type ManagerOption func(*manager)

// WithClientFactory replaces the WebSocket client constructor.
func WithClientFactory(f ClientFactory) ManagerOption {
	return func(m *manager) {
		m.newClient = f
	}
}

// WithDecodeErrorHandler sets the handler for payloads that fail to decode.
// The default logs the failure and drops the message.
func WithDecodeErrorHandler(h DecodeErrorHandler) ManagerOption {
	return func(m *manager) {
		m.onDecodeError = h
	}
}

type dialResult struct {
	client Client
	err    error
}

// manager implements the Manager interface.
type manager struct {
	cfg           ManagerConfig
	renderer      Renderer
	notifier      Notifier
	logger        *slog.Logger
	newClient     ClientFactory
	onDecodeError DecodeErrorHandler
	decodeLog     rate.Sometimes

	startMu sync.Mutex
	started bool
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}

	// Owned by the run goroutine; never touched elsewhere once started.
	state      State
	attempt    int
	recovering bool
	client     Client
	dialed     chan dialResult
	retry      *time.Timer

	statsMu sync.RWMutex
	stats   ManagerStats
}

// NewManager creates a new Connection Manager.
func NewManager(cfg ManagerConfig, renderer Renderer, notifier Notifier, logger *slog.Logger, opts ...ManagerOption) Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}

	sessionID := uuid.NewString()
	m := &manager{
		cfg:       cfg,
		renderer:  renderer,
		notifier:  notifier,
		logger:    logger.With("session", sessionID),
		newClient: NewClient,
		done:      make(chan struct{}),
		dialed:    make(chan dialResult, 1),
		attempt:   1,
		decodeLog: rate.Sometimes{First: 10, Interval: 10 * time.Second},
	}
	m.onDecodeError = m.logDecodeError

	for _, opt := range opts {
		opt(m)
	}

	m.stats = ManagerStats{SessionID: sessionID, State: StateIdle, Attempt: 1}
	return m
}

// Start begins the connection manager.
func (m *manager) Start(ctx context.Context) error {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	if m.stopped {
		return ErrStopped
	}
	if m.started {
		return ErrAlreadyStarted
	}
	m.started = true
	m.ctx, m.cancel = context.WithCancel(ctx)

	go m.run()

	m.logger.Info("connection manager started",
		"url", m.cfg.Client.URL,
		"max_retries", m.cfg.MaxRetries,
		"retry_delay", m.cfg.RetryDelay,
	)
	return nil
}

// Stop gracefully shuts down. Stopping a manager that was never started
// marks it terminal so a later Start fails.
func (m *manager) Stop(ctx context.Context) error {
	m.startMu.Lock()
	if m.stopped {
		m.startMu.Unlock()
		return nil
	}
	m.stopped = true
	if !m.started {
		m.setState(StateTerminal)
		close(m.done)
		m.startMu.Unlock()
		return nil
	}
	cancel := m.cancel
	m.startMu.Unlock()

	m.logger.Info("stopping connection manager")
	cancel()

	select {
	case <-m.done:
	case <-ctx.Done():
		m.logger.Warn("shutdown timeout, connection may still be closing")
		return ctx.Err()
	}

	m.logger.Info("connection manager stopped")
	return nil
}

// Done returns a channel closed on reaching the terminal state.
func (m *manager) Done() <-chan struct{} {
	return m.done
}

// Stats returns current statistics.
func (m *manager) Stats() ManagerStats {
	m.statsMu.RLock()
	defer m.statsMu.RUnlock()
	return m.stats
}

// run is the single event loop. Every state transition happens here.
func (m *manager) run() {
	defer close(m.done)
	defer m.cancel()

	m.connect()

	for m.state != StateTerminal {
		var (
			dialed <-chan dialResult
			msgs   <-chan TimestampedMessage
			closed <-chan error
			retry  <-chan time.Time
		)
		switch m.state {
		case StateConnecting:
			dialed = m.dialed
		case StateOpen:
			msgs = m.client.Messages()
			closed = m.client.Errors()
		case StateRetryWait:
			retry = m.retry.C
		}

		select {
		case <-m.ctx.Done():
			m.teardown()
		case res := <-dialed:
			if res.err != nil {
				res.client.Close()
				m.handleClose(res.err)
			} else {
				m.handleOpen(res.client)
			}
		case msg := <-msgs:
			m.handleMessage(msg)
		case err := <-closed:
			m.handleClose(err)
		case <-retry:
			m.handleRetry()
		}
	}
}

// connect enters Connecting(attempt) and dials in the background.
func (m *manager) connect() {
	m.setState(StateConnecting)
	m.updateStats(func(s *ManagerStats) { s.Dials++ })

	m.logger.Debug("starting connection", "attempt", m.attempt, "url", m.cfg.Client.URL)

	c := m.newClient(m.cfg.Client, m.logger.With("attempt", m.attempt))
	ctx := m.ctx
	go func() {
		err := c.Connect(ctx)
		m.dialed <- dialResult{client: c, err: err}
	}()
}

// handleOpen runs Connecting(n) -> Open(n).
// A connection that cannot take the handshake counts as a close of attempt n.
func (m *manager) handleOpen(c Client) {
	if err := c.Send([]byte(m.cfg.Handshake)); err != nil {
		m.logger.Warn("failed to send handshake", "error", err)
		c.Close()
		m.handleClose(fmt.Errorf("send handshake: %w", err))
		return
	}

	m.client = c
	m.attempt = 1

	recovered := m.recovering
	m.recovering = false
	m.setState(StateOpen)

	if recovered {
		m.updateStats(func(s *ManagerStats) { s.Reconnects++ })
		m.notify(SeveritySuccess, recoveredText, 0)
	}

	m.logger.Info("connection open", "recovered", recovered)
}

// handleMessage decodes one inbound message and forwards it.
func (m *manager) handleMessage(msg TimestampedMessage) {
	var ev Event
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		m.updateStats(func(s *ManagerStats) { s.DecodeErrors++ })
		m.onDecodeError(msg.Data, err)
		return
	}

	m.renderer.Display(ev)
	m.updateStats(func(s *ManagerStats) { s.Events++ })
}

// handleClose applies the retry policy to the connection that just ended.
func (m *manager) handleClose(reason error) {
	if m.client != nil {
		m.drain()
		m.client.Close()
		m.client = nil
	}

	n := m.attempt
	m.logger.Info("connection closed", "attempt", n, "reason", reason)

	if n > m.cfg.MaxRetries {
		m.setState(StateTerminal)
		m.notify(SeverityDanger, connectionLost, n)
		return
	}

	m.notify(SeverityWarning, fmt.Sprintf(warningFormat, n), n)
	m.recovering = true
	m.retry = time.NewTimer(m.cfg.RetryDelay)
	m.setState(StateRetryWait)
}

// handleRetry runs RetryWait(n) -> Connecting(n+1).
func (m *manager) handleRetry() {
	m.retry = nil
	m.attempt++
	m.connect()
}

// drain forwards messages that arrived before the close was observed.
func (m *manager) drain() {
	for {
		select {
		case msg := <-m.client.Messages():
			m.handleMessage(msg)
		default:
			return
		}
	}
}

// teardown releases everything on cancellation. No notification is emitted.
func (m *manager) teardown() {
	switch m.state {
	case StateRetryWait:
		m.retry.Stop()
		m.retry = nil
	case StateConnecting:
		// The dial observes the cancelled context and returns promptly.
		res := <-m.dialed
		res.client.Close()
	case StateOpen:
		m.client.Close()
		m.client = nil
	}
	m.setState(StateTerminal)
}

func (m *manager) notify(sev Severity, message string, attempt int) {
	m.notifier.Notify(Notification{
		Severity: sev,
		Message:  message,
		Attempt:  attempt,
		At:       time.Now(),
	})
}

// logDecodeError logs the first few failures, then at most one per interval.
func (m *manager) logDecodeError(data []byte, err error) {
	m.decodeLog.Do(func() {
		m.logger.Error("dropping undecodable message",
			"error", err,
			"bytes", len(data),
			"total", m.Stats().DecodeErrors,
		)
	})
}

func (m *manager) setState(s State) {
	m.state = s
	m.updateStats(func(st *ManagerStats) {
		st.State = s
		st.Attempt = m.attempt
		st.Recovering = m.recovering
	})
}

func (m *manager) updateStats(f func(*ManagerStats)) {
	m.statsMu.Lock()
	f(&m.stats)
	m.statsMu.Unlock()
}
