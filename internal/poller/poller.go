// Package poller runs the homework status poll loop.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"homework_bot/internal/homework"
	"homework_bot/internal/model"
	"homework_bot/internal/storage"
)

// ErrEmptyWorkList is returned when the API reports no homework and nothing
// has been sent yet.
var ErrEmptyWorkList = errors.New("homework list is unexpectedly empty")

const errorPrefix = "Сбой в работе программы: "

// APIClient fetches the homework status response since a Unix timestamp.
type APIClient interface {
	GetAPIAnswer(ctx context.Context, fromDate int64) (any, error)
}

// Notifier delivers a text message and reports whether it got through.
type Notifier interface {
	Notify(text string) bool
}

// Poller periodically queries the API and relays status changes.
type Poller struct {
	api      APIClient
	notifier Notifier
	store    storage.Storage
	log      *slog.Logger
	interval time.Duration

	state model.LoopState
}

// New creates a Poller that sleeps interval between iterations.
func New(api APIClient, notifier Notifier, store storage.Storage, log *slog.Logger, interval time.Duration) *Poller {
	return &Poller{
		api:      api,
		notifier: notifier,
		store:    store,
		log:      log,
		interval: interval,
	}
}

// Restore loads the persisted loop state.
func (p *Poller) Restore(ctx context.Context) error {
	st, err := p.store.LoadState(ctx)
	if err != nil {
		return err
	}
	p.state = st
	p.log.Info("state restored", "cursor", st.Cursor, "has_last_sent", st.LastSentMessage != "")
	return nil
}

// State returns a copy of the current loop state.
func (p *Poller) State() model.LoopState {
	return p.state
}

// Run starts the poll loop, blocking until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.log.Info("poller started", "interval", p.interval)
	for {
		p.runOnce(ctx)

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			p.log.Info("poller stopped")
			return
		case <-timer.C:
		}
	}
}

func (p *Poller) runOnce(ctx context.Context) {
	err := p.Iterate(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		p.reportError(ctx, err)
	} else {
		p.state.LastErrorMessage = ""
	}
	p.persist(ctx)
}

// Iterate performs one poll: fetch, advance the cursor, validate, and notify
// about the newest homework if its status message changed.
func (p *Poller) Iterate(ctx context.Context) error {
	resp, err := p.api.GetAPIAnswer(ctx, p.state.Cursor)
	if err != nil {
		return err
	}

	if date, ok := homework.CurrentDate(resp); ok {
		p.state.Cursor = date
	} else {
		p.log.Warn("response has no usable current_date, cursor kept", "cursor", p.state.Cursor)
	}

	works, err := homework.CheckResponse(resp)
	if err != nil {
		return err
	}
	if len(works) == 0 {
		if p.state.LastSentMessage == "" {
			return ErrEmptyWorkList
		}
		p.log.Debug("no new homework statuses")
		return nil
	}

	msg, err := homework.ParseStatus(works[0])
	if err != nil {
		return err
	}
	if msg == p.state.LastSentMessage {
		p.log.Debug("status message already sent", "message", msg)
		return nil
	}

	if p.deliver(ctx, model.KindStatus, msg) {
		p.state.LastSentMessage = msg
		p.log.Info("status change sent", "message", msg)
	}
	return nil
}

func (p *Poller) reportError(ctx context.Context, err error) {
	msg := errorPrefix + err.Error()
	p.log.Error("iteration failed", "error", err)

	if msg == p.state.LastErrorMessage {
		p.log.Debug("error already reported", "message", msg)
		return
	}
	if p.deliver(ctx, model.KindError, msg) {
		p.state.LastErrorMessage = msg
	}
}

func (p *Poller) deliver(ctx context.Context, kind model.NotificationKind, text string) bool {
	if !p.notifier.Notify(text) {
		return false
	}
	if err := p.store.RecordNotification(ctx, &model.Notification{Kind: kind, Text: text}); err != nil {
		p.log.Error("record notification", "kind", kind, "error", err)
	}
	return true
}

func (p *Poller) persist(ctx context.Context) {
	if err := p.store.SaveState(ctx, p.state); err != nil {
		p.log.Error("save state", "error", err)
	}
}
