package ingest

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/wishwatch/wishwatch/internal/metrics"
)

// UpdateSource is the slice of the Telegram API the pipeline needs for the
// cold-start fetch. *tgbotapi.BotAPI satisfies it.
type UpdateSource interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

// Pipeline receives shared product links, both live messages while the bot is
// running and the batch that queued up while it was offline, and stages
// the most recent acceptable candidate for confirmation via /wish.
//
// Staging is last-write-wins: a fast sequence of shares keeps only the
// newest candidate. There is no queue.
type Pipeline struct {
	source UpdateSource
	logger *logrus.Logger

	staged *atomic.String
	errs   chan error

	// lastGroupID tracks the most recent media group seen, so only the
	// first message of a multi-item share is considered. Consume runs on a
	// single goroutine (the bot's update loop), so a plain field would do;
	// the cold-start path shares it too, hence atomic.
	lastGroupID *atomic.String

	offset int
}

// New creates a pipeline reading pending updates from source.
func New(source UpdateSource, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		source:      source,
		logger:      logger,
		staged:      atomic.NewString(""),
		lastGroupID: atomic.NewString(""),
		errs:        make(chan error, 8),
	}
}

// ColdStart drains the updates that arrived while the bot was offline,
// stages the newest shared link among them, and commits the Telegram offset
// so the same batch is never redelivered on a later start. Returns how many
// candidates were staged (later ones overwrite earlier ones).
//
// A failure here is reported but never fatal: the bot continues with live
// updates only.
func (p *Pipeline) ColdStart() (int, error) {
	updates, err := p.source.GetUpdates(tgbotapi.UpdateConfig{Offset: 0, Timeout: 0})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch pending updates: %w", err)
	}

	staged := 0
	for _, update := range updates {
		if p.Consume(update) {
			staged++
		}
	}

	if len(updates) > 0 {
		// Requesting with offset = lastID+1 acknowledges everything up to
		// lastID; Telegram drops the acknowledged updates server-side.
		p.offset = updates[len(updates)-1].UpdateID + 1
		if _, err := p.source.GetUpdates(tgbotapi.UpdateConfig{Offset: p.offset, Limit: 1, Timeout: 0}); err != nil {
			p.report(fmt.Errorf("failed to commit update offset %d: %w", p.offset, err))
		}
	}

	p.logger.WithFields(logrus.Fields{
		"pending": len(updates),
		"staged":  staged,
	}).Info("Cold-start share scan complete")

	return staged, nil
}

// Offset returns the update offset the live poller should start from, so
// cold-start updates are not delivered twice.
func (p *Pipeline) Offset() int {
	return p.offset
}

// Consume inspects one update and stages its shared link if acceptable.
// Returns true when a candidate was staged. Never panics outward; stream
// problems are logged and pushed to Errs, the pipeline keeps running.
func (p *Pipeline) Consume(update tgbotapi.Update) (staged bool) {
	defer func() {
		if r := recover(); r != nil {
			p.report(fmt.Errorf("panic while consuming update %d: %v", update.UpdateID, r))
			staged = false
		}
	}()

	msg := update.Message
	if msg == nil || msg.IsCommand() {
		return false
	}

	// An album share arrives as several messages with one MediaGroupID;
	// only its first message counts.
	if msg.MediaGroupID != "" {
		if msg.MediaGroupID == p.lastGroupID.Load() {
			return false
		}
		p.lastGroupID.Store(msg.MediaGroupID)
	}

	candidate := strings.TrimSpace(sharedText(msg))
	if candidate == "" {
		return false
	}

	// Cheap heuristic only; full URL validation happens at add time.
	if !strings.HasPrefix(candidate, "http") {
		metrics.StagedCandidates.WithLabelValues("rejected").Inc()
		p.logger.WithField("candidate", candidate).Debug("Ignored shared text without http prefix")
		return false
	}

	p.staged.Store(candidate)
	metrics.StagedCandidates.WithLabelValues("accepted").Inc()

	p.logger.WithFields(logrus.Fields{
		"chat_id": msg.Chat.ID,
		"url":     candidate,
	}).Info("Staged shared URL")

	return true
}

// Staged returns the currently staged URL, or "" when none is pending.
func (p *Pipeline) Staged() string {
	return p.staged.Load()
}

// Take returns the staged URL and clears it. A share landing in the small
// window between read and clear is dropped, which last-write-wins already
// permits.
func (p *Pipeline) Take() string {
	candidate := p.staged.Load()
	p.staged.Store("")
	return candidate
}

// Errs exposes swallowed pipeline errors for optional observation. The
// channel is bounded; when nobody listens, errors are dropped after being
// logged.
func (p *Pipeline) Errs() <-chan error {
	return p.errs
}

func (p *Pipeline) report(err error) {
	p.logger.Warnf("Ingest pipeline error: %v", err)
	select {
	case p.errs <- err:
	default:
	}
}

// sharedText extracts the candidate text of a share: the message text, or
// the caption for media shares.
func sharedText(msg *tgbotapi.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}
