package intake

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/handyfix/lead-intake/internal/observability/metrics"
	"github.com/handyfix/lead-intake/pkg/logging"
)

const (
	confirmToken   = "confirm"
	greetingText   = "Hi! I'm the HandyFix assistant. What's your name?"
	defaultTimeout = 30 * time.Second
)

// ErrBusy is returned when a turn arrives while a confirm sequence's
// collaborator calls are still outstanding.
var ErrBusy = errors.New("intake: submission in progress")

// DialogueState is the engine's explicit session state, threaded through
// every transition. SubmittedLeadID is set at most once and is the sole
// guard against duplicate submission.
type DialogueState struct {
	Step            Step
	Lead            Lead
	SubmittedLeadID string
}

// Engine runs the lead-intake dialogue for a single visitor session. One
// logical writer at a time: a turn is rejected with ErrBusy while a confirm
// sequence is in flight.
type Engine struct {
	uploader PhotoUploader
	saver    LeadSaver
	replier  ReplyGenerator
	logger   *logging.Logger
	metrics  *metrics.IntakeMetrics
	timeout  time.Duration
	previews PreviewFactory

	busy atomic.Bool

	mu          sync.Mutex
	state       DialogueState
	attachments *AttachmentSet
	transcript  transcript
	phase       submitPhase
}

// Option customizes engine construction.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics attaches intake metrics. Nil-safe.
func WithMetrics(m *metrics.IntakeMetrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithCallTimeout bounds each collaborator call during confirm.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithPreviewFactory supplies local preview handles for staged photos.
func WithPreviewFactory(f PreviewFactory) Option {
	return func(e *Engine) { e.previews = f }
}

// NewEngine creates an engine with an empty lead and the opening question
// already in the transcript.
func NewEngine(uploader PhotoUploader, saver LeadSaver, replier ReplyGenerator, opts ...Option) *Engine {
	e := &Engine{
		uploader: uploader,
		saver:    saver,
		replier:  replier,
		logger:   logging.Default(),
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.attachments = NewAttachmentSet(e.previews)
	e.transcript.appendText(SpeakerAssistant, greetingText)
	return e
}

// State returns a snapshot of the dialogue state.
func (e *Engine) State() DialogueState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Messages returns the full transcript in insertion order.
func (e *Engine) Messages() []Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transcript.all()
}

// Busy reports whether a confirm sequence is in flight.
func (e *Engine) Busy() bool { return e.busy.Load() }

// Attach stages photo selections for the eventual submission. Rejected
// while a confirm sequence is running.
func (e *Engine) Attach(files []File) ([]*Attachment, error) {
	if e.busy.Load() {
		return nil, ErrBusy
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	accepted := e.attachments.Add(files)
	if len(accepted) < len(files) {
		e.logger.Debug("intake: attachments dropped",
			"offered", len(files),
			"accepted", len(accepted),
		)
	}
	return accepted, nil
}

// Staged returns the attachments currently waiting for submission.
func (e *Engine) Staged() []*Attachment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attachments.Staged()
}

// Remove unstages one attachment and releases its preview.
func (e *Engine) Remove(id string) bool {
	if e.busy.Load() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attachments.Remove(id)
}

// Close tears the session down, releasing all preview handles. In-flight
// collaborator calls are abandoned.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attachments.ReleaseAll()
}

// ProcessTurn applies one user turn: echoes the input into the transcript,
// either advances the step machine or runs the confirm sequence, and
// returns the messages the turn produced.
func (e *Engine) ProcessTurn(ctx context.Context, text string) ([]Message, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer e.busy.Store(false)

	e.mu.Lock()
	defer e.mu.Unlock()

	mark := len(e.transcript.msgs)
	trimmed := strings.TrimSpace(text)

	if trimmed != "" {
		e.transcript.appendText(SpeakerUser, trimmed)
	}

	// Echo newly attached photos; the pending preview list empties here
	// but the staged collection keeps them until submission.
	pending := e.attachments.FlushPending()
	if len(pending) > 0 {
		images := make([]ImageRef, 0, len(pending))
		for _, a := range pending {
			images = append(images, ImageRef{URL: a.PreviewURL(), Name: a.Name})
		}
		e.transcript.appendImages(SpeakerUser, images)
	}

	if strings.EqualFold(trimmed, confirmToken) {
		e.confirm(ctx)
	} else {
		e.advanceStep(trimmed, len(pending))
	}

	return e.transcript.all()[mark:], nil
}

func (e *Engine) advanceStep(trimmed string, photosThisTurn int) {
	prev := e.state.Step
	next, patch, reply := Advance(prev, TurnInput{
		Text:           trimmed,
		PhotosThisTurn: photosThisTurn,
		PhotosStaged:   e.attachments.StagedCount(),
	})

	outcome := "accepted"
	if next == prev && patch.IsEmpty() && prev != StepDone {
		outcome = "reprompt"
	}

	e.state.Lead = patch.Apply(e.state.Lead)
	e.state.Step = next
	e.transcript.appendText(SpeakerAssistant, reply)

	if next == StepDone && prev != StepDone {
		// Provisional count: URLs are not known until upload.
		e.state.Lead.PhotosCount = e.attachments.StagedCount()
		e.transcript.appendSummary(e.state.Lead)
	}

	e.metrics.ObserveTurn(prev.String(), outcome)
	e.logger.Debug("intake: turn processed",
		"step", prev.String(),
		"next", next.String(),
		"outcome", outcome,
	)
}
