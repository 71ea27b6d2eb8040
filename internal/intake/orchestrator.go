package intake

import (
	"context"
	"fmt"
	"time"
)

// submitPhase tracks where the confirm sequence is. The sequence is
// strictly ordered: upload, then persist, then AI reply. Any failure
// aborts the remaining phases for this confirm attempt.
type submitPhase int

const (
	phaseIdle submitPhase = iota
	phaseUploading
	phasePersisting
	phaseRequestingReply
)

func (p submitPhase) String() string {
	switch p {
	case phaseUploading:
		return "uploading"
	case phasePersisting:
		return "persisting"
	case phaseRequestingReply:
		return "requesting_reply"
	default:
		return "idle"
	}
}

// confirm runs the submission sequence. Caller holds the engine lock.
func (e *Engine) confirm(ctx context.Context) {
	defer func() { e.phase = phaseIdle }()

	if !e.state.Lead.Complete() {
		e.transcript.appendText(SpeakerAssistant,
			`Please finish the questions first, then type "confirm".`)
		e.metrics.ObserveSubmission("incomplete")
		return
	}

	// Repeated confirm after a successful save: no new side effects other
	// than a fresh AI reply.
	if e.state.SubmittedLeadID != "" {
		e.transcript.appendText(SpeakerAssistant,
			fmt.Sprintf("Already confirmed. Ticket #%s.", e.state.SubmittedLeadID))
		e.metrics.ObserveSubmission("duplicate")
		e.requestReply(ctx)
		return
	}

	e.transcript.appendText(SpeakerAssistant, "Thanks! Let me review the details...")

	if staged := e.attachments.Staged(); len(staged) > 0 {
		e.phase = phaseUploading
		e.transcript.appendText(SpeakerAssistant, "Uploading your photo(s)...")

		files := make([]File, 0, len(staged))
		for _, a := range staged {
			files = append(files, File{Name: a.Name, ContentType: a.ContentType, Data: a.Payload})
		}

		urls, err := e.uploadTimed(ctx, files)
		if err != nil {
			e.logger.Error("intake: photo upload failed", "error", err, "count", len(files))
			e.transcript.appendText(SpeakerAssistant,
				"Sorry - I couldn't upload your photos right now. Please try again.")
			e.metrics.ObserveSubmission("upload_failed")
			return
		}

		e.state.Lead.PhotoURLs = urls
		// The URLs are durable now; payloads and previews are done.
		e.attachments.ClearStaged()
	}

	// Photos may have been removed after reaching Done, so the count
	// recorded at that point can be stale. The uploaded URLs are the
	// ground truth at persist time.
	e.state.Lead.PhotosCount = len(e.state.Lead.PhotoURLs)

	e.phase = phasePersisting
	e.transcript.appendText(SpeakerAssistant, "Saving your request...")

	saved, err := e.saveTimed(ctx, e.state.Lead)
	if err != nil {
		e.logger.Error("intake: lead save failed", "error", err)
		e.transcript.appendText(SpeakerAssistant,
			"Sorry - I couldn't save your request right now. Please try again.")
		e.metrics.ObserveSubmission("save_failed")
		return
	}

	if saved.ID != "" {
		e.state.SubmittedLeadID = saved.ID
		e.transcript.appendText(SpeakerAssistant,
			fmt.Sprintf("Confirmed. Ticket #%s saved.", saved.ID))
	} else {
		e.transcript.appendText(SpeakerAssistant, "Confirmed. Saved.")
	}
	e.metrics.ObserveSubmission("saved")
	e.logger.Info("intake: lead submitted",
		"lead_id", saved.ID,
		"photos", e.state.Lead.PhotosCount,
	)

	e.requestReply(ctx)
}

// requestReply asks the AI collaborator for a closing reply. A failure is
// reported but never rolls back the already-durable lead.
func (e *Engine) requestReply(ctx context.Context) {
	e.phase = phaseRequestingReply

	prompt := BuildPrompt(e.state.Lead)
	text, err := e.replyTimed(ctx, prompt)
	if err != nil {
		e.logger.Warn("intake: AI reply failed", "error", err)
		e.transcript.appendText(SpeakerAssistant,
			"Your request is saved, but I couldn't reach the assistant for a reply right now.")
		return
	}
	e.transcript.appendText(SpeakerAssistant, text)
}

func (e *Engine) uploadTimed(ctx context.Context, files []File) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	start := time.Now()
	urls, err := e.uploader.Upload(ctx, files)
	e.metrics.ObserveCollaboratorLatency("upload", time.Since(start).Seconds())
	return urls, err
}

func (e *Engine) saveTimed(ctx context.Context, lead Lead) (SavedLead, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	start := time.Now()
	saved, err := e.saver.Save(ctx, lead)
	e.metrics.ObserveCollaboratorLatency("persist", time.Since(start).Seconds())
	return saved, err
}

func (e *Engine) replyTimed(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	start := time.Now()
	text, err := e.replier.Reply(ctx, prompt)
	e.metrics.ObserveCollaboratorLatency("ai_reply", time.Since(start).Seconds())
	return text, err
}
