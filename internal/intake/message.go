package intake

// Speaker identifies who authored a transcript message.
type Speaker int

const (
	SpeakerAssistant Speaker = iota
	SpeakerUser
)

func (s Speaker) String() string {
	if s == SpeakerUser {
		return "user"
	}
	return "assistant"
}

// MessageKind distinguishes the transcript payload shapes.
type MessageKind int

const (
	KindText MessageKind = iota
	KindImageSet
	KindLeadSummary
)

// ImageRef points at one displayed image in an image-set message.
type ImageRef struct {
	URL  string
	Name string
}

// Message is one transcript entry. Seq is a monotonic ordering key; it is
// only meaningful for ordering and keying, never for wall-clock display.
type Message struct {
	Seq     int64
	Speaker Speaker
	Kind    MessageKind
	Text    string
	Images  []ImageRef
	Lead    *Lead // snapshot, set only for KindLeadSummary
}

// transcript is the append-only message log for one session.
type transcript struct {
	seq  int64
	msgs []Message
}

func (t *transcript) next() int64 {
	t.seq++
	return t.seq
}

func (t *transcript) appendText(sp Speaker, text string) Message {
	m := Message{Seq: t.next(), Speaker: sp, Kind: KindText, Text: text}
	t.msgs = append(t.msgs, m)
	return m
}

func (t *transcript) appendImages(sp Speaker, images []ImageRef) Message {
	m := Message{Seq: t.next(), Speaker: sp, Kind: KindImageSet, Images: images}
	t.msgs = append(t.msgs, m)
	return m
}

func (t *transcript) appendSummary(lead Lead) Message {
	snapshot := lead
	m := Message{Seq: t.next(), Speaker: SpeakerAssistant, Kind: KindLeadSummary, Lead: &snapshot}
	t.msgs = append(t.msgs, m)
	return m
}

func (t *transcript) all() []Message {
	out := make([]Message, len(t.msgs))
	copy(out, t.msgs)
	return out
}
