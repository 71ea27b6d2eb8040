package intake

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingPreview records release calls so tests can assert the
// exactly-once discipline.
type countingPreview struct {
	id       string
	releases int
}

func (p *countingPreview) URL() string { return "preview://" + p.id }
func (p *countingPreview) Release() error {
	p.releases++
	return nil
}

func newTrackingFactory() (PreviewFactory, *[]*countingPreview) {
	handles := &[]*countingPreview{}
	factory := func(id, _, _ string, _ []byte) PreviewHandle {
		p := &countingPreview{id: id}
		*handles = append(*handles, p)
		return p
	}
	return factory, handles
}

func TestAttachmentSet_CapsAtThree(t *testing.T) {
	set := NewAttachmentSet(nil)

	files := make([]File, 5)
	for i := range files {
		files[i] = File{Name: fmt.Sprintf("photo-%d.jpg", i), ContentType: "image/jpeg", Data: []byte{1}}
	}

	accepted := set.Add(files)
	assert.Len(t, accepted, 3)
	assert.Equal(t, 3, set.StagedCount())

	// Later selections beyond the cap are dropped, not queued.
	more := set.Add([]File{{Name: "late.jpg", ContentType: "image/png", Data: []byte{1}}})
	assert.Empty(t, more)
	assert.Equal(t, 3, set.StagedCount())
}

func TestAttachmentSet_NonImagesExcludedBeforeCap(t *testing.T) {
	set := NewAttachmentSet(nil)

	files := []File{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte{1}},
		{Name: "notes.pdf", ContentType: "application/pdf", Data: []byte{1}},
		{Name: "b.png", ContentType: "image/png", Data: []byte{1}},
		{Name: "c.gif", ContentType: "image/gif", Data: []byte{1}},
	}

	accepted := set.Add(files)
	require.Len(t, accepted, 3)
	assert.Equal(t, "a.jpg", accepted[0].Name)
	assert.Equal(t, "b.png", accepted[1].Name)
	assert.Equal(t, "c.gif", accepted[2].Name)
}

func TestAttachmentSet_RemoveReleasesPreviewOnce(t *testing.T) {
	factory, handles := newTrackingFactory()
	set := NewAttachmentSet(factory)

	accepted := set.Add([]File{{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte{1}}})
	require.Len(t, accepted, 1)
	id := accepted[0].ID

	assert.True(t, set.Remove(id))
	assert.False(t, set.Remove(id), "second removal of same id")
	assert.Equal(t, 0, set.StagedCount())
	assert.Equal(t, 0, set.PendingCount())

	require.Len(t, *handles, 1)
	assert.Equal(t, 1, (*handles)[0].releases)

	// ClearStaged after the removal must not release again.
	set.ClearStaged()
	assert.Equal(t, 1, (*handles)[0].releases)
}

func TestAttachmentSet_FlushPendingKeepsStaged(t *testing.T) {
	set := NewAttachmentSet(nil)
	set.Add([]File{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte{1}},
		{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte{2}},
	})

	flushed := set.FlushPending()
	assert.Len(t, flushed, 2)
	assert.Equal(t, 0, set.PendingCount())
	// Attachments chosen on an earlier turn stay staged for confirm.
	assert.Equal(t, 2, set.StagedCount())

	// A later selection only appears once in pending.
	set.Add([]File{{Name: "c.jpg", ContentType: "image/jpeg", Data: []byte{3}}})
	assert.Equal(t, 1, set.PendingCount())
	assert.Equal(t, 3, set.StagedCount())
}

func TestAttachmentSet_ReleaseAllReleasesEverythingOnce(t *testing.T) {
	factory, handles := newTrackingFactory()
	set := NewAttachmentSet(factory)
	set.Add([]File{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte{1}},
		{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte{2}},
	})

	set.ReleaseAll()
	set.ReleaseAll()

	require.Len(t, *handles, 2)
	for _, h := range *handles {
		assert.Equal(t, 1, h.releases)
	}
}
