package webchat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handyfix/lead-intake/internal/intake"
)

func newRegistry(t *testing.T, previews *PreviewRegistry, ttl time.Duration) *SessionRegistry {
	t.Helper()
	factory := func() *intake.Engine {
		return intake.NewEngine(&fakeUploader{}, &fakeSaver{}, fakeReplier{},
			intake.WithPreviewFactory(previews.Factory()))
	}
	r := NewSessionRegistry(factory, ttl, nil)
	t.Cleanup(r.Stop)
	return r
}

func TestSessionRegistry_GetOrCreate(t *testing.T) {
	r := newRegistry(t, NewPreviewRegistry("/webchat/preview"), time.Minute)

	s1 := r.GetOrCreate("")
	require.NotNil(t, s1)
	require.NotEmpty(t, s1.ID)

	s2 := r.GetOrCreate(s1.ID)
	assert.Same(t, s1, s2)

	s3 := r.GetOrCreate("never-issued")
	assert.NotEqual(t, s1.ID, s3.ID, "unknown ids get a fresh session")
	assert.Equal(t, 2, r.Len())
}

func TestSessionRegistry_CloseReleasesPreviews(t *testing.T) {
	previews := NewPreviewRegistry("/webchat/preview")
	r := newRegistry(t, previews, time.Minute)

	s := r.GetOrCreate("")
	_, err := s.Engine.Attach([]intake.File{{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("x")}})
	require.NoError(t, err)
	require.Equal(t, 1, previews.Len())

	r.Close(s.ID)
	assert.Equal(t, 0, previews.Len())
	assert.Nil(t, r.Get(s.ID))
}

func TestSessionRegistry_ExpireIdle(t *testing.T) {
	previews := NewPreviewRegistry("/webchat/preview")
	r := newRegistry(t, previews, time.Minute)

	stale := r.GetOrCreate("")
	_, err := stale.Engine.Attach([]intake.File{{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("x")}})
	require.NoError(t, err)
	fresh := r.GetOrCreate("")

	r.expireIdle(time.Now())
	assert.Equal(t, 2, r.Len(), "nothing idle yet")

	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-2 * time.Minute)
	stale.mu.Unlock()

	r.expireIdle(time.Now())
	assert.Nil(t, r.Get(stale.ID))
	assert.NotNil(t, r.Get(fresh.ID))
	assert.Equal(t, 0, previews.Len(), "expiry releases previews")
}

func TestSessionRegistry_StopClosesAll(t *testing.T) {
	previews := NewPreviewRegistry("/webchat/preview")
	r := newRegistry(t, previews, time.Minute)

	s := r.GetOrCreate("")
	_, err := s.Engine.Attach([]intake.File{{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("x")}})
	require.NoError(t, err)

	r.Stop()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, previews.Len())
}
