package leads

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *CreateLeadRequest {
	return &CreateLeadRequest{
		Issue:       "leaky faucet",
		ZipOrCity:   "98004",
		Urgency:     "Today",
		Name:        "Jane Doe",
		Phone:       "(425) 555-9999",
		Address:     "",
		PhotosCount: 1,
		PhotoURLs:   []string{"https://cdn.example/a.jpg"},
	}
}

func TestCreateLeadRequest_Validate(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())
	assert.Equal(t, "4255559999", req.Phone, "phone normalized in place")
	assert.Equal(t, "webchat", req.Source, "default source")
	assert.Equal(t, 1, req.PhotosCount)

	tests := []struct {
		name    string
		mutate  func(*CreateLeadRequest)
		wantErr error
	}{
		{"missing name", func(r *CreateLeadRequest) { r.Name = "  " }, ErrMissingName},
		{"missing issue", func(r *CreateLeadRequest) { r.Issue = "" }, ErrMissingIssue},
		{"missing location", func(r *CreateLeadRequest) { r.ZipOrCity = "" }, ErrMissingLocation},
		{"missing urgency", func(r *CreateLeadRequest) { r.Urgency = "" }, ErrMissingUrgency},
		{"short phone", func(r *CreateLeadRequest) { r.Phone = "555-1234" }, ErrInvalidPhone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			assert.ErrorIs(t, req.Validate(), tt.wantErr)
		})
	}
}

func TestCreateLeadRequest_Validate_CountFollowsURLs(t *testing.T) {
	req := validRequest()
	req.PhotosCount = 7
	require.NoError(t, req.Validate())
	assert.Equal(t, 1, req.PhotosCount)

	// A nonzero count without URLs is zeroed too.
	req = validRequest()
	req.PhotoURLs = nil
	require.NoError(t, req.Validate())
	assert.Equal(t, 0, req.PhotosCount)
}

func TestInMemoryRepository_CreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	lead, err := repo.Create(ctx, validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, lead.ID)
	assert.Equal(t, "new", lead.Status)
	assert.False(t, lead.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead, got)
}

func TestInMemoryRepository_GetMissing(t *testing.T) {
	repo := NewInMemoryRepository()
	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestInMemoryRepository_CreateRejectsInvalid(t *testing.T) {
	repo := NewInMemoryRepository()
	req := validRequest()
	req.Phone = "123"
	_, err := repo.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
