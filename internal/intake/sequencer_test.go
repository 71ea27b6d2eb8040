package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) TurnInput { return TurnInput{Text: s} }

func TestAdvance_HappyPathVisitsStepsInOrder(t *testing.T) {
	turns := []struct {
		in   string
		want Step
	}{
		{"Jane Doe", StepIssue},
		{"leaky faucet", StepLocation},
		{"98004", StepUrgency},
		{"today please", StepPhone},
		{"425-555-9999", StepAddress},
		{"skip", StepPhotos},
		{"skip", StepDone},
	}

	step := StepName
	lead := Lead{}
	for _, turn := range turns {
		next, patch, reply := Advance(step, text(turn.in))
		require.Equal(t, turn.want, next, "after %q", turn.in)
		require.NotEmpty(t, reply)
		lead = patch.Apply(lead)
		step = next
	}

	assert.Equal(t, "Jane Doe", lead.Name)
	assert.Equal(t, "leaky faucet", lead.Issue)
	assert.Equal(t, "98004", lead.LocationHint)
	assert.Equal(t, UrgencyToday, lead.Urgency.Level)
	assert.Equal(t, "4255559999", lead.Phone)
	assert.Equal(t, "", lead.Address)
	assert.True(t, lead.Complete())
}

func TestAdvance_RejectedInputRepromptsWithoutRegressing(t *testing.T) {
	tests := []struct {
		step Step
		in   string
	}{
		{StepName, "x"},
		{StepIssue, ""},
		{StepLocation, "12"},
		{StepUrgency, ""},
		{StepPhone, "555-1234"},
		{StepAddress, ""},
		{StepPhotos, "no thanks"},
	}
	for _, tt := range tests {
		t.Run(tt.step.String(), func(t *testing.T) {
			next, patch, reply := Advance(tt.step, text(tt.in))
			assert.Equal(t, tt.step, next)
			assert.True(t, patch.IsEmpty())
			assert.NotEmpty(t, reply)
		})
	}
}

func TestAdvance_IssueSynthesizedFromPhotoOnlyTurn(t *testing.T) {
	next, patch, _ := Advance(StepIssue, TurnInput{Text: "", PhotosThisTurn: 1, PhotosStaged: 1})
	require.Equal(t, StepLocation, next)
	require.NotNil(t, patch.Issue)
	assert.Equal(t, "Shared via photo", *patch.Issue)
}

func TestAdvance_AddressStoredVerbatimOrSkipped(t *testing.T) {
	next, patch, _ := Advance(StepAddress, text("123 Main St"))
	require.Equal(t, StepPhotos, next)
	require.NotNil(t, patch.Address)
	assert.Equal(t, "123 Main St", *patch.Address)

	next, patch, _ = Advance(StepAddress, text("SKIP"))
	require.Equal(t, StepPhotos, next)
	require.NotNil(t, patch.Address)
	assert.Equal(t, "", *patch.Address)
}

func TestAdvance_PhotosStepAdvancesWhenPhotosStaged(t *testing.T) {
	// Staged photos advance regardless of text.
	next, _, _ := Advance(StepPhotos, TurnInput{Text: "", PhotosStaged: 1})
	assert.Equal(t, StepDone, next)

	next, _, _ = Advance(StepPhotos, TurnInput{Text: "here you go", PhotosStaged: 2})
	assert.Equal(t, StepDone, next)

	// Neither photos nor skip re-prompts.
	next, _, reply := Advance(StepPhotos, TurnInput{Text: ""})
	assert.Equal(t, StepPhotos, next)
	assert.Contains(t, reply, "skip")
}

func TestAdvance_DoneIsAbsorbing(t *testing.T) {
	for _, in := range []string{"change my phone", "hello?", ""} {
		next, patch, reply := Advance(StepDone, text(in))
		assert.Equal(t, StepDone, next)
		assert.True(t, patch.IsEmpty())
		assert.NotEmpty(t, reply)
	}
}

func TestAdvance_EachTransitionPatchesAtMostTwoFields(t *testing.T) {
	set := func(p LeadPatch) int {
		n := 0
		for _, ptr := range []bool{
			p.Name != nil, p.Issue != nil, p.LocationHint != nil,
			p.Urgency != nil, p.Phone != nil, p.Address != nil,
		} {
			if ptr {
				n++
			}
		}
		return n
	}

	inputs := map[Step]string{
		StepName:     "Jane Doe",
		StepIssue:    "leaky faucet",
		StepLocation: "98004",
		StepUrgency:  "today",
		StepPhone:    "4255551234",
		StepAddress:  "skip",
		StepPhotos:   "skip",
	}
	for step, in := range inputs {
		_, patch, _ := Advance(step, text(in))
		assert.LessOrEqual(t, set(patch), 2, "step %s", step)
	}
}
