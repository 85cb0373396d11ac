package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLogbookStatus(t *testing.T) {
	tests := []struct {
		in   string
		want LogbookStatus
		ok   bool
	}{
		{in: "draft", want: LogbookDraft, ok: true},
		{in: "submitted", want: LogbookSubmitted, ok: true},
		{in: " Submitted ", want: LogbookSubmitted, ok: true},
		{in: "pending", want: LogbookSubmitted, ok: true}, // legacy spelling folds in
		{in: "verified", want: LogbookVerified, ok: true},
		{in: "rejected", want: LogbookRejected, ok: true},
		{in: "approved", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := ParseLogbookStatus(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestLogbookStatusDisplayLabel(t *testing.T) {
	assert.Equal(t, "pending", LogbookSubmitted.DisplayLabel())
	assert.Equal(t, "draft", LogbookDraft.DisplayLabel())
	assert.Equal(t, "verified", LogbookVerified.DisplayLabel())
}

func TestCreatePostingRequestValidate(t *testing.T) {
	now := time.Now()
	valid := CreatePostingRequest{
		UserID:     "u1",
		Department: "General Medicine",
		StartDate:  now,
		EndDate:    now.AddDate(0, 1, 0),
	}
	assert.NoError(t, valid.Validate())

	t.Run("end before start", func(t *testing.T) {
		req := valid
		req.EndDate = now.AddDate(0, 0, -1)
		assert.Error(t, req.Validate())
	})

	t.Run("missing department", func(t *testing.T) {
		req := valid
		req.Department = "  "
		assert.Error(t, req.Validate())
	})
}

func TestReviewLogbookEntryRequestValidate(t *testing.T) {
	assert.NoError(t, (&ReviewLogbookEntryRequest{Approve: true}).Validate())

	remarks := "incomplete notes"
	assert.NoError(t, (&ReviewLogbookEntryRequest{Approve: false, Remarks: &remarks}).Validate())

	assert.Error(t, (&ReviewLogbookEntryRequest{Approve: false}).Validate(),
		"rejection without remarks")
}
