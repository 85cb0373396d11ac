package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCertStatus(t *testing.T) {
	tests := []struct {
		in   string
		want CertificateStatus
		ok   bool
	}{
		{in: "submitted", want: CertificateSubmitted, ok: true},
		{in: " Submitted ", want: CertificateSubmitted, ok: true},
		{in: "pending", want: CertificateSubmitted, ok: true}, // legacy spelling folds in
		{in: "generated", want: CertificateGenerated, ok: true},
		{in: "approved", want: CertificateApproved, ok: true},
		{in: "rejected", want: CertificateRejected, ok: true},
		{in: "draft", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := ParseCertStatus(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestCertificateStatusValid(t *testing.T) {
	assert.True(t, CertificateStatus("submitted").Valid())
	assert.False(t, CertificateStatus("pending").Valid(), "pending is an input alias, not a stored status")
}

func TestCertificateStatusDisplayLabel(t *testing.T) {
	assert.Equal(t, "pending", CertificateSubmitted.DisplayLabel())
	assert.Equal(t, "approved", CertificateApproved.DisplayLabel())
}

func TestReviewCertificateRequestValidate(t *testing.T) {
	url := "https://files.gmc.edu/cert.pdf"
	assert.NoError(t, (&ReviewCertificateRequest{Approve: true, FileURL: &url}).Validate())
	assert.Error(t, (&ReviewCertificateRequest{Approve: true}).Validate())
	assert.NoError(t, (&ReviewCertificateRequest{Approve: false}).Validate())
}
