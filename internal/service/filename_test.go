package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"doc1.pdf", "doc1.pdf"},
		{"My cool movie.pdf", "My_cool_movie.pdf"},
		{"../../../etc/passwd.pdf", "etc_passwd.pdf"},
		{`C:\Users\me\report.PDF`, "C_Users_me_report.PDF"},
		{"résumé.pdf", "resume.pdf"},
		{"ümläuts.pdf", "umlauts.pdf"},
		{"漢字.pdf", "pdf"},
		{"a;b$c.pdf", "abc.pdf"},
		{"...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SecureFilename(tt.in))
		})
	}
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("report.pdf"))
	assert.True(t, IsPDF("report.PDF"))
	assert.True(t, IsPDF("archive.tar.Pdf"))
	assert.False(t, IsPDF("report.exe"))
	assert.False(t, IsPDF("pdf"))
	assert.False(t, IsPDF("report.pdf.exe"))
	assert.False(t, IsPDF(""))
}
