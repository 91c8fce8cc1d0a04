package storage

import "testing"

func TestExtensionAllowed(t *testing.T) {
	tests := []struct {
		name      string
		fileName  string
		fileTypes []string
		want      bool
	}{
		{"empty list accepts anything", "resume.pdf", nil, true},
		{"listed extension", "resume.pdf", []string{"pdf", "docx"}, true},
		{"case insensitive", "PHOTO.JPG", []string{"jpg"}, true},
		{"dotted config entries", "resume.pdf", []string{".pdf"}, true},
		{"unlisted extension", "script.exe", []string{"pdf", "docx"}, false},
		{"no extension", "README", []string{"pdf"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtensionAllowed(tt.fileName, tt.fileTypes); got != tt.want {
				t.Errorf("ExtensionAllowed(%q, %v) = %v, want %v", tt.fileName, tt.fileTypes, got, tt.want)
			}
		})
	}
}
