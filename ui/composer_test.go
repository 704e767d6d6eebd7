package ui

import "testing"

func TestIsImagePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/home/user/captura.png", true},
		{"foto.JPG", true},
		{"diagrama.jpeg", true},
		{"animacion.gif", true},
		{"escaneo.webp", true},
		{"documento.pdf", false},
		{"voz.wav", false},
		{"sin_extension", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsImagePath(tt.path); got != tt.want {
				t.Errorf("IsImagePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestComposerModeBusy(t *testing.T) {
	tests := []struct {
		mode ComposerMode
		busy bool
	}{
		{ComposerIdle, false},
		{ComposerSubmittingText, true},
		{ComposerUploadingImage, true},
		{ComposerRecordingAudio, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := tt.mode.Busy(); got != tt.busy {
				t.Errorf("Busy() = %v, want %v", got, tt.busy)
			}
		})
	}
}
