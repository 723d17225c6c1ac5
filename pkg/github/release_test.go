package github

import "testing"

func TestContentTypeForAsset(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"dist/MyApp-1.0.0.dmg", "application/x-apple-diskimage"},
		{"dist/MyApp-1.0.0.pkg", "application/x-newton-compatible-pkg"},
		{"dist/MyApp-1.0.0.zip", "application/zip"},
		{"dist/MyApp-1.0.0.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := ContentTypeForAsset(tt.path); got != tt.want {
			t.Errorf("ContentTypeForAsset(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
