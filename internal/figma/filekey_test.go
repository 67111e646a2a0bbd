package figma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFileKey(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantKey string
		wantOK  bool
	}{
		{
			name:    "file url",
			url:     "https://www.figma.com/file/aBc123XyZ/My-Design",
			wantKey: "aBc123XyZ",
			wantOK:  true,
		},
		{
			name:    "design url",
			url:     "https://www.figma.com/design/Qw9rty777/Another",
			wantKey: "Qw9rty777",
			wantOK:  true,
		},
		{
			name:    "file segment wins over design segment",
			url:     "https://example.com/file/first111/design/second222",
			wantKey: "first111",
			wantOK:  true,
		},
		{
			name:    "other hosts accepted",
			url:     "https://example.com/file/hosted42",
			wantKey: "hosted42",
			wantOK:  true,
		},
		{
			name:    "case insensitive segment",
			url:     "https://www.figma.com/FILE/Upper99",
			wantKey: "Upper99",
			wantOK:  true,
		},
		{
			name:   "no recognizable segment",
			url:    "https://example.com/files/abc123",
			wantOK: false,
		},
		{
			name:   "empty url",
			url:    "",
			wantOK: false,
		},
		{
			name:    "key stops at non-alphanumeric",
			url:     "https://www.figma.com/file/key-with-dash/x",
			wantKey: "key",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := ExtractFileKey(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKey, key)
			}
		})
	}
}
