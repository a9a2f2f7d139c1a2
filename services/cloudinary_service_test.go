package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned url",
			url:  "https://res.cloudinary.com/demo/image/upload/v1712345678/racaforte/parts/abc/image_0.png",
			want: "racaforte/parts/abc/image_0",
		},
		{
			name: "no version",
			url:  "https://res.cloudinary.com/demo/image/upload/racaforte/parts/abc/image_1.jpg",
			want: "racaforte/parts/abc/image_1",
		},
		{
			name: "no extension",
			url:  "https://res.cloudinary.com/demo/image/upload/v1/sample",
			want: "sample",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PublicIDFromURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPublicIDFromURL_NotCloudinary(t *testing.T) {
	_, err := PublicIDFromURL("https://example.com/images/x.png")
	assert.Error(t, err)
}
