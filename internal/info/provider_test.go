package info

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/rostersync/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    model.Info
		wantErr bool
	}{
		{
			name: "full document",
			doc: `title: Welcome!
description: |
  Please fill in the registration form.
footer: Questions? Ask the staff.
thumbnail_url: https://example.com/logo.png
color: "#3498db"
`,
			want: model.Info{
				Title:        "Welcome!",
				Description:  "Please fill in the registration form.\n",
				Footer:       "Questions? Ask the staff.",
				ThumbnailURL: "https://example.com/logo.png",
				Color:        0x3498DB,
			},
		},
		{
			name: "default color",
			doc:  "title: Hi\n",
			want: model.Info{Title: "Hi", Color: DefaultColor},
		},
		{
			name: "decimal color",
			doc:  "title: Hi\ncolor: \"255\"\n",
			want: model.Info{Title: "Hi", Color: 255},
		},
		{
			name:    "missing title",
			doc:     "description: nothing\n",
			wantErr: true,
		},
		{
			name:    "bad color",
			doc:     "title: Hi\ncolor: \"#zzzzzz\"\n",
			wantErr: true,
		},
		{
			name:    "color out of range",
			doc:     "title: Hi\ncolor: \"#1000000\"\n",
			wantErr: true,
		},
		{
			name:    "not yaml",
			doc:     "title: [unterminated\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "info.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Welcome\nfooter: staff\n"), 0o600))

	p, err := Load(path)
	require.NoError(t, err)

	info, err := p.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Welcome", info.Title)
	assert.Equal(t, "staff", info.Footer)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
