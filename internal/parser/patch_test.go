package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchParser_ParseStats(t *testing.T) {
	p := NewPatchParser()

	tests := []struct {
		name      string
		patch     string
		files     int
		fragments int
		added     int64
		deleted   int64
	}{
		{
			name:  "empty patch",
			patch: "",
		},
		{
			name: "single hunk",
			patch: "--- foo.a\n" +
				"+++ foo.b\n" +
				"@@ -1 +1 @@\n" +
				"-hello\n" +
				"+hello world\n",
			files:     1,
			fragments: 1,
			added:     1,
			deleted:   1,
		},
		{
			name: "two hunks",
			patch: "--- x.a\n" +
				"+++ x.b\n" +
				"@@ -1,2 +1,3 @@\n" +
				" one\n" +
				"+two\n" +
				" three\n" +
				"@@ -10,1 +11,0 @@\n" +
				"-ten\n",
			files:     1,
			fragments: 2,
			added:     1,
			deleted:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := p.ParseStats(strings.NewReader(tt.patch))
			require.NoError(t, err)
			assert.Equal(t, tt.files, stats.Files)
			assert.Equal(t, tt.fragments, stats.Fragments)
			assert.Equal(t, tt.added, stats.Added)
			assert.Equal(t, tt.deleted, stats.Deleted)
		})
	}
}

func TestPatchParser_ParseStats_Malformed(t *testing.T) {
	patch := "--- foo.a\n+++ foo.b\n@@ -1,5 +1,5 @@\n-only one line\n"
	_, err := NewPatchParser().ParseStats(strings.NewReader(patch))
	assert.Error(t, err)
}
