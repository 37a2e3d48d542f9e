package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   project/ (jotter.yaml)
	//     docs/
	//       drafts/
	//   hidden/ (.jotter)
	//   empty/
	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	draftsDir := filepath.Join(projectDir, "docs", "drafts")
	hiddenDir := filepath.Join(baseDir, "hidden")
	emptyDir := filepath.Join(baseDir, "empty")

	require.NoError(t, os.MkdirAll(draftsDir, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(hiddenDir, ".jotter"), 0755))
	require.NoError(t, os.MkdirAll(emptyDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "jotter.yaml"), []byte("backend: document\n"), 0644))

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{name: "Start at Root", startPath: projectDir, wantRoot: projectDir},
		{name: "Start Nested Deeply", startPath: draftsDir, wantRoot: projectDir},
		{name: "Hidden Marker", startPath: hiddenDir, wantRoot: hiddenDir},
		{name: "No Root Found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.wantRoot), filepath.Clean(got))
		})
	}
}
