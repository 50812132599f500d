package annotation

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/framemark/pkg/adapters/logger"
	"github.com/user/framemark/pkg/adapters/osfilesystem"
	"github.com/user/framemark/pkg/mocks"
)

const existingSidecar = `{"UrlLocal":"match1","UrlYoutube":"","annotations":[{"gameTime":"00:00:01","label":"x","position":"30","team":"A","visibility":"visible"}]}`

func newMockStore(t *testing.T) (*Store, *mocks.FileSystem) {
	t.Helper()
	fs := mocks.NewFileSystem()
	return NewStore(fs, logger.NewNoop(), "/videos/match1.mp4"), fs
}

func readSidecar(t *testing.T, fs *mocks.FileSystem, path string) File {
	t.Helper()
	data, ok := fs.GetFile(path)
	require.True(t, ok, "sidecar %s not written", path)

	var f File
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func TestURLLocalAndPaths(t *testing.T) {
	assert.Equal(t, "match1", URLLocal("/videos/match1.mp4"))
	assert.Equal(t, "final.2024", URLLocal("final.2024.mkv"))
	assert.Equal(t, "noext", URLLocal("/a/noext"))

	s, _ := newMockStore(t)
	assert.Equal(t, "match1", s.URLLocal())
	assert.Equal(t, filepath.Join("/videos", "match1_annotations.json"), s.Path())
	assert.Equal(t, filepath.Join("/videos", "match1"), s.FolderPath())
}

func TestStore_SaveMergesIntoExistingSidecar(t *testing.T) {
	s, fs := newMockStore(t)
	require.NoError(t, fs.WriteFile(s.Path(), []byte(existingSidecar)))

	_, err := s.Add("goal", "B", 1950, 30)
	require.NoError(t, err)

	n, err := s.Save()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, s.Pending())

	f := readSidecar(t, fs, s.Path())
	assert.Equal(t, "match1", f.URLLocal)
	assert.Equal(t, "", f.URLYoutube)
	require.Len(t, f.Annotations, 2)
	assert.Equal(t, "x", f.Annotations[0].Label)
	assert.Equal(t, "00:01:05", f.Annotations[1].GameTime)
	assert.Equal(t, "goal", f.Annotations[1].Label)
	assert.Equal(t, "B", f.Annotations[1].Team)
	assert.Equal(t, "1950", f.Annotations[1].Position)
	assert.Equal(t, Visible, f.Annotations[1].Visibility)
}

func TestStore_SaveCreatesSidecar(t *testing.T) {
	s, fs := newMockStore(t)

	_, err := s.Add("kickoff", "home", 0, 25)
	require.NoError(t, err)
	_, err = s.Save()
	require.NoError(t, err)

	f := readSidecar(t, fs, s.Path())
	assert.Equal(t, "match1", f.URLLocal)
	require.Len(t, f.Annotations, 1)
	assert.Equal(t, "00:00:00", f.Annotations[0].GameTime)
}

func TestStore_TwoBatchesAppendInOrder(t *testing.T) {
	s, fs := newMockStore(t)
	require.NoError(t, fs.WriteFile(s.Path(), []byte(existingSidecar)))

	for i, label := range []string{"a1", "a2", "a3"} {
		_, err := s.Add(label, "home", 100*(i+1), 30)
		require.NoError(t, err)
	}
	_, err := s.Save()
	require.NoError(t, err)

	for i, label := range []string{"b1", "b2"} {
		_, err := s.Add(label, "away", 1000*(i+1), 30)
		require.NoError(t, err)
	}
	_, err = s.Save()
	require.NoError(t, err)

	f := readSidecar(t, fs, s.Path())
	var labels []string
	for _, a := range f.Annotations {
		labels = append(labels, a.Label)
	}
	assert.Equal(t, []string{"x", "a1", "a2", "a3", "b1", "b2"}, labels)
	assert.Equal(t, "00:00:01", f.Annotations[0].GameTime)
	assert.Equal(t, "30", f.Annotations[0].Position)
}

func TestStore_EmptySaveLeavesSidecarUntouched(t *testing.T) {
	s, fs := newMockStore(t)
	require.NoError(t, fs.WriteFile(s.Path(), []byte(existingSidecar)))

	writes := 0
	fs.WriteFileFunc = func(path string, data []byte) error {
		writes++
		return nil
	}

	n, err := s.Save()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, writes)

	data, _ := fs.GetFile(s.Path())
	assert.Equal(t, existingSidecar, string(data))
}

func TestStore_EmptySaveDoesNotCreateSidecar(t *testing.T) {
	s, fs := newMockStore(t)
	_, err := s.Save()
	require.NoError(t, err)

	_, ok := fs.GetFile(s.Path())
	assert.False(t, ok)
}

func TestStore_AddValidationNeverTouchesSidecar(t *testing.T) {
	s, fs := newMockStore(t)
	require.NoError(t, fs.WriteFile(s.Path(), []byte(existingSidecar)))

	_, err := s.Add("goal", "", 10, 30)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.Add("", "home", 10, 30)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, s.Pending())

	_, err = s.Save()
	require.NoError(t, err)
	data, _ := fs.GetFile(s.Path())
	assert.Equal(t, existingSidecar, string(data))
}

func TestStore_MalformedSidecarKeepsPending(t *testing.T) {
	s, fs := newMockStore(t)
	require.NoError(t, fs.WriteFile(s.Path(), []byte(`{"UrlLocal": "match1", "annotations": [`)))

	_, err := s.Add("goal", "home", 10, 30)
	require.NoError(t, err)

	_, err = s.Save()
	var ferr *FileError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, OpParse, ferr.Op)
	assert.Equal(t, s.Path(), ferr.Path)
	assert.Len(t, s.Pending(), 1)

	// Fixing the file lets the retry succeed with the same batch.
	require.NoError(t, fs.WriteFile(s.Path(), []byte(existingSidecar)))
	n, err := s.Save()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_MissingAnnotationsArray(t *testing.T) {
	s, fs := newMockStore(t)
	require.NoError(t, fs.WriteFile(s.Path(), []byte(`{"UrlLocal":"match1","UrlYoutube":""}`)))
	_, err := s.Add("goal", "home", 10, 30)
	require.NoError(t, err)

	_, err = s.Save()
	assert.ErrorIs(t, err, ErrMissingAnnotations)
	assert.Len(t, s.Pending(), 1)
}

func TestStore_WriteFailureKeepsPending(t *testing.T) {
	s, fs := newMockStore(t)
	boom := errors.New("disk full")
	fs.WriteFileFunc = func(path string, data []byte) error { return boom }

	_, err := s.Add("goal", "home", 10, 30)
	require.NoError(t, err)

	_, err = s.Save()
	var ferr *FileError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, OpWrite, ferr.Op)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, s.Pending(), 1)
}

func TestStore_ReadFailure(t *testing.T) {
	s, fs := newMockStore(t)
	fs.ExistsFunc = func(path string) (bool, error) { return true, nil }
	fs.ReadFileFunc = func(path string) ([]byte, error) { return nil, os.ErrPermission }

	_, err := s.Add("goal", "home", 10, 30)
	require.NoError(t, err)

	_, err = s.Save()
	var ferr *FileError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, OpRead, ferr.Op)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestStore_PreservesForeignFields(t *testing.T) {
	s, fs := newMockStore(t)
	existing := `{"UrlLocal":"match1","UrlYoutube":"https://youtu.be/abc","reviewer":"kim","tags":["final"],"annotations":[{"gameTime":"00:00:01","label":"x","position":"30","team":"A","visibility":"visible","confidence":"0.9"}]}`
	require.NoError(t, fs.WriteFile(s.Path(), []byte(existing)))

	_, err := s.Add("goal", "home", 60, 30)
	require.NoError(t, err)
	_, err = s.Save()
	require.NoError(t, err)

	f := readSidecar(t, fs, s.Path())
	assert.Equal(t, "https://youtu.be/abc", f.URLYoutube)
	assert.JSONEq(t, `"0.9"`, string(f.Annotations[0].Extra["confidence"]))
	assert.JSONEq(t, `"kim"`, string(f.Extra["reviewer"]))
	assert.JSONEq(t, `["final"]`, string(f.Extra["tags"]))
	require.Len(t, f.Annotations, 2)
	assert.Equal(t, "goal", f.Annotations[1].Label)
}

func TestStore_At(t *testing.T) {
	s, fs := newMockStore(t)
	require.NoError(t, fs.WriteFile(s.Path(), []byte(existingSidecar)))
	_, err := s.Load()
	require.NoError(t, err)

	_, err = s.Add("shot", "B", 30, 30)
	require.NoError(t, err)
	_, err = s.Add("pass", "B", 31, 30)
	require.NoError(t, err)

	at := s.At(30)
	require.Len(t, at, 2)
	assert.Equal(t, "x - A", at[0].Text())
	assert.Equal(t, "shot - B", at[1].Text())
	assert.Empty(t, s.At(29))
}

func TestStore_PrettyPrintedOnDisk(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(osfilesystem.New(), logger.NewNoop(), filepath.Join(dir, "match1.mp4"))

	_, err := s.Add("goal", "home", 1950, 30)
	require.NoError(t, err)
	_, err = s.Save()
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "match1_annotations.json"))
	require.NoError(t, err)

	want := `{
    "UrlLocal": "match1",
    "UrlYoutube": "",
    "annotations": [
        {
            "gameTime": "00:01:05",
            "label": "goal",
            "position": "1950",
            "team": "home",
            "visibility": "visible"
        }
    ]
}`
	assert.Equal(t, want, string(data))
}
