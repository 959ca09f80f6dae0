package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/netwatch"
	"github.com/dmitrijs2005/gophnotes/internal/client/remote"
	"github.com/dmitrijs2005/gophnotes/internal/client/store"
	"github.com/dmitrijs2005/gophnotes/internal/client/syncer"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type testApp struct {
	*App
	out *bytes.Buffer
	net *netwatch.Static
	st  *store.Store
}

func newTestApp(t *testing.T, online bool, input string) *testApp {
	t.Helper()
	st, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	net := netwatch.NewStatic(online)
	coord := syncer.New(st, &remote.Noop{}, net)
	out := &bytes.Buffer{}
	a := newApp(st, coord, net, strings.NewReader(input), out, logging.Discard())
	return &testApp{App: a, out: out, net: net, st: st}
}

func onlyNote(t *testing.T, st *store.Store) models.Note {
	t.Helper()
	list, err := st.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	return list[0]
}

func TestAddNote_OfflineStaysPending(t *testing.T) {
	a := newTestApp(t, false, "Groceries\n\nhigh\n- milk\n- eggs\n\n")
	ctx := context.Background()

	require.NoError(t, a.AddNote(ctx, nil))

	n := onlyNote(t, a.st)
	assert.Equal(t, "Groceries", n.Title)
	assert.Equal(t, models.PriorityHigh, n.Priority)
	assert.Equal(t, "- milk\n- eggs", n.Content)
	assert.True(t, n.Unfiled())
	assert.False(t, n.Synced)

	a.out.Reset()
	require.NoError(t, a.Sync(ctx, nil))
	assert.Contains(t, a.out.String(), "Offline")

	a.net.SetOnline(true)
	a.out.Reset()
	require.NoError(t, a.Sync(ctx, nil))
	assert.Contains(t, a.out.String(), "Everything is synced.")
	assert.True(t, onlyNote(t, a.st).Synced)
}

func TestAddNote_OnlineSyncsImmediately(t *testing.T) {
	a := newTestApp(t, true, "\n\n\nbody\n\n")

	require.NoError(t, a.AddNote(context.Background(), nil))

	n := onlyNote(t, a.st)
	assert.Equal(t, common.DefaultNoteTitle, n.Title)
	assert.Equal(t, models.PriorityMedium, n.Priority)
	assert.True(t, n.Synced)
}

func TestAddNote_Validation(t *testing.T) {
	a := newTestApp(t, false, "t\nmissing-folder\n")
	err := a.AddNote(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrNotFound)

	a = newTestApp(t, false, "t\n\nsoon\nbody\n\n")
	err = a.AddNote(context.Background(), nil)
	require.ErrorContains(t, err, "unknown priority")
}

func TestFoldersAndListings(t *testing.T) {
	a := newTestApp(t, false, "")
	ctx := context.Background()

	require.NoError(t, a.AddFolder(ctx, []string{"Math", "notes"}))
	folders, err := a.st.ListFolders(ctx)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "Math notes", folders[0].Name)

	a.reader = rdr("A\n" + folders[0].ID + "\n\n\n")
	require.NoError(t, a.AddNote(ctx, nil))
	a.reader = rdr("B\n\n\n\n")
	require.NoError(t, a.AddNote(ctx, nil))

	a.out.Reset()
	require.NoError(t, a.Folder(ctx, []string{folders[0].ID}))
	assert.Contains(t, a.out.String(), "]  A  (")
	assert.NotContains(t, a.out.String(), "]  B  (")

	a.out.Reset()
	require.NoError(t, a.Unfiled(ctx, nil))
	assert.Contains(t, a.out.String(), "]  B  (")
	assert.NotContains(t, a.out.String(), "]  A  (")

	require.NoError(t, a.RemoveFolder(ctx, []string{folders[0].ID}))
	a.out.Reset()
	require.NoError(t, a.Folders(ctx, nil))
	assert.Contains(t, a.out.String(), "(no folders)")

	a.out.Reset()
	require.NoError(t, a.List(ctx, nil))
	assert.Equal(t, 2, strings.Count(a.out.String(), "\n"), "notes survive folder deletion")
}

func TestEditPriorityTagDelete(t *testing.T) {
	a := newTestApp(t, false, "")
	ctx := context.Background()

	n := a.st.NewNote("draft", "")
	require.NoError(t, a.st.PutNote(ctx, n))

	a.reader = rdr("final\nnew body\n\n")
	require.NoError(t, a.Edit(ctx, []string{n.ID}))
	got, err := a.st.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, "new body", got.Content)

	require.NoError(t, a.SetPriority(ctx, []string{n.ID, "urgent"}))
	require.Error(t, a.SetPriority(ctx, []string{n.ID, "asap"}))

	require.NoError(t, a.AddTag(ctx, []string{"work"}))
	tags, err := a.st.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, defaultTagColor, tags[0].Color)

	require.NoError(t, a.TagNote(ctx, []string{n.ID, tags[0].ID}))
	require.NoError(t, a.TagNote(ctx, []string{n.ID, tags[0].ID}))
	got, err = a.st.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, got.Priority)
	assert.Equal(t, []string{tags[0].ID}, got.TagIDs)

	a.out.Reset()
	require.NoError(t, a.Tagged(ctx, []string{tags[0].ID}))
	assert.Contains(t, a.out.String(), n.ID)

	a.out.Reset()
	require.NoError(t, a.Show(ctx, []string{n.ID}))
	assert.Contains(t, a.out.String(), "# final")
	assert.Contains(t, a.out.String(), "priority: urgent")

	require.NoError(t, a.Delete(ctx, []string{n.ID}))
	require.ErrorIs(t, a.Show(ctx, []string{n.ID}), common.ErrNotFound)
	require.NoError(t, a.Delete(ctx, []string{"ghost"}))

	require.NoError(t, a.RemoveTag(ctx, []string{tags[0].ID}))
	require.ErrorIs(t, a.TagNote(ctx, []string{n.ID, tags[0].ID}), common.ErrNotFound)
}

func TestUsageErrors(t *testing.T) {
	a := newTestApp(t, false, "")
	ctx := context.Background()

	for name, fn := range map[string]func(context.Context, []string) error{
		"show":     a.Show,
		"folder":   a.Folder,
		"priority": a.SetPriority,
		"attach":   a.Attach,
		"sweep":    a.Sweep,
	} {
		err := fn(ctx, nil)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "usage:", name)
	}
}

func stubReadFile(t *testing.T, files map[string][]byte) {
	t.Helper()
	orig := readFile
	readFile = func(name string) ([]byte, error) {
		if b, ok := files[name]; ok {
			return b, nil
		}
		return nil, os.ErrNotExist
	}
	t.Cleanup(func() { readFile = orig })
}

func TestAttachAndSweep(t *testing.T) {
	a := newTestApp(t, false, "")
	ctx := context.Background()
	stubReadFile(t, map[string][]byte{
		"/pics/cat.png": pngHeader,
		"/docs/x.txt":   []byte("plain text"),
	})

	n := a.st.NewNote("pets", "")
	n.Content = "intro"
	require.NoError(t, a.st.PutNote(ctx, n))

	require.NoError(t, a.Attach(ctx, []string{n.ID, "/pics/cat.png"}))
	require.ErrorContains(t, a.Attach(ctx, []string{n.ID, "/docs/x.txt"}), "not an image")
	require.ErrorIs(t, a.Attach(ctx, []string{n.ID, "/nope.png"}), os.ErrNotExist)

	imgs, err := a.st.ListImagesByNote(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, imgs, 1)
	assert.Equal(t, "cat.png", imgs[0].Name)
	assert.Equal(t, "image/png", imgs[0].MimeType)

	got, err := a.st.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "intro\n\n![cat.png](idb://"+imgs[0].ID+")", got.Content)

	// drop the reference, sweep removes the image
	a.reader = rdr("\nno pictures\n\n")
	require.NoError(t, a.Edit(ctx, []string{n.ID}))
	require.NoError(t, a.Sweep(ctx, []string{n.ID}))
	imgs, err = a.st.ListImagesByNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Empty(t, imgs)
}

func TestSweep_DeletedNoteDropsAllImages(t *testing.T) {
	a := newTestApp(t, false, "")
	ctx := context.Background()

	n := a.st.NewNote("n", "")
	require.NoError(t, a.st.PutNote(ctx, n))
	for i := 0; i < 3; i++ {
		require.NoError(t, a.st.PutImage(ctx, a.st.NewImage(n.ID, "x.png", "image/png", pngHeader)))
	}
	require.NoError(t, a.st.SoftDeleteNote(ctx, n.ID))

	require.NoError(t, a.Sweep(ctx, []string{n.ID}))
	imgs, err := a.st.ListImagesByNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Empty(t, imgs)
}

func TestStatus(t *testing.T) {
	a := newTestApp(t, false, "")
	ctx := context.Background()

	require.NoError(t, a.st.PutNote(ctx, a.st.NewNote("x", "")))
	require.NoError(t, a.Status(ctx, nil))

	out := a.out.String()
	assert.Contains(t, out, "mode: offline")
	assert.Contains(t, out, "pending notes: 1")
	assert.Contains(t, out, "last sync: never")
	assert.Contains(t, out, "schema version: 6")

	a.net.SetOnline(true)
	require.NoError(t, a.Sync(ctx, nil))
	a.out.Reset()
	require.NoError(t, a.Status(ctx, nil))
	assert.Contains(t, a.out.String(), "mode: online")
	assert.Contains(t, a.out.String(), "pending notes: 0")
	assert.Contains(t, a.out.String(), "(1 notes)")
}

func TestRun_ScriptedSession(t *testing.T) {
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
	prints := capturePrints(t)

	a := newTestApp(t, true, "addfolder Work\nfolders\nshow\nexit\n")
	a.Run(context.Background())

	assert.Contains(t, a.out.String(), "Folder created:")
	assert.Contains(t, a.out.String(), "Work")
	assert.Contains(t, *prints, "Error: usage: show <noteID>")
	assert.Contains(t, *prints, "Bye!")
}

func TestClose_ClosesInReverse(t *testing.T) {
	var order []string
	a := &App{closers: []io.Closer{
		closerFunc(func() error { order = append(order, "store"); return nil }),
		closerFunc(func() error { order = append(order, "remote"); return errors.New("ignored") }),
	}}
	require.NoError(t, a.Close())
	assert.Equal(t, []string{"remote", "store"}, order)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
