package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/markdown"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// Attach stores an image file and appends a reference to it to the note.
func (a *App) Attach(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "attach <noteID> <file>"); err != nil {
		return err
	}
	n, err := a.activeNote(ctx, args[0])
	if err != nil {
		return err
	}

	data, err := readFile(args[1])
	if err != nil {
		return err
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return fmt.Errorf("%s is not an image (%s)", args[1], mime)
	}

	name := filepath.Base(args[1])
	img := a.store.NewImage(n.ID, name, mime, data)
	if err := a.store.PutImage(ctx, img); err != nil {
		return err
	}

	ref := fmt.Sprintf("![%s](%s)", name, markdown.ImageURI(img.ID))
	if n.Content != "" {
		n.Content += "\n\n"
	}
	n.Content += ref
	return a.save(ctx, n)
}

func (a *App) Images(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "images <noteID>"); err != nil {
		return err
	}
	list, err := a.store.ListImagesByNote(ctx, args[0])
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "(no images)")
	}
	for _, img := range list {
		fmt.Fprintf(a.out, "%s  %s  %s  %d bytes\n", img.ID, img.Name, img.MimeType, len(img.Data))
	}
	return nil
}

// Sweep removes images the note no longer references. For a deleted note
// every image goes.
func (a *App) Sweep(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "sweep <noteID>"); err != nil {
		return err
	}
	noteID := args[0]

	n, err := a.store.GetNote(ctx, noteID)
	if err != nil {
		return err
	}
	if n == nil || n.Deleted {
		if err := a.store.DeleteImagesByNote(ctx, noteID); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "All images of the note removed.")
		return nil
	}

	stale, err := a.store.UnreferencedImages(ctx, noteID)
	if err != nil {
		return err
	}
	for _, img := range stale {
		if err := a.store.DeleteImage(ctx, img.ID); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.out, "Removed %d unreferenced image(s).\n", len(stale))
	return nil
}
