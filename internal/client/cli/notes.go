package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

const timeLayout = "2006-01-02 15:04"

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func formatTime(ms int64) string {
	return time.UnixMilli(ms).Format(timeLayout)
}

func (a *App) printNotes(list []models.Note) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "(no notes)")
		return
	}
	for _, n := range list {
		mark := ""
		if !n.Synced {
			mark = " *"
		}
		fmt.Fprintf(a.out, "%s  [%s]  %s  (%s)%s\n", n.ID, n.Priority, n.Title, formatTime(n.UpdatedAt), mark)
	}
}

func (a *App) List(ctx context.Context, _ []string) error {
	list, err := a.store.ListNotes(ctx)
	if err != nil {
		return err
	}
	a.printNotes(list)
	return nil
}

func (a *App) Unfiled(ctx context.Context, _ []string) error {
	list, err := a.store.ListUnfiledNotes(ctx)
	if err != nil {
		return err
	}
	a.printNotes(list)
	return nil
}

func (a *App) Folder(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "folder <folderID>"); err != nil {
		return err
	}
	list, err := a.store.ListNotesInFolder(ctx, args[0])
	if err != nil {
		return err
	}
	a.printNotes(list)
	return nil
}

func (a *App) Tagged(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "tagged <tagID>"); err != nil {
		return err
	}
	list, err := a.store.ListNotesByTag(ctx, args[0])
	if err != nil {
		return err
	}
	a.printNotes(list)
	return nil
}

// activeNote loads a note that has not been deleted.
func (a *App) activeNote(ctx context.Context, id string) (*models.Note, error) {
	n, err := a.store.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil || n.Deleted {
		return nil, fmt.Errorf("note %s: %w", id, common.ErrNotFound)
	}
	return n, nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "show <noteID>"); err != nil {
		return err
	}
	n, err := a.activeNote(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "# %s\n", n.Title)
	fmt.Fprintf(a.out, "id: %s\npriority: %s\n", n.ID, n.Priority.OrDefault())
	if n.FolderID != "" {
		fmt.Fprintf(a.out, "folder: %s\n", n.FolderID)
	}
	if len(n.TagIDs) > 0 {
		fmt.Fprintf(a.out, "tags: %s\n", strings.Join(n.TagIDs, ", "))
	}
	fmt.Fprintf(a.out, "created: %s\nupdated: %s\nsynced: %t\n\n", formatTime(n.CreatedAt), formatTime(n.UpdatedAt), n.Synced)
	fmt.Fprintln(a.out, n.Content)
	return nil
}

func (a *App) AddNote(ctx context.Context, _ []string) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	folderID, err := GetSimpleText(a.reader, "Folder ID (empty for none)", a.out)
	if err != nil {
		return err
	}
	if folderID != "" {
		f, err := a.store.GetFolder(ctx, folderID)
		if err != nil {
			return err
		}
		if f == nil || f.Deleted {
			return fmt.Errorf("folder %s: %w", folderID, common.ErrNotFound)
		}
	}
	prio, err := GetSimpleText(a.reader, "Priority (low, medium, high, urgent; empty for medium)", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content (Markdown)", a.out)
	if err != nil {
		return err
	}

	n := a.store.NewNote(title, folderID)
	if prio != "" {
		p, ok := models.ParsePriority(prio)
		if !ok {
			return fmt.Errorf("unknown priority %q", prio)
		}
		n.Priority = p
	}
	n.Content = content

	if err := a.store.PutNote(ctx, n); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note saved:", n.ID)
	a.afterChange(ctx)
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "edit <noteID>"); err != nil {
		return err
	}
	n, err := a.activeNote(ctx, args[0])
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title (empty keeps %q)", n.Title), a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "New content (Markdown)", a.out)
	if err != nil {
		return err
	}
	if title != "" {
		n.Title = title
	}
	n.Content = content

	return a.save(ctx, n)
}

func (a *App) SetPriority(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "priority <noteID> <low|medium|high|urgent>"); err != nil {
		return err
	}
	p, ok := models.ParsePriority(args[1])
	if !ok {
		return fmt.Errorf("unknown priority %q", args[1])
	}
	n, err := a.activeNote(ctx, args[0])
	if err != nil {
		return err
	}
	n.Priority = p
	return a.save(ctx, n)
}

func (a *App) TagNote(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "tag <noteID> <tagID>"); err != nil {
		return err
	}
	t, err := a.store.GetTag(ctx, args[1])
	if err != nil {
		return err
	}
	if t == nil || t.Deleted {
		return fmt.Errorf("tag %s: %w", args[1], common.ErrNotFound)
	}
	n, err := a.activeNote(ctx, args[0])
	if err != nil {
		return err
	}
	if slices.Contains(n.TagIDs, t.ID) {
		return nil
	}
	n.TagIDs = append(n.TagIDs, t.ID)
	return a.save(ctx, n)
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "delete <noteID>"); err != nil {
		return err
	}
	if err := a.store.SoftDeleteNote(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	a.afterChange(ctx)
	return nil
}

// save stamps an edited note, stores it and pushes it when online.
func (a *App) save(ctx context.Context, n *models.Note) error {
	a.store.Touch(n)
	if err := a.store.PutNote(ctx, n); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	a.afterChange(ctx)
	return nil
}
