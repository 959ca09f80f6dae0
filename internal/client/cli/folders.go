package cli

import (
	"context"
	"fmt"
	"strings"
)

const defaultTagColor = "#6b7280"

func (a *App) Folders(ctx context.Context, _ []string) error {
	list, err := a.store.ListFolders(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "(no folders)")
	}
	for _, f := range list {
		fmt.Fprintf(a.out, "%s  %s\n", f.ID, f.Name)
	}
	return nil
}

func (a *App) Tags(ctx context.Context, _ []string) error {
	list, err := a.store.ListTags(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "(no tags)")
	}
	for _, t := range list {
		fmt.Fprintf(a.out, "%s  %s  %s\n", t.ID, t.Name, t.Color)
	}
	return nil
}

func (a *App) AddFolder(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "addfolder <name>"); err != nil {
		return err
	}
	f := a.store.NewFolder(strings.Join(args, " "))
	if err := a.store.PutFolder(ctx, f); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Folder created:", f.ID)
	return nil
}

func (a *App) AddTag(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "addtag <name> [color]"); err != nil {
		return err
	}
	color := defaultTagColor
	if len(args) > 1 {
		color = args[1]
	}
	t := a.store.NewTag(args[0], color)
	if err := a.store.PutTag(ctx, t); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Tag created:", t.ID)
	return nil
}

func (a *App) RemoveFolder(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "rmfolder <folderID>"); err != nil {
		return err
	}
	if err := a.store.SoftDeleteFolder(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Folder deleted; its notes are kept.")
	return nil
}

func (a *App) RemoveTag(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "rmtag <tagID>"); err != nil {
		return err
	}
	if err := a.store.SoftDeleteTag(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Tag deleted.")
	return nil
}
