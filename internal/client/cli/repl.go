package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Unfiled(ctx context.Context, args []string) error
	Folder(ctx context.Context, args []string) error
	Tagged(ctx context.Context, args []string) error
	Folders(ctx context.Context, args []string) error
	Tags(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	AddNote(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	SetPriority(ctx context.Context, args []string) error
	TagNote(ctx context.Context, args []string) error
	AddFolder(ctx context.Context, args []string) error
	AddTag(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	RemoveFolder(ctx context.Context, args []string) error
	RemoveTag(ctx context.Context, args []string) error
	Attach(ctx context.Context, args []string) error
	Images(ctx context.Context, args []string) error
	Sweep(ctx context.Context, args []string) error
	Sync(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  (l)ist                      all notes
  unfiled                     notes without a folder
  folder <folderID>           notes in a folder
  tagged <tagID>              notes with a tag
  folders | tags              list folders or tags
  show <noteID>               print a note
  addnote                     create a note (interactive)
  edit <noteID>               replace the content of a note
  priority <noteID> <p>       set low, medium, high or urgent
  tag <noteID> <tagID>        add a tag to a note
  addfolder <name>            create a folder
  addtag <name> [color]       create a tag
  delete <noteID>             delete a note
  rmfolder <folderID>         delete a folder (notes are kept)
  rmtag <tagID>               delete a tag
  attach <noteID> <file>      store an image and reference it from the note
  images <noteID>             list stored images of a note
  sweep <noteID>              delete images the note no longer references
  sync                        push pending changes now
  status                      connectivity and pending changes
  exit | quit                 leave the program`

// runREPL reads commands line by line and dispatches them to a. It returns
// on EOF or when the user types "exit" or "quit". Handler errors are printed
// and the loop goes on. An empty statusFn result suppresses the prompt.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if p := statusFn(); p != "" {
			printlnFn(p)
		}
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var handler func(context.Context, []string) error
		switch cmd {
		case "help":
			printlnFn(helpText)
			continue
		case "l", "list":
			handler = a.List
		case "unfiled":
			handler = a.Unfiled
		case "folder":
			handler = a.Folder
		case "tagged":
			handler = a.Tagged
		case "folders":
			handler = a.Folders
		case "tags":
			handler = a.Tags
		case "show":
			handler = a.Show
		case "addnote":
			handler = a.AddNote
		case "edit":
			handler = a.Edit
		case "priority":
			handler = a.SetPriority
		case "tag":
			handler = a.TagNote
		case "addfolder":
			handler = a.AddFolder
		case "addtag":
			handler = a.AddTag
		case "delete":
			handler = a.Delete
		case "rmfolder":
			handler = a.RemoveFolder
		case "rmtag":
			handler = a.RemoveTag
		case "attach":
			handler = a.Attach
		case "images":
			handler = a.Images
		case "sweep":
			handler = a.Sweep
		case "sync":
			handler = a.Sync
		case "status":
			handler = a.Status
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if err := handler(ctx, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}
