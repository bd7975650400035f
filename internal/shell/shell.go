// Package shell runs the interactive category page: list, edit the draft,
// save, reload.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storeadmin/catman/internal/domain"
	"storeadmin/catman/internal/manager"
	"storeadmin/catman/internal/view"
)

const helpText = `Commands:
  list                     show categories
  show                     show the form
  new                      start a new category (drops the current draft)
  edit <#|id>              edit a category
  cancel                   leave edit mode and clear the form
  name <text>              set the category name
  parent <#|id|->          set the parent ("-" for none)
  prop add                 add a property row
  prop name <n> <text>     set the name of property row n
  prop values <n> <text>   set comma separated values of row n
  prop rm <n>              remove property row n
  save                     create or update
  delete <#|id>            delete a category
  help                     show this help
  quit                     leave the shell`

var errQuit = errors.New("quit")

type Shell struct {
	manager *manager.Manager
	in      *bufio.Reader
	out     io.Writer
}

// New returns a shell reading commands from in. Pass the same reader to the
// confirmer so dialog answers are read from the same stream.
func New(m *manager.Manager, in *bufio.Reader, out io.Writer) *Shell {
	return &Shell{manager: m, in: in, out: out}
}

// Run reads commands until quit, end of input or cancellation.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, `Category manager. Type "help" for commands.`)
	s.printList()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, s.promptLabel())
		line, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read command: %w", err)
		}
		atEOF := errors.Is(err, io.EOF)

		if cmdErr := s.Exec(ctx, line); cmdErr != nil {
			if errors.Is(cmdErr, errQuit) {
				return nil
			}
			fmt.Fprintf(s.out, "error: %v\n", cmdErr)
		}

		if atEOF {
			fmt.Fprintln(s.out)
			return nil
		}
	}
}

// Exec runs one command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	cmd, rest := splitWord(strings.TrimSpace(line))

	switch cmd {
	case "":
		return nil
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "quit", "exit", "q":
		return errQuit
	case "list", "ls":
		if err := s.manager.Load(ctx); err != nil {
			return err
		}
		s.printList()
	case "show":
		s.printDraft()
	case "new", "cancel":
		s.manager.CancelEdit()
		s.printDraft()
	case "edit":
		c, err := s.lookup(rest)
		if err != nil {
			return err
		}
		s.manager.StartEdit(c)
		s.printDraft()
	case "name":
		s.manager.SetName(rest)
	case "parent":
		return s.setParent(rest)
	case "prop":
		return s.property(rest)
	case "save":
		return s.save(ctx)
	case "delete", "rm":
		return s.remove(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q, type \"help\"", cmd)
	}
	return nil
}

func (s *Shell) save(ctx context.Context) error {
	result, err := s.manager.Save(ctx)
	if err != nil {
		return err
	}

	if result.Created {
		fmt.Fprintln(s.out, "Category created.")
	} else {
		fmt.Fprintln(s.out, "Category updated.")
	}
	s.printList()
	return nil
}

func (s *Shell) remove(ctx context.Context, ref string) error {
	c, err := s.lookup(ref)
	if err != nil {
		return err
	}

	deleted, err := s.manager.Remove(ctx, c)
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(s.out, "Deleted %s.\n", c.Name)
		s.printList()
	}
	return nil
}

func (s *Shell) setParent(ref string) error {
	if ref == "" || ref == "-" {
		s.manager.SetParent("")
		return nil
	}
	c, err := s.lookup(ref)
	if err != nil {
		return err
	}
	s.manager.SetParent(c.ID)
	return nil
}

func (s *Shell) property(args string) error {
	sub, rest := splitWord(args)

	if sub == "add" {
		s.manager.AddPropertyRow()
		s.printDraft()
		return nil
	}

	rowRef, text := splitWord(rest)
	row, err := strconv.Atoi(rowRef)
	if err != nil {
		return fmt.Errorf("property row must be a number, got %q", rowRef)
	}
	index := row - 1

	switch sub {
	case "name":
		err = s.manager.UpdatePropertyName(index, text)
	case "values":
		err = s.manager.UpdatePropertyValues(index, text)
	case "rm", "remove":
		err = s.manager.RemovePropertyRow(index)
	default:
		return fmt.Errorf("unknown property command %q", sub)
	}
	if err != nil {
		return err
	}
	s.printDraft()
	return nil
}

// lookup resolves a 1-based list position or a category id.
func (s *Shell) lookup(ref string) (domain.Category, error) {
	if ref == "" {
		return domain.Category{}, fmt.Errorf("missing category number or id")
	}

	categories := s.manager.Categories()
	if c, ok := categories.Find(ref); ok {
		return c, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(categories) {
			return domain.Category{}, fmt.Errorf("no category #%d (have %d)", n, len(categories))
		}
		return categories[n-1], nil
	}
	return domain.Category{}, fmt.Errorf("no category with id %q", ref)
}

func (s *Shell) promptLabel() string {
	if editing := s.manager.Editing(); editing != nil {
		return fmt.Sprintf("catman (edit %s)> ", editing.Name)
	}
	return "catman> "
}

func (s *Shell) printList() {
	categories := s.manager.Categories()
	if len(categories) == 0 {
		fmt.Fprintln(s.out, "No categories.")
		return
	}
	_ = view.Table(s.out, categories)
}

func (s *Shell) printDraft() {
	_ = view.Draft(s.out, s.manager.Draft(), s.manager.Editing(), s.manager.Categories())
}

func splitWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	word, rest, _ := strings.Cut(s, " ")
	return word, strings.TrimSpace(rest)
}
