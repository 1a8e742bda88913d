package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/sitecanvas"
	"github.com/aretw0/sitecanvas/internal/presentation/graph"
	"github.com/aretw0/sitecanvas/internal/presentation/tui"
	"github.com/aretw0/sitecanvas/pkg/domain"
	"github.com/aretw0/sitecanvas/pkg/editor"
	"github.com/aretw0/sitecanvas/pkg/element"
	"github.com/aretw0/sitecanvas/pkg/render"
	"github.com/aretw0/sitecanvas/pkg/tree"
)

// EditOptions configures an interactive editing session.
type EditOptions struct {
	Key    string
	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
	// Quiet hides the banner and the prompt.
	Quiet bool
}

const editHelp = `Commands:
  <command> [json payload]   apply an editor command, e.g. select {"id":"e3"}
  add <type> [container id]  drop a new element on the canvas or into a container
  key <combo>                press a shortcut: delete, ctrl+z, ctrl+shift+z, ctrl+y
  show                       print the element outline
  preview                    print the page as Markdown
  graph                      print the element tree as a Mermaid diagram
  help                       print this help
  quit                       end the session`

// RunEdit reads commands line by line and applies them to one document
// until the input ends or ctx is cancelled.
func RunEdit(ctx context.Context, site *sitecanvas.Site, opts EditOptions) error {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &editSession{
		ctx:    ctx,
		site:   site,
		key:    opts.Key,
		out:    opts.Out,
		logger: opts.Logger,
		render: tui.NewRenderer(),
		drag:   editor.NewDrag(element.NewFactory(nil)),
	}

	state, err := site.Open(ctx, opts.Key)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	s.state = state

	if !opts.Quiet {
		tui.PrintBanner(opts.Out, strings.TrimSpace(sitecanvas.Version))
		PrintSystemMessage(opts.Out, "Editing '%s' (%d elements). Type 'help' for commands.", opts.Key, tree.Count(state.Document.Elements))
	}

	sc := bufio.NewScanner(NewInterruptibleReader(opts.In, ctx.Done()))
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for {
		if !opts.Quiet {
			fmt.Fprint(opts.Out, "> ")
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			return ctx.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := s.exec(line); err != nil {
			PrintSystemMessage(opts.Out, "error: %v", err)
		}
	}
}

type editSession struct {
	ctx    context.Context
	site   *sitecanvas.Site
	key    string
	out    io.Writer
	logger *slog.Logger
	render func(string) (string, error)
	drag   *editor.Drag
	state  *domain.State
}

func (s *editSession) exec(line string) error {
	word, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch word {
	case "help":
		fmt.Fprintln(s.out, editHelp)
		return nil
	case "show":
		fmt.Fprint(s.out, render.Outline(s.state.Document, s.state.Selected()))
		return nil
	case "preview":
		out, err := s.render(render.Markdown(s.state.Document))
		if err != nil {
			return err
		}
		fmt.Fprint(s.out, out)
		return nil
	case "graph":
		fmt.Fprintln(s.out, graph.GenerateMermaid(s.state.Document, &graph.Overlay{Selected: s.state.Selected()}))
		return nil
	case "add":
		cmd, err := s.drop(rest)
		if err != nil {
			return err
		}
		return s.dispatch(cmd)
	case "key":
		cmd, ok := s.shortcut(rest)
		if !ok {
			PrintSystemMessage(s.out, "'%s' does nothing here.", rest)
			return nil
		}
		return s.dispatch(cmd)
	}

	var payload map[string]any
	if rest != "" {
		if err := json.Unmarshal([]byte(rest), &payload); err != nil {
			return fmt.Errorf("payload must be a JSON object: %w", err)
		}
	}
	cmd, err := editor.Decode(word, payload)
	if err != nil {
		return err
	}
	return s.dispatch(cmd)
}

func (s *editSession) dispatch(cmd editor.Command) error {
	state, diff, err := s.site.Dispatch(s.ctx, s.key, cmd)
	if err != nil {
		return err
	}
	s.state = state
	s.logger.Debug("command applied", "key", s.key, "command", cmd.Name())
	PrintSystemMessage(s.out, "%s: %s.", cmd.Name(), DescribeDiff(diff))
	return nil
}

// drop simulates dragging a palette entry onto the canvas or a container.
func (s *editSession) drop(args string) (editor.Command, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return nil, fmt.Errorf("usage: add <type> [container id]")
	}
	s.drag.Begin(domain.ElementType(fields[0]))
	if len(fields) > 1 {
		s.drag.Hover(fields[1])
	}
	cmd, ok := s.drag.Drop()
	if !ok {
		return nil, fmt.Errorf("nothing to drop")
	}
	return cmd, nil
}

// shortcut parses a combo such as "ctrl+shift+z" or "delete".
func (s *editSession) shortcut(combo string) (editor.Command, bool) {
	var mods editor.Modifiers
	key := ""
	for _, part := range strings.Split(strings.ToLower(combo), "+") {
		switch strings.TrimSpace(part) {
		case "ctrl":
			mods.Ctrl = true
		case "cmd", "meta":
			mods.Meta = true
		case "shift":
			mods.Shift = true
		case "delete", "del":
			key = "Delete"
		case "backspace":
			key = "Backspace"
		default:
			key = strings.TrimSpace(part)
		}
	}
	return editor.Shortcut(key, mods, s.state.SelectedID, false)
}
