package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/snip-dev/snip/internal/search"
	"github.com/snip-dev/snip/internal/snippet"
)

const findMaxVisible = 10

func newFindCmd() *cobra.Command {
	var language string
	var tag string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Interactively search snippets as you type",
		Long: `Open an incremental fuzzy finder: every keystroke re-runs the
search engine over the current corpus. Enter prints the selected
snippet's content to stdout; Esc or Ctrl-C cancels.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("find needs an interactive terminal (use `snip search` in scripts)")
			}

			database, store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer database.Close()

			corpus, err := store.List()
			if err != nil {
				return err
			}

			// Reload generation: bumped by the watcher whenever the database
			// file changes, consumed by the keystroke loop. Stale in-flight
			// renders are simply discarded on the next keystroke.
			var generation atomic.Int64

			watcher, err := fsnotify.NewWatcher()
			if err == nil {
				defer watcher.Close()
				if err := watcher.Add(filepath.Dir(cfg.DatabasePath)); err == nil {
					go func() {
						for {
							select {
							case event, ok := <-watcher.Events:
								if !ok {
									return
								}
								if filepath.Base(event.Name) == filepath.Base(cfg.DatabasePath) &&
									(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
									generation.Add(1)
								}
							case _, ok := <-watcher.Errors:
								if !ok {
									return
								}
							}
						}
					}()
				}
			}

			oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
			if err != nil {
				return fmt.Errorf("enter raw mode: %w", err)
			}
			defer term.Restore(int(os.Stdin.Fd()), oldState)

			engine := search.NewEngine(cfg.Search)
			var query []rune
			selected := 0
			seen := generation.Load()

			buf := make([]byte, 3)
			for {
				if g := generation.Load(); g != seen {
					seen = g
					if fresh, err := store.List(); err == nil {
						corpus = fresh
					}
				}

				matches := engine.Search(corpus, search.Query{
					Text:     string(query),
					Language: language,
					Tag:      tag,
					Limit:    findMaxVisible,
				})
				if selected >= len(matches) {
					selected = len(matches) - 1
				}
				if selected < 0 {
					selected = 0
				}

				renderFinder(string(query), matches, selected)

				n, err := os.Stdin.Read(buf)
				if err != nil || n == 0 {
					clearFinder()
					return nil
				}

				switch {
				case buf[0] == 3 || (buf[0] == 27 && n == 1): // Ctrl-C, Esc
					clearFinder()
					return nil

				case buf[0] == 13: // Enter
					clearFinder()
					term.Restore(int(os.Stdin.Fd()), oldState)
					if len(matches) == 0 {
						return nil
					}
					sn := matches[selected].Snippet
					fmt.Print(sn.Content)
					if !strings.HasSuffix(sn.Content, "\n") {
						fmt.Println()
					}
					return nil

				case buf[0] == 127 || buf[0] == 8: // Backspace
					if len(query) > 0 {
						query = query[:len(query)-1]
					}

				case buf[0] == 21: // Ctrl-U
					query = query[:0]

				case buf[0] == 14: // Ctrl-N
					selected++

				case buf[0] == 16: // Ctrl-P
					selected--

				case buf[0] == 27 && n == 3 && buf[1] == '[': // Arrow keys
					switch buf[2] {
					case 'A':
						selected--
					case 'B':
						selected++
					}

				case buf[0] >= 32:
					query = append(query, []rune(string(buf[:n]))...)
				}
			}
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Only match snippets with this language")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only match snippets carrying this tag")

	return cmd
}

// renderFinder redraws the prompt and result list. The UI lives on
// stderr so the selected content can be piped from stdout.
func renderFinder(query string, matches []search.Match, selected int) {
	var b strings.Builder
	b.WriteString("\r\x1b[J")
	fmt.Fprintf(&b, "search> %s\r\n", query)

	for i, m := range matches {
		marker := "  "
		if i == selected {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%3d  %s%s\r\n", marker, m.Score, m.Snippet.Name, finderMeta(m.Snippet))
	}
	if len(matches) == 0 {
		b.WriteString("  (no matches)\r\n")
	}

	// Park the cursor back at the end of the query line.
	lines := len(matches)
	if lines == 0 {
		lines = 1
	}
	fmt.Fprintf(&b, "\x1b[%dA\r\x1b[%dC", lines+1, len("search> ")+len([]rune(query)))

	fmt.Fprint(os.Stderr, b.String())
}

func finderMeta(sn snippet.Snippet) string {
	meta := " (" + sn.Language
	if len(sn.Tags) > 0 {
		meta += ", " + strings.Join(sn.Tags, ",")
	}
	return meta + ")"
}

func clearFinder() {
	fmt.Fprint(os.Stderr, "\r\x1b[J")
}
