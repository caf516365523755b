package cmd

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/storekit/storeadm/config"
	"github.com/storekit/storeadm/internal/api"
	"github.com/storekit/storeadm/internal/filter"
)

// Control keys used by the browse loop.
const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyCtrlN     = 0x0e
	keyCtrlP     = 0x10
	keyCtrlR     = 0x12
	keyEnter     = 0x0d
	keyBackspace = 0x7f
	keyDelete    = 0x08
)

// NewBrowseCommand creates the interactive browse command
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse products interactively",
		Long: `Browse products with live search. Typing filters by title; fetches are
debounced so the list refreshes once you stop typing.

Keys: type to search, Enter fetches immediately, Ctrl-N/Ctrl-P switch
pages, Ctrl-R resets all filters, Ctrl-C quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse()
		},
	}
}

func runBrowse() error {
	a := newApp()
	if err := a.session.RequireAuth(); err != nil {
		return err
	}
	defer a.save()

	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return fmt.Errorf("browse needs an interactive terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to switch terminal to raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	// Pick the saved view back up, the way the product list remembers
	// its filters between visits.
	state := filter.Load(config.GetStateDir())

	// Committed search values arrive on a channel so all state changes
	// happen on the loop goroutine.
	commits := make(chan string, 1)
	deb := filter.NewDebounced(state.Title, config.GetDebounceDelay(), func(v string) {
		commits <- v
	})
	defer deb.Cancel()

	keys := make(chan byte, 16)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err == io.EOF || n == 0 {
				close(keys)
				return
			}
			keys <- buf[0]
		}
	}()

	fetch := func() ([]api.Product, error) {
		return a.store.Products(cmdContext(), state)
	}

	products, fetchErr := fetch()
	render(state, deb.Value(), products, fetchErr)

	for {
		select {
		case key, ok := <-keys:
			if !ok {
				return nil
			}
			switch key {
			case keyCtrlC, keyCtrlD:
				fmt.Print("\r\n")
				return filter.Save(config.GetStateDir(), state)
			case keyCtrlN:
				page := state.Page + 1
				state = state.Apply(filter.Update{Page: &page})
				products, fetchErr = fetch()
			case keyCtrlP:
				if state.Page > 1 {
					page := state.Page - 1
					state = state.Apply(filter.Update{Page: &page})
					products, fetchErr = fetch()
				}
			case keyCtrlR:
				// External reset: upstream wins, any pending commit
				// is cancelled.
				state = filter.Default()
				deb.Override(state.Title)
				products, fetchErr = fetch()
			case keyEnter:
				deb.Flush()
				continue
			case keyBackspace, keyDelete:
				current := deb.Value()
				if len(current) > 0 {
					deb.Input(current[:len(current)-1])
				}
			default:
				if key >= 0x20 && key < 0x7f {
					deb.Input(deb.Value() + string(rune(key)))
				}
			}
			render(state, deb.Value(), products, fetchErr)

		case committed := <-commits:
			state = state.Apply(filter.Update{Title: &committed})
			products, fetchErr = fetch()
			render(state, deb.Value(), products, fetchErr)
		}
	}
}

// render repaints the screen. Raw mode needs explicit carriage returns.
func render(state filter.State, search string, products []api.Product, fetchErr error) {
	fmt.Print("\x1b[2J\x1b[H")

	bold := color.New(color.Bold)
	bold.Printf("Search: %s_\r\n", search)
	fmt.Printf("Page %d  sort %s/%s   (Ctrl-N/P page, Ctrl-R reset, Ctrl-C quit)\r\n\r\n", state.Page, state.SortBy, state.SortOrder)

	if fetchErr != nil {
		color.Red("Could not load products. Check the connection and try again.\r\n")
		return
	}
	if len(products) == 0 {
		fmt.Print("No products match the current filters.\r\n")
		return
	}
	for _, p := range products {
		title := p.Title
		if len(title) > 44 {
			title = title[:41] + "..."
		}
		fmt.Printf("%-6d %-44s %10.2f  %s\r\n", p.ID, title, p.Price, p.Category.Name)
	}
}
