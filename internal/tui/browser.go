// Package tui is the interactive terminal browser for price lists.
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"github.com/KaramelBytes/pricebook-cli/internal/layout"
)

// Source is what the browser needs from the pricebook service.
type Source interface {
	Datasets() ([]string, error)
	LoadDataset(name string) (layout.Result, error)
	SearchDataset(name, query string) (layout.Result, error)
	RegistryPath() string
}

// Browser shows one dataset at a time with a name selector and a search box.
type Browser struct {
	src    Source
	logger *log.Logger
	zoom   *Zoom

	app        *tview.Application
	selector   *tview.InputField
	searchOnly *tview.Checkbox
	search     *tview.InputField
	table      *tview.Table
	status     *tview.TextView
	root       *tview.Flex

	completer *Completer
	current   layout.Result
	loaded    bool
}

// New builds the browser widgets. Call Run to start the event loop.
func New(src Source, zoom *Zoom, logger *log.Logger) (*Browser, error) {
	if logger == nil {
		logger = log.Default()
	}
	b := &Browser{src: src, zoom: zoom, logger: logger, app: tview.NewApplication()}
	if err := b.reloadNames(); err != nil {
		return nil, err
	}

	b.selector = tview.NewInputField().
		SetLabel("Price list: ").
		SetFieldWidth(50).
		SetAutocompleteFunc(b.completer.Match)
	b.selector.SetAutocompletedFunc(func(text string, _ int, source int) bool {
		b.selector.SetText(text)
		if source != tview.AutocompletedNavigate {
			b.selectDataset()
		}
		return source != tview.AutocompletedNavigate
	})
	b.selector.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			b.selectDataset()
		}
	})

	b.searchOnly = tview.NewCheckbox().SetLabel("Search only ")

	b.search = tview.NewInputField().
		SetLabel("Search: ").
		SetFieldWidth(30)
	b.search.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			b.runSearch()
		}
	})

	b.table = tview.NewTable().
		SetFixed(0, 1).
		SetSelectable(false, false)
	b.table.SetBorder(true)
	b.table.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Rune() {
		case '+', '=':
			b.zoomIn()
			return nil
		case '-', '_':
			b.zoomOut()
			return nil
		}
		return ev
	})

	b.status = tview.NewTextView().SetDynamicColors(true)

	header := tview.NewFlex().
		AddItem(b.selector, 0, 2, true).
		AddItem(b.searchOnly, 16, 0, false).
		AddItem(b.search, 0, 1, false)
	b.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, true).
		AddItem(b.table, 0, 1, false).
		AddItem(b.status, 1, 0, false)

	focus := []tview.Primitive{b.selector, b.searchOnly, b.search, b.table}
	b.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Key() {
		case tcell.KeyTab, tcell.KeyBacktab:
			cur := b.app.GetFocus()
			i := 0
			for j, p := range focus {
				if p == cur {
					i = j
				}
			}
			if ev.Key() == tcell.KeyTab {
				i = (i + 1) % len(focus)
			} else {
				i = (i + len(focus) - 1) % len(focus)
			}
			b.app.SetFocus(focus[i])
			return nil
		case tcell.KeyCtrlQ:
			b.app.Stop()
			return nil
		}
		return ev
	})

	b.setStatus("")
	return b, nil
}

// Run starts the event loop and blocks until the user quits. The registry file
// is watched so datasets imported elsewhere show up in the selector.
func (b *Browser) Run() error {
	stop, err := watchFile(b.src.RegistryPath(), func() {
		b.app.QueueUpdateDraw(func() {
			if err := b.reloadNames(); err != nil {
				b.setStatus("[red]✗ " + tview.Escape(err.Error()))
				return
			}
			b.selector.SetAutocompleteFunc(b.completer.Match)
			b.setStatus(fmt.Sprintf("registry updated: %d datasets", len(b.completer.Names())))
		})
	}, func(err error) {
		b.logger.Warn("registry watch", "err", err)
	})
	if err != nil {
		b.logger.Warn("registry changes will not be picked up", "err", err)
	} else {
		defer stop()
	}
	return b.app.SetRoot(b.root, true).EnableMouse(true).Run()
}

func (b *Browser) reloadNames() error {
	names, err := b.src.Datasets()
	if err != nil {
		return err
	}
	b.completer = NewCompleter(names)
	return nil
}

// selectDataset loads the dataset named in the selector unless search-only
// mode defers loading to the next search.
func (b *Browser) selectDataset() {
	if b.searchOnly.IsChecked() {
		b.clear()
		b.setStatus("search only: press Enter in the search box")
		return
	}
	name := b.selector.GetText()
	if !b.completer.Has(name) {
		b.clear()
		b.setStatus("[red]✗ unknown price list " + tview.Escape(strconv.Quote(name)))
		return
	}
	res, err := b.src.LoadDataset(name)
	b.show(name, res, err)
}

func (b *Browser) runSearch() {
	name := b.selector.GetText()
	query := b.search.GetText()
	res, err := b.src.SearchDataset(name, query)
	b.show(name, res, err)
	if err == nil && query != "" {
		b.setStatus(fmt.Sprintf("%d matching rows for %q", len(res.MatchedRows()), query))
	}
}

// show replaces the table with res. On error the table is left empty.
func (b *Browser) show(name string, res layout.Result, err error) {
	b.clear()
	if err != nil {
		b.logger.Debug("load failed", "name", name, "err", err)
		b.setStatus("[red]✗ " + tview.Escape(err.Error()))
		return
	}
	b.current = res
	b.loaded = true
	b.render()
	b.setStatus(fmt.Sprintf("%s: %d rows, %d columns", name, res.Rows, res.Cols))
}

func (b *Browser) clear() {
	b.table.Clear()
	b.current = layout.Result{}
	b.loaded = false
}

// render lays the current result into the table. Rows are packed; the fixed
// first column shows each row's position in the source file.
func (b *Browser) render() {
	b.table.Clear()
	line := map[int]int{}
	for _, c := range b.current.Cells {
		r, ok := line[c.Row]
		if !ok {
			r = len(line)
			line[c.Row] = r
			b.table.SetCell(r, 0, tview.NewTableCell(strconv.Itoa(c.Row+1)).
				SetTextColor(tcell.ColorGray).
				SetAlign(tview.AlignRight))
		}
		w := b.zoom.CellWidth(c.Span)
		text := runewidth.FillRight(runewidth.Truncate(c.Text, w, "…"), w)
		b.table.SetCell(r, c.Col+1, tview.NewTableCell(tview.Escape(text)).SetMaxWidth(w))
	}
}

func (b *Browser) zoomIn() {
	if b.zoom.In() && b.loaded {
		b.render()
	}
	b.setStatus("")
}

func (b *Browser) zoomOut() {
	if b.zoom.Out() && b.loaded {
		b.render()
	}
	b.setStatus("")
}

func (b *Browser) setStatus(msg string) {
	in, out := "[white]+", "[white]-"
	if !b.zoom.CanIn() {
		in = "[gray]+"
	}
	if !b.zoom.CanOut() {
		out = "[gray]-"
	}
	b.status.SetText(fmt.Sprintf("zoom %d %s %s[white]  Tab: next field  Ctrl-Q: quit  %s", b.zoom.Level, in, out, msg))
}
