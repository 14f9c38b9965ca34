package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dogechoco/messageboard/core"
	"github.com/dogechoco/messageboard/x/board"
)

const (
	statusView   = "status"
	messagesView = "messages"
	composeView  = "compose"
	alertView    = "alert"
)

var (
	uiLive    bool
	uiLogFile string
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive message board",
	Long: `Open the message board in the terminal.

Keys:
  Enter    sign and post the composed message
  Ctrl-R   fetch the messages again
  Ctrl-E   download every message (admin)
  PgUp/Dn  scroll the messages
  Ctrl-C   quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logOut := io.Discard
		if uiLogFile != "" {
			f, err := os.OpenFile(uiLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return errors.Wrap(err, "failed to open log file")
			}
			defer f.Close()
			logOut = f
		}

		notifier := &tuiNotifier{fallback: stderrNotifier{w: cmd.ErrOrStderr()}}
		s, err := openSession(cmd, notifier)
		if err != nil {
			return err
		}

		// the wallet may prompt on the terminal, so connect before the ui owns it
		if err := s.connect(cmd.Context(), false); err != nil {
			slog.Warn("continuing disconnected", slog.String("error", err.Error()))
		}

		setupLogger(logOut, verbose)

		return runUI(cmd.Context(), s, notifier, uiLive)
	},
}

// tuiNotifier queues alerts into the popup view once the ui runs.
type tuiNotifier struct {
	mu       sync.Mutex
	ui       *tui
	fallback board.Notifier
}

func (n *tuiNotifier) attach(t *tui) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ui = t
}

func (n *tuiNotifier) Alert(message string) {
	n.mu.Lock()
	t := n.ui
	n.mu.Unlock()

	if t == nil {
		n.fallback.Alert(message)
		return
	}
	t.g.Update(func(g *gocui.Gui) error {
		t.alerts = append(t.alerts, message)
		return nil
	})
}

type tui struct {
	ctx        context.Context
	g          *gocui.Gui
	board      *board.Board
	alerts     []string
	submitting atomic.Bool
}

func runUI(ctx context.Context, s *session, notifier *tuiNotifier, live bool) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return errors.Wrap(err, "failed to start terminal ui")
	}
	defer g.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t := &tui{ctx: ctx, g: g, board: s.board}
	notifier.attach(t)
	defer notifier.attach(nil)

	g.Cursor = true
	g.SetManagerFunc(t.layout)
	if err := t.keybindings(); err != nil {
		return err
	}

	go t.refresh()
	if live {
		go t.follow(s)
	}
	go func() {
		<-ctx.Done()
		g.Update(quit)
	}()

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (t *tui) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	state := t.board.State()

	if v, err := g.SetView(statusView, 0, 0, maxX-1, 2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Wallet"
	}
	if v, err := g.View(statusView); err == nil {
		v.Clear()
		if state == board.Disconnected {
			fmt.Fprint(v, " not connected")
		} else {
			fmt.Fprintf(v, " %s (%s)", t.board.Address(), state)
		}
	}

	bottom := maxY - 1
	if state != board.Disconnected {
		bottom = maxY - 6
		if v, err := g.SetView(composeView, 0, maxY-5, maxX-1, maxY-1); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
			v.Title = "Message (Enter to sign and send)"
			v.Editable = true
			v.Wrap = true
			if len(t.alerts) == 0 {
				if _, err := g.SetCurrentView(composeView); err != nil {
					return err
				}
			}
		}
	}

	if v, err := g.SetView(messagesView, 0, 3, maxX-1, bottom); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Wrap = true
	}
	if v, err := g.View(messagesView); err == nil {
		v.Clear()
		if state == board.ConnectedAdmin {
			v.Title = "Messages (Ctrl-R refresh, Ctrl-E export)"
			renderMessages(v, t.board.Messages())
		} else {
			v.Title = "Messages"
			fmt.Fprintln(v, " Only the admin wallet can see the posted messages.")
		}
	}

	return t.layoutAlert(g, maxX, maxY)
}

func (t *tui) layoutAlert(g *gocui.Gui, maxX, maxY int) error {
	if len(t.alerts) == 0 {
		if err := g.DeleteView(alertView); err != nil && err != gocui.ErrUnknownView {
			return err
		}
		return nil
	}

	message := t.alerts[0]
	width := len(message) + 4
	if width < 30 {
		width = 30
	}
	if width > maxX-2 {
		width = maxX - 2
	}
	x0 := (maxX - width) / 2
	y0 := maxY/2 - 2

	v, err := g.SetView(alertView, x0, y0, x0+width, y0+4)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = "Alert (Enter to close)"
	v.Wrap = true
	v.Clear()
	fmt.Fprintf(v, " %s", message)

	if _, err := g.SetViewOnTop(alertView); err != nil {
		return err
	}
	_, err = g.SetCurrentView(alertView)
	return err
}

func renderMessages(w io.Writer, messages []core.Message) {
	if len(messages) == 0 {
		fmt.Fprintln(w, " No messages yet.")
		return
	}
	for _, msg := range messages {
		fmt.Fprintf(w, " %s  %s\n", msg.WalletAddress, formatTimestamp(msg))
		for _, line := range strings.Split(strings.TrimRight(msg.Message, "\n"), "\n") {
			fmt.Fprintf(w, "   %s\n", line)
		}
		fmt.Fprintln(w)
	}
}

func (t *tui) keybindings() error {
	g := t.g
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quitKey); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyCtrlR, gocui.ModNone, t.onRefresh); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyCtrlE, gocui.ModNone, t.onExport); err != nil {
		return err
	}
	if err := g.SetKeybinding(composeView, gocui.KeyEnter, gocui.ModNone, t.onSubmit); err != nil {
		return err
	}
	if err := g.SetKeybinding(alertView, gocui.KeyEnter, gocui.ModNone, t.onDismiss); err != nil {
		return err
	}
	if err := g.SetKeybinding(alertView, gocui.KeyEsc, gocui.ModNone, t.onDismiss); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyPgup, gocui.ModNone, scrollUp); err != nil {
		return err
	}
	if err := g.SetKeybinding("", gocui.KeyPgdn, gocui.ModNone, scrollDown); err != nil {
		return err
	}
	return nil
}

func (t *tui) onSubmit(g *gocui.Gui, v *gocui.View) error {
	t.submit(strings.TrimSuffix(v.Buffer(), "\n"), func(err error) {
		g.Update(func(g *gocui.Gui) error {
			if err != nil {
				return nil
			}
			v, err := g.View(composeView)
			if err != nil {
				return nil
			}
			v.Clear()
			v.SetOrigin(0, 0)
			return v.SetCursor(0, 0)
		})
	})
	return nil
}

// submit posts draft in the background and reports the result to done.
// It returns false without doing anything while a previous submit runs.
func (t *tui) submit(draft string, done func(error)) bool {
	if !t.submitting.CompareAndSwap(false, true) {
		return false
	}
	t.board.SetDraft(draft)

	go func() {
		err := t.board.Submit(t.ctx)
		t.submitting.Store(false)
		done(err)
	}()
	return true
}

func (t *tui) onRefresh(g *gocui.Gui, v *gocui.View) error {
	go t.refresh()
	return nil
}

func (t *tui) onExport(g *gocui.Gui, v *gocui.View) error {
	if t.board.State() != board.ConnectedAdmin {
		return nil
	}
	go func() {
		// alerts report the outcome
		_, _ = t.board.Export(t.ctx)
	}()
	return nil
}

func (t *tui) onDismiss(g *gocui.Gui, v *gocui.View) error {
	if len(t.alerts) > 0 {
		t.alerts = t.alerts[1:]
	}
	if len(t.alerts) == 0 {
		if err := g.DeleteView(alertView); err != nil && err != gocui.ErrUnknownView {
			return err
		}
		if _, err := g.View(composeView); err == nil {
			_, err := g.SetCurrentView(composeView)
			return err
		}
	}
	return nil
}

func (t *tui) refresh() {
	_ = t.board.Refresh(t.ctx)
	t.g.Update(func(*gocui.Gui) error { return nil })
}

// follow refreshes the list whenever the backend announces a new message,
// reconnecting with a delay when the socket drops.
func (t *tui) follow(s *session) {
	for {
		err := s.client.Subscribe(t.ctx, func(event core.Event) {
			if event.Type == core.EventTypeMessage {
				t.refresh()
			}
		})
		if t.ctx.Err() != nil {
			return
		}
		if err != nil {
			slog.Debug("socket closed", slog.String("error", err.Error()))
		}
		select {
		case <-t.ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}

func scrollUp(g *gocui.Gui, _ *gocui.View) error {
	v, err := g.View(messagesView)
	if err != nil {
		return nil
	}
	ox, oy := v.Origin()
	_, sy := v.Size()
	if oy > sy {
		return v.SetOrigin(ox, oy-sy)
	}
	return v.SetOrigin(ox, 0)
}

func scrollDown(g *gocui.Gui, _ *gocui.View) error {
	v, err := g.View(messagesView)
	if err != nil {
		return nil
	}
	ox, oy := v.Origin()
	_, sy := v.Size()
	if oy+sy < len(v.BufferLines()) {
		return v.SetOrigin(ox, oy+sy)
	}
	return nil
}

func quit(g *gocui.Gui) error {
	return gocui.ErrQuit
}

func quitKey(g *gocui.Gui, v *gocui.View) error {
	return quit(g)
}

func init() {
	uiCmd.Flags().BoolVar(&uiLive, "live", true, "Refresh when the backend announces a new message")
	uiCmd.Flags().StringVar(&uiLogFile, "log-file", "", "Write logs to this file while the ui runs")
	rootCmd.AddCommand(uiCmd)
}
