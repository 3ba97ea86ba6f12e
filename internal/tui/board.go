package tui

import (
	"context"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kosharny/ThunderpickMove/internal/engine"
)

// RunBoard shows the dashboard until the user quits. Engine events raised
// while it runs, including a theme reverted by the entitlement gate, are
// reflected live.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	feed := subscribe(svc)
	defer feed.stop()

	m := newBoardModel(ctx, svc)
	m.feed = feed
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// eventFeed forwards engine events to the board. After stop, senders and the
// listening command return instead of blocking.
type eventFeed struct {
	events chan engine.Event
	done   chan struct{}
	stop   func()
}

func subscribe(svc *engine.Service) *eventFeed {
	f := &eventFeed{
		events: make(chan engine.Event, 32),
		done:   make(chan struct{}),
	}
	unsubscribe := svc.Subscribe(func(ev engine.Event) {
		select {
		case f.events <- ev:
		case <-f.done:
		}
	})
	var once sync.Once
	f.stop = func() {
		once.Do(func() {
			unsubscribe()
			close(f.done)
		})
	}
	return f
}

// listen waits for the next engine event.
func (f *eventFeed) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-f.events:
			return engineEventMsg{ev: ev}
		case <-f.done:
			return nil
		}
	}
}
