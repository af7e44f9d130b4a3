// Package tui is the interactive playback view: a channel tab bar, the
// current program, and a switching indicator while audio spins up.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nabetama/nhk-radio-player/nhk"
	"github.com/nabetama/nhk-radio-player/player"
)

const programFetchTimeout = 10 * time.Second

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	activeTabStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).Padding(0, 1)

	programTitleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Options wires the view to the playback pipeline.
type Options struct {
	// AreaName is the display name of the selected broadcast area.
	AreaName string

	// Initial is the channel selected on the command line.
	Initial nhk.Channel

	// PlaylistURL maps a channel to its playlist URL for the area.
	PlaylistURL func(nhk.Channel) string

	// Signal carries channel switches to the playback session.
	Signal *player.Signal[player.Selection]

	// NowPlaying fetches the current program for a channel.
	NowPlaying func(ctx context.Context, c nhk.Channel) (nhk.ProgramInfo, error)

	// Started closes when the first audio reaches the device.
	Started <-chan struct{}
}

type programMsg struct {
	channel nhk.Channel
	info    nhk.ProgramInfo
}

type playbackStartedMsg struct{}

type model struct {
	opts    Options
	channel nhk.Channel
	program nhk.ProgramInfo

	spin      spinner.Model
	switching bool
	playing   bool
}

func newModel(opts Options) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		opts:      opts,
		channel:   opts.Initial,
		spin:      sp,
		switching: true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		m.fetchProgram(m.channel),
		waitStarted(m.opts.Started),
	)
}

func (m model) fetchProgram(c nhk.Channel) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), programFetchTimeout)
		defer cancel()

		info, err := m.opts.NowPlaying(ctx, c)
		if err != nil {
			// The program pane degrades to its placeholder; playback is
			// unaffected.
			info = nhk.NowPlaying(nil, c)
		}
		return programMsg{channel: c, info: info}
	}
}

func waitStarted(started <-chan struct{}) tea.Cmd {
	if started == nil {
		return nil
	}
	return func() tea.Msg {
		<-started
		return playbackStartedMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "1":
			return m.switchTo(nhk.ChannelR1)
		case "2":
			return m.switchTo(nhk.ChannelR2)
		case "3":
			return m.switchTo(nhk.ChannelFM)
		case "right", "l":
			return m.switchTo(m.channel.Next())
		case "left", "h":
			return m.switchTo(m.channel.Prev())
		}

	case programMsg:
		if msg.channel == m.channel {
			m.program = msg.info
			if m.playing {
				m.switching = false
			}
		}
		return m, nil

	case playbackStartedMsg:
		m.playing = true
		m.switching = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) switchTo(c nhk.Channel) (tea.Model, tea.Cmd) {
	if c == m.channel {
		return m, nil
	}
	m.channel = c
	m.program = nhk.ProgramInfo{}
	m.switching = true
	m.opts.Signal.Set(player.Selection{
		Channel:     c,
		PlaylistURL: m.opts.PlaylistURL(c),
	})
	return m, m.fetchProgram(c)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("NHK らじる★らじる " + m.opts.AreaName))
	b.WriteString("\n\n")

	var tabs []string
	for _, c := range nhk.Channels {
		label := c.ShortName()
		if c == m.channel {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if m.switching {
		b.WriteString(m.spin.View() + " 接続中...\n")
	} else {
		b.WriteString(programTitleStyle.Render(m.program.Title) + "\n")
		if m.program.StartTime != "" {
			b.WriteString(dimStyle.Render(m.program.StartTime) + "\n")
		}
		if m.program.Description != "" {
			b.WriteString(m.program.Description + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1/2/3 ←/→ チャンネル切替  q 終了"))
	b.WriteString("\n")

	return b.String()
}

// Run shows the playback view until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	program := tea.NewProgram(newModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Cancellation from outside is a normal shutdown.
		return nil
	}
	return err
}
