// Command radiru plays NHK net radio (らじる★らじる) live streams.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nabetama/nhk-radio-player/audio/transcode"
	"github.com/nabetama/nhk-radio-player/logging"
	"github.com/nabetama/nhk-radio-player/nhk"
	"github.com/nabetama/nhk-radio-player/output"
	"github.com/nabetama/nhk-radio-player/player"
	"github.com/nabetama/nhk-radio-player/tui"
)

type cliOptions struct {
	configPath string
	logLevel   string
	format     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "radiru",
		Short:         "NHK らじる★らじる live stream player",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	listFormat := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&opts.format, "format", "text", "output format (text, json, yaml)")
	}

	playCmd := &cobra.Command{
		Use:   "play <area> <channel>",
		Short: "Play a channel (r1, r2, fm) for a broadcast area",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), opts, args[0], args[1])
		},
	}

	areasCmd := &cobra.Command{
		Use:   "areas",
		Short: "List broadcast areas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAreas(cmd.Context(), opts)
		},
	}
	listFormat(areasCmd)

	streamsCmd := &cobra.Command{
		Use:   "streams",
		Short: "List playlist URLs for every area and channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStreams(cmd.Context(), opts)
		},
	}
	listFormat(streamsCmd)

	programCmd := &cobra.Command{
		Use:   "program <area>",
		Short: "Show the current program for each channel in an area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(cmd.Context(), opts, args[0])
		},
	}
	listFormat(programCmd)

	root.AddCommand(playCmd, areasCmd, streamsCmd, programCmd)
	return root
}

func loadPlayerConfig(opts *cliOptions) (*player.Config, error) {
	if opts.configPath == "" {
		return player.DefaultConfig(), nil
	}
	return player.LoadConfig(opts.configPath)
}

func newClient(cfg *player.Config) *nhk.Client {
	return nhk.NewClient(nhk.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
}

// resolveArea fetches the station directory and looks up the requested
// area, accepting Japanese names and legacy numeric codes.
func resolveArea(ctx context.Context, client *nhk.Client, areaArg string) (*nhk.Config, *nhk.Area, error) {
	stations, err := client.FetchConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch station directory: %w", err)
	}
	area, err := stations.Area(nhk.NormalizeAreaName(areaArg))
	if err != nil {
		return nil, nil, err
	}
	return stations, area, nil
}

func runPlay(ctx context.Context, opts *cliOptions, areaArg, channelArg string) error {
	// The TUI owns the terminal; log lines would corrupt it.
	logging.Configure(opts.logLevel, io.Discard)

	cfg, err := loadPlayerConfig(opts)
	if err != nil {
		return err
	}
	client := newClient(cfg)

	stations, area, err := resolveArea(ctx, client, areaArg)
	if err != nil {
		return err
	}
	channel, err := nhk.ParseChannel(channelArg)
	if err != nil {
		return err
	}

	sig := player.NewSignal(player.Selection{
		Channel:     channel,
		PlaylistURL: area.PlaylistURL(channel),
	})
	sink := player.NewSink(cfg, player.NewSpeakerDevice())
	session := player.NewSession(cfg, client, transcode.NewAACDecoder(), sink, sig)

	playCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	playErr := make(chan error, 1)
	go func() { playErr <- player.Play(playCtx, session, sink) }()

	uiErr := tui.Run(playCtx, tui.Options{
		AreaName: area.AreaJP,
		Initial:  channel,
		PlaylistURL: func(c nhk.Channel) string {
			return area.PlaylistURL(c)
		},
		Signal: sig,
		NowPlaying: func(ctx context.Context, c nhk.Channel) (nhk.ProgramInfo, error) {
			program, err := client.FetchProgram(ctx, stations.ProgramNowURL(area.AreaKey))
			if err != nil {
				return nhk.ProgramInfo{}, err
			}
			return nhk.NowPlaying(program, c), nil
		},
		Started: sink.Started(),
	})

	cancel()
	if err := <-playErr; err != nil {
		return err
	}
	return uiErr
}

func runAreas(ctx context.Context, opts *cliOptions) error {
	logging.Configure(opts.logLevel, os.Stderr)

	cfg, err := loadPlayerConfig(opts)
	if err != nil {
		return err
	}
	stations, err := newClient(cfg).FetchConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch station directory: %w", err)
	}

	rows := make([]output.AreaRow, 0, len(stations.Areas))
	for _, area := range stations.Areas {
		rows = append(rows, output.AreaRow{Key: area.Key, Name: area.AreaJP})
	}
	return render(opts.format, rows)
}

func runStreams(ctx context.Context, opts *cliOptions) error {
	logging.Configure(opts.logLevel, os.Stderr)

	cfg, err := loadPlayerConfig(opts)
	if err != nil {
		return err
	}
	stations, err := newClient(cfg).FetchConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch station directory: %w", err)
	}

	var rows []output.StreamRow
	for _, area := range stations.Areas {
		for _, channel := range nhk.Channels {
			rows = append(rows, output.StreamRow{
				Area:    area.Key,
				Channel: channel.Key(),
				Station: channel.ShortName(),
				URL:     area.PlaylistURL(channel),
			})
		}
	}
	return render(opts.format, rows)
}

func runProgram(ctx context.Context, opts *cliOptions, areaArg string) error {
	logging.Configure(opts.logLevel, os.Stderr)

	cfg, err := loadPlayerConfig(opts)
	if err != nil {
		return err
	}
	client := newClient(cfg)

	stations, area, err := resolveArea(ctx, client, areaArg)
	if err != nil {
		return err
	}
	program, err := client.FetchProgram(ctx, stations.ProgramNowURL(area.AreaKey))
	if err != nil {
		return fmt.Errorf("failed to fetch program feed: %w", err)
	}

	rows := make([]output.ProgramRow, 0, len(nhk.Channels))
	for _, channel := range nhk.Channels {
		info := nhk.NowPlaying(program, channel)
		rows = append(rows, output.ProgramRow{
			Channel:     channel.Key(),
			Station:     channel.DisplayName(),
			Title:       info.Title,
			StartTime:   info.StartTime,
			Description: info.Description,
		})
	}
	return render(opts.format, rows)
}

func render(format string, rows any) error {
	formatter, err := output.NewFormatter(format)
	if err != nil {
		return err
	}
	out, err := formatter.Format(rows)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
