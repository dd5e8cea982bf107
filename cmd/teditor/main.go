package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"teditor/buffer"
	"teditor/config"
	"teditor/editor"
	"teditor/terminal"
	"teditor/watch"
)

var (
	cfgPathFlag  string
	debugFlag    bool
	tabWidthFlag int
	watchFlag    bool
	noStatusFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "teditor [file]",
	Short: "teditor is a minimal terminal text viewer",
	Long: "teditor renders a file into the terminal viewport and navigates it\n" +
		"with arrow or vi keys. Ctrl+Q quits and restores the terminal.",
	Args:          cobra.MaximumNArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&cfgPathFlag, "config", "", "config file (default: user config dir)")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "write a debug log file")
	rootCmd.Flags().IntVar(&tabWidthFlag, "tab-width", 0, "tab stop width (overrides config)")
	rootCmd.Flags().BoolVar(&watchFlag, "watch", false, "reload the file when it changes on disk")
	rootCmd.Flags().BoolVar(&noStatusFlag, "no-status", false, "hide the status bar")
}

func main() {
	// Terminal must come back in a sane state even if the viewer
	// crashes; escape sequences and termios reset, then the stack trace
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTEDITOR CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPathFlag)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugFlag
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = watchFlag
	}
	if cmd.Flags().Changed("no-status") {
		cfg.StatusBar = !noStatusFlag
	}
	if cmd.Flags().Changed("tab-width") {
		cfg.TabWidth = tabWidthFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	var path string
	buf := buffer.Load(nil, cfg.TabWidth)
	if len(args) == 1 {
		path = args[0]
		buf, err = buffer.LoadFile(path, cfg.TabWidth)
		if err != nil {
			return err
		}
	}

	sess := terminal.NewSession()
	if err := sess.Open(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer sess.Close()

	ed, err := editor.New(sess, buf, editor.Config{
		ViKeys:    cfg.ViKeys,
		StatusBar: cfg.StatusBar,
		FileName:  path,
	}, logger)
	if err != nil {
		return err
	}

	if cfg.Watch && path != "" {
		w, werr := watch.New(path)
		if werr != nil {
			logger.Warn("file watch unavailable", "err", werr)
		} else {
			defer w.Close()
			ed.SetReload(w.Changes(), func() (*buffer.Buffer, error) {
				return buffer.LoadFile(path, cfg.TabWidth)
			})
		}
	}

	logger.Debug("session start", "file", path, "lines", buf.LineCount())
	return ed.Run()
}
