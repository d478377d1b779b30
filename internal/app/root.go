//go:build linux

// Package app is the procfs command line. Each subcommand reads one /proc
// source through internal/proc and prints it as a table or as JSON.
package app

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pranshuparmar/procfs/internal/config"
	"github.com/pranshuparmar/procfs/internal/llog"
	"github.com/pranshuparmar/procfs/internal/output"
	"github.com/pranshuparmar/procfs/internal/proc"
	"github.com/pranshuparmar/procfs/internal/procfs"
)

var (
	version   = ""
	commit    = ""
	buildDate = ""
)

// SetVersionBuildCommitString records the values injected by -ldflags.
func SetVersionBuildCommitString(v, c, d string) {
	version = v
	commit = c
	buildDate = d
}

func versionString() string {
	v := version
	if v == "" {
		v = "dev"
	}
	if commit != "" {
		v += " (" + commit
		if buildDate != "" {
			v += ", " + buildDate
		}
		v += ")"
	}
	return v
}

type options struct {
	configPath string
	root       string
	maxRead    int
	json       bool
	debug      bool
	noColor    bool
}

// session is the state shared by every subcommand once flags are parsed.
type session struct {
	opts options
	cfg  *config.Config
	fsys proc.FS
	log  *llog.Logger
}

func newRootCmd() *cobra.Command {
	// version skips setup, so the logger must be usable before it runs
	s := &session{log: llog.Discard()}
	cmd := &cobra.Command{
		Use:           "procfs",
		Short:         "Inspect processes and the kernel through /proc",
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.setup(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&s.opts.configPath, "config", "", "TOML config file")
	f.StringVar(&s.opts.root, "root", "", "procfs mount point (default "+config.DefaultRoot+")")
	f.IntVar(&s.opts.maxRead, "max-read", 0, "limit for whole-file reads in bytes")
	f.BoolVar(&s.opts.json, "json", false, "print JSON instead of a table")
	f.BoolVar(&s.opts.debug, "debug", false, "log debug messages to stderr")
	f.BoolVar(&s.opts.noColor, "no-color", false, "disable colors")

	cmd.AddCommand(
		newPIDsCmd(s),
		newPsCmd(s),
		newTIDsCmd(s),
		newStatCmd(s),
		newStatusCmd(s),
		newIOCmd(s),
		newUsageCmd(s),
		newMapsCmd(s),
		newSMapsCmd(s),
		newFDsCmd(s),
		newMountsCmd(s),
		newCgroupsCmd(s),
		newNamespacesCmd(s),
		newIDMapCmd(s),
		newTreeCmd(s),
		newFindCmd(s),
		newInspectCmd(s),
		newSocketsCmd(s),
		newPortsCmd(s),
		newNetDevCmd(s),
		newRoutesCmd(s),
		newMeminfoCmd(s),
		newModulesCmd(s),
		newLoadAvgCmd(s),
		newUptimeCmd(s),
		newProcStatCmd(s),
		newControllersCmd(s),
		newBrowseCmd(s),
		newVersionCmd(),
	)
	return cmd
}

// setup layers the config file and environment under the command line flags.
func (s *session) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(s.opts.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = s.opts.root
	}
	if flags.Changed("max-read") {
		cfg.MaxReadBytes = s.opts.maxRead
	}
	if flags.Changed("debug") {
		cfg.Debug = s.opts.debug
	}
	if s.opts.noColor {
		cfg.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.cfg = cfg
	s.log = llog.New(cmd.ErrOrStderr(), "procfs: ", cfg.Debug)
	s.fsys = proc.New(cfg.Root, cfg.MaxReadBytes)
	s.log.Debugf("root=%s max_read=%d color=%t", cfg.Root, cfg.MaxReadBytes, cfg.Color)
	if s.log.DebugEnabled() {
		var set []string
		flags.Visit(func(f *pflag.Flag) {
			set = append(set, "--"+f.Name+"="+f.Value.String())
		})
		s.log.Debugln("flags:", strings.Join(set, " "))
	}
	return nil
}

// emit prints v as JSON when --json is set, otherwise the rows as a table.
func (s *session) emit(w io.Writer, v any, headers []string, rows [][]string) error {
	if s.opts.json {
		out, err := output.ToJSON(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}
	return output.RenderTable(w, headers, rows, output.TableOptions{Plain: !s.cfg.Color})
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		msg := err.Error()
		if kind := classify(err); kind != "" {
			msg = kind + ": " + msg
		}
		fmt.Fprintln(stderr, "Error:", msg)
		return 1
	}
	return 0
}

func classify(err error) string {
	switch {
	case procfs.IsParseError(err):
		return "parse error"
	case procfs.IsOSError(err):
		return "os error"
	}
	return ""
}

func parsePID(arg string) (int, error) {
	pid, err := strconv.Atoi(arg)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid %q", arg)
	}
	return pid, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// no /proc access needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "procfs", versionString())
			return err
		},
	}
}
