//go:build linux

package app

import (
	"github.com/spf13/cobra"

	"github.com/pranshuparmar/procfs/internal/tui"
)

func newBrowseCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse processes and ports interactively",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s.log.Debugf("starting tui on %s", s.fsys.Root())
			return tui.Start(s.fsys, versionString())
		},
	}
}
