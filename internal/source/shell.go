//go:build linux

package source

import "strings"

var shells = map[string]bool{
	"bash": true,
	"zsh":  true,
	"sh":   true,
	"fish": true,
	"csh":  true,
	"tcsh": true,
	"ksh":  true,
	"dash": true,
	"ash":  true,
}

// isShell matches comm values, including login shells shown as "-bash".
func isShell(comm string) bool {
	return shells[strings.TrimPrefix(comm, "-")]
}
