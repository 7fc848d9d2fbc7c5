package cli

import (
	"fmt"
	"os"

	"github.com/roach88/sortstep/internal/store"
)

// openExisting opens a run log that must already exist. Reading commands
// use it so a mistyped path is an error rather than a fresh empty file.
func openExisting(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", path))
		}
		return nil, WrapExitError(ExitCommandError, "failed to stat database", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}
