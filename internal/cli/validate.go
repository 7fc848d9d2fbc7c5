package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/sortstep/internal/harness"
	"github.com/roach88/sortstep/internal/workload"
)

// Error codes for validation output.
const (
	ErrCodeGeneric     = "E000"
	ErrCodeScenario    = "E301" // scenario file rejected
	ErrCodeUnsupported = "E302" // file type is neither plan nor scenario
)

// FileError is one rejected file.
type FileError struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool        `json:"valid"`
	Files  int         `json:"files"`
	Errors []FileError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate benchmark plans and scenarios",
		Long: `Check CUE benchmark plans (.cue) and harness scenarios (.yaml, .yml)
without running anything. Directories are searched recursively.

Exit codes:
  0 - Every file is valid
  1 - At least one file was rejected
  2 - Command error (path not found, etc.)

Examples:
  sortstep validate ./plans/quick_vs_merge.cue
  sortstep validate ./testdata/scenarios ./plans --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	files, err := collectFiles(paths)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to collect files", err)
	}
	formatter.VerboseLog("Found %d file(s)", len(files))

	result := ValidationResult{Valid: true, Files: len(files)}
	for _, f := range files {
		formatter.VerboseLog("Validating %s", f)
		if fe := validateFile(f); fe != nil {
			result.Valid = false
			result.Errors = append(result.Errors, *fe)
		}
	}

	if result.Valid {
		if opts.Format == "json" {
			return formatter.Success(result)
		}
		return formatter.Success(fmt.Sprintf("✓ %d file(s) valid", result.Files))
	}

	if opts.Format == "json" {
		if err := formatter.Error("E_INVALID", fmt.Sprintf("%d file(s) rejected", len(result.Errors)), result); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, fe := range result.Errors {
			if fe.Line > 0 {
				fmt.Fprintf(w, "✗ %s:%d [%s] %s\n", fe.File, fe.Line, fe.Code, fe.Message)
			} else {
				fmt.Fprintf(w, "✗ %s [%s] %s\n", fe.File, fe.Code, fe.Message)
			}
		}
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) rejected", len(result.Errors)))
}

// collectFiles expands directories into their plan and scenario files.
// Files named explicitly are kept whatever their extension.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch filepath.Ext(path) {
			case ".cue", ".yaml", ".yml":
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// validateFile loads one file with the loader its extension selects.
func validateFile(path string) *FileError {
	switch filepath.Ext(path) {
	case ".cue":
		_, err := workload.Load(path)
		if err == nil {
			return nil
		}
		var le *workload.LoadError
		if errors.As(err, &le) {
			fe := &FileError{File: path, Code: le.Code, Message: le.Message}
			if le.Pos.IsValid() {
				fe.Line = le.Pos.Line()
			}
			return fe
		}
		return &FileError{File: path, Code: ErrCodeGeneric, Message: err.Error()}

	case ".yaml", ".yml":
		if _, err := harness.LoadScenario(path); err != nil {
			return &FileError{File: path, Code: ErrCodeScenario, Message: err.Error()}
		}
		return nil

	default:
		return &FileError{File: path, Code: ErrCodeUnsupported, Message: "not a plan (.cue) or scenario (.yaml)"}
	}
}
