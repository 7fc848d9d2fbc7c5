package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortstep/internal/engine"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("E_UNKNOWN_ALGORITHM", "unknown algorithm", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, "E_UNKNOWN_ALGORITHM", resp.Error.Code)
	assert.Equal(t, "unknown algorithm", resp.Error.Message)
}

func TestOutputFormatter_JSONErrorWithDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	details := map[string]string{"file": "plan.cue", "line": "42"}
	err := formatter.Error("E202", "plan syntax error", details)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("3 file(s) valid")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "3 file(s) valid")
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error("E_UNKNOWN_ALGORITHM", "unknown algorithm", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E_UNKNOWN_ALGORITHM]")
	assert.Contains(t, buf.String(), "unknown algorithm")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"file": "plan.cue"}
	err := formatter.Error("E_UNKNOWN_ALGORITHM", "unknown algorithm", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E_UNKNOWN_ALGORITHM]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("Processing %s", "plan.cue")

			if tt.wantLog {
				assert.Contains(t, buf.String(), "Processing plan.cue")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestCLIResponse_JSON(t *testing.T) {
	resp := CLIResponse{
		Status: "ok",
		Data:   map[string]int{"count": 42},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded CLIResponse
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, "ok", decoded.Status)
}

func TestCLIError_JSON(t *testing.T) {
	cliErr := CLIError{
		Code:    "E301",
		Message: "validation failed",
		Details: []string{"name is required"},
	}

	data, err := json.Marshal(cliErr)
	require.NoError(t, err)

	var decoded CLIError
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, "E301", decoded.Code)
	assert.Equal(t, "validation failed", decoded.Message)
}

func TestOutputFormatter_VerboseLogUsesErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("loaded %d runs", 3)
	assert.Empty(t, out.String(), "diagnostics must not corrupt JSON output")
	assert.Contains(t, errOut.String(), "loaded 3 runs")
	assert.Equal(t, errOut, formatter.GetErrWriter())
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"command error", NewExitError(ExitCommandError, "database not found"), ExitCommandError},
		{"failure", NewExitError(ExitFailure, "replay failed"), ExitFailure},
		{"wrapped", fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "x")), ExitCommandError},
		{"plain error", errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	inner := errors.New("no such table")
	err := WrapExitError(ExitCommandError, "failed to open database", inner)
	assert.Equal(t, "failed to open database: no such table", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "bare", NewExitError(ExitFailure, "bare").Error())
}

func TestErrorCodeFor(t *testing.T) {
	_, err := engine.Lookup("Bogo Sort")
	assert.Equal(t, "E_UNKNOWN_ALGORITHM", errorCodeFor(err))

	_, err = engine.Start(engine.Merge, []float64{1, nanValue(), 2})
	assert.Equal(t, "E_UNORDERED_INPUT", errorCodeFor(err))

	assert.Equal(t, "E_COMMAND", errorCodeFor(errors.New("other")))
}
