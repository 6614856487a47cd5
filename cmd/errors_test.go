package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/Taskify/internal/app"
	"github.com/josephgoksu/Taskify/internal/task"
	"github.com/josephgoksu/Taskify/internal/util"
	"github.com/josephgoksu/Taskify/types"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("resolve: %w", util.ErrNotFound), "not_found"},
		{fmt.Errorf("resolve: %w", util.ErrAmbiguousID), "ambiguous_id"},
		{task.ErrEmptyTitle, "empty_title"},
		{task.ErrSubmitInProgress, "submit_in_progress"},
		{fmt.Errorf("move task: %w", app.ErrNoChange), "no_change"},
		{errors.New("disk on fire"), "error"},
	}
	for _, tt := range tests {
		if got := errorCode(tt.err); got != tt.want {
			t.Errorf("errorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestPrintCommandError(t *testing.T) {
	defer viper.Reset()

	t.Run("text", func(t *testing.T) {
		viper.Reset()
		var b bytes.Buffer
		printCommandError(&b, fmt.Errorf("toggle: %w", util.ErrAmbiguousID))

		output := b.String()
		if !strings.Contains(output, "Error: toggle:") {
			t.Errorf("printCommandError() output = %q, want an Error: line", output)
		}
		if !strings.Contains(output, "Type more characters") {
			t.Errorf("printCommandError() output = %q, want the ambiguous ID hint", output)
		}
	})

	t.Run("json", func(t *testing.T) {
		viper.Reset()
		viper.Set("json", true)
		var stdout, stderr bytes.Buffer
		rootCmd.SetOut(&stdout)
		defer rootCmd.SetOut(nil)

		printCommandError(&stderr, util.ErrNotFound)

		assert.Empty(t, stderr.String())
		var got types.CommandError
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "not_found", got.Code)
		assert.Equal(t, util.ErrNotFound.Error(), got.Message)
	})
}
