/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "fmt"

// CommandError is the structured error printed by commands in --json mode
type CommandError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewCommandError creates a new structured command error
func NewCommandError(code string, message string, details map[string]any) *CommandError {
	return &CommandError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
