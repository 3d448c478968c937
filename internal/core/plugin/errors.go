package plugin

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoEntryPoint is returned when a module contains none of the entry point candidates
var ErrNoEntryPoint = errors.New("plugin has no entry point")

// LoadError means the entry point could not be parsed or evaluated
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("problem loading the plugin %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ContractError means the entry point loaded but lacks required hooks
type ContractError struct {
	Path    string
	Missing []Operation
}

func (e *ContractError) Error() string {
	names := make([]string, len(e.Missing))
	for i, op := range e.Missing {
		names[i] = fmt.Sprintf("'%s'", op)
	}
	verb := "method"
	if len(names) > 1 {
		verb = "methods"
	}
	return fmt.Sprintf("%s %s missing.", strings.Join(names, " and "), verb)
}

// HookError means the plugin's own hook failed. Message is shown to the user
// as-is; hook authors are responsible for making it readable.
type HookError struct {
	Operation Operation
	Message   string
	Err       error
}

func (e *HookError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("plugin %s hook failed", e.Operation)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// IsPreInvocation reports whether err stopped the lifecycle before a hook ran
func IsPreInvocation(err error) bool {
	var loadErr *LoadError
	var contractErr *ContractError
	return errors.As(err, &loadErr) || errors.As(err, &contractErr)
}
