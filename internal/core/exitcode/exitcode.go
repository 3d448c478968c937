package exitcode

import "fmt"

// Code is a process exit status. Values are part of the scripting contract
// and must not be renumbered.
type Code int

const (
	OK                 Code = 0
	Generic            Code = 1
	PluginName         Code = 2
	PluginInstall      Code = 3
	PluginInvalid      Code = 4
	NotIgniteProject   Code = 5
	PluginNotInstalled Code = 6
	PluginRemove       Code = 7
)

// String returns the symbolic name of the code
func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case Generic:
		return "GENERIC"
	case PluginName:
		return "PLUGIN_NAME"
	case PluginInstall:
		return "PLUGIN_INSTALL"
	case PluginInvalid:
		return "PLUGIN_INVALID"
	case NotIgniteProject:
		return "NOT_IGNITE_PROJECT"
	case PluginNotInstalled:
		return "PLUGIN_NOT_INSTALLED"
	case PluginRemove:
		return "PLUGIN_REMOVE"
	default:
		return fmt.Sprintf("EXIT_%d", int(c))
	}
}

// Error is a fatal condition that terminates the process with Code
type Error struct {
	Code    Code
	Message string
	Err     error
}

// New creates an exit error with a human readable message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an exit error that keeps the underlying cause
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Code.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the numeric status for os.Exit
func (e *Error) ExitCode() int {
	return int(e.Code)
}
