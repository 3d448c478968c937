package lua

import (
	"errors"
	"regexp"

	lua "github.com/yuin/gopher-lua"
)

// positionPrefix matches the "chunk:line: " prefix error() adds to messages
var positionPrefix = regexp.MustCompile(`^[^\n]*?:\d+: `)

// errorMessage returns the message a plugin raised, without position prefix
// or stack trace
func errorMessage(err error) string {
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil && apiErr.Object != lua.LNil {
		return positionPrefix.ReplaceAllString(apiErr.Object.String(), "")
	}
	return err.Error()
}
