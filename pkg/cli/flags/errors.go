package flags

import "errors"

var errUnknownFlag = errors.New("flag is not defined")
