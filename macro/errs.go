package macro

import "errors"

var ErrUnknownMacro = errors.New("unknown macro")
