package audit

import "errors"

var ErrIDTaken = errors.New("audit record id already taken")
