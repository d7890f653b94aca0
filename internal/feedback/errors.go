package feedback

import "errors"

var ErrEmptyMessage = errors.New("feedback message is required")
