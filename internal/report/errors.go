package report

import "errors"

var ErrInvalidRange = errors.New("from date is after until date")
