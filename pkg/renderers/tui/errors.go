package tui

import "errors"

// ErrAborted is returned when the applicant interrupts a prompt.
var ErrAborted = errors.New("tui: aborted")

// ErrNoSelection is returned when a pick list comes back without a usable
// option.
var ErrNoSelection = errors.New("tui: no option selected")
