package domain

import "errors"

// ErrStateNotFound is returned when no state is stored under a key.
var ErrStateNotFound = errors.New("state not found")

// ErrInvalidStageTransition is returned when the workflow cannot move to the requested stage.
var ErrInvalidStageTransition = errors.New("invalid stage transition")

// ErrInvalidViewMode is returned for a view mode outside desktop, tablet and mobile.
var ErrInvalidViewMode = errors.New("invalid view mode")

// ErrUnknownCommand is returned when a command name or value is not recognized.
var ErrUnknownCommand = errors.New("unknown command")

// ErrTemplateNotFound is returned when a template library has no template with the requested id.
var ErrTemplateNotFound = errors.New("template not found")

// ErrInvalidPayload is returned when a command payload does not match the command fields.
var ErrInvalidPayload = errors.New("invalid command payload")
