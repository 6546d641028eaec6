package prompts

import "errors"

// ErrInvalidStage indicates a stage value outside the known set.
var ErrInvalidStage = errors.New("stage must be structure or modify")
