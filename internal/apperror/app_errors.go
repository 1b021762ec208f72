package apperror

import "errors"

var (
	ErrModuleNotLive   = errors.New("kxo module is not live")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrAttrUnavailable = errors.New("attribute file is unavailable")
	ErrGameNotFound    = errors.New("game not found")
)
