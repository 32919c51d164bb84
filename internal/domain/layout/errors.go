package layout

import "errors"

// Sentinel kinds for preset registration errors. Both indicate a programming
// error and are expected to abort startup.
var (
	ErrInvalidPreset   = errors.New("invalid layout preset")
	ErrDuplicatePreset = errors.New("duplicate layout preset")
)
