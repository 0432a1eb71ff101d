package property

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrLoadFailed       = errors.New("failed to load property")
	ErrReviewsFailed    = errors.New("failed to load reviews")
)

// Messages shown on the property page.
const (
	MsgNotFound      = "Property not found"
	MsgLoadFailed    = "Failed to load property details. Please try again later."
	MsgReviewsFailed = "Failed to load reviews. Please try again later."
)

const (
	homePath          = "/"
	defaultShownCount = 3
)
