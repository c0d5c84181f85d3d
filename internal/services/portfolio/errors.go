package portfolio

import "errors"

var (
	// ErrNotFound is returned when a portfolio or asset does not exist.
	ErrNotFound = errors.New("portfolio not found")

	// ErrOwnershipMismatch is returned when a portfolio exists but belongs
	// to a different user.
	ErrOwnershipMismatch = errors.New("portfolio belongs to another user")

	// ErrAssetNotFound is returned when an asset does not exist in the portfolio.
	ErrAssetNotFound = errors.New("asset not found")
)
