package services

import "fmt"

// SearchProviderError marks a failure of the web-search provider. It is
// the only request-time failure that aborts a whole request; everything
// downstream degrades to fewer results instead.
type SearchProviderError struct {
	Provider string
	Err      error
}

func (e *SearchProviderError) Error() string {
	return fmt.Sprintf("search provider %s failed: %v", e.Provider, e.Err)
}

func (e *SearchProviderError) Unwrap() error {
	return e.Err
}
