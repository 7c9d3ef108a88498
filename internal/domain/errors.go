package domain

import "errors"

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// FeedError represents a market-data transport error that may be retriable
type FeedError struct {
	Op        string // Operation that failed (e.g., "dial", "read", "subscribe")
	Err       error  // Underlying error
	Retriable bool   // Whether this error is retriable
}

func (e *FeedError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *FeedError) IsRetriable() bool {
	return e.Retriable
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// NewFeedError creates a new retriable feed error
func NewFeedError(op string, err error) *FeedError {
	return &FeedError{Op: op, Err: err, Retriable: true}
}

// NewFatalFeedError creates a non-retriable feed error
func NewFatalFeedError(op string, err error) *FeedError {
	return &FeedError{Op: op, Err: err, Retriable: false}
}

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) IsRetriable() bool {
	return false
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	// ErrConnectionFailed is returned when the feed connection fails. It's usually retriable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnknownOrder is returned when a venue callback references an order that was never sent. Not retriable.
	ErrUnknownOrder = errors.New("unknown order")

	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
