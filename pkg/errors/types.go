package errors

import (
	"fmt"
	"net/http"
)

// FileNotFound represents when we were unable to access a file
// because the path didn't exist.
type FileNotFound struct {
	Path string
}

func (err FileNotFound) Error() string {
	return fmt.Sprintf("%q does not exist", err.Path)
}

// ConfigError is returned when the sync rules can't be loaded or written.
type ConfigError struct {
	Path string
	Err  error
}

func (err ConfigError) Error() string {
	return fmt.Sprintf("config %q: %s", err.Path, err.Err)
}

func (err ConfigError) Unwrap() error {
	return err.Err
}

// FriendlyMessage implements the friendly interface.
func (err ConfigError) FriendlyMessage() string {
	return fmt.Sprintf("The configuration file %q could not be used.\n%s",
		err.Path, GetPrintableMessage(err.Err))
}

// AuthError is returned when the API key is missing or was rejected by the
// remote service. It is always fatal.
type AuthError struct {
	// Status is the HTTP status returned by the service. It is zero when no
	// request was made because the key was missing.
	Status  int
	Message string
}

func (err AuthError) Error() string {
	if err.Status == 0 {
		return fmt.Sprintf("authentication failed: %s", err.Message)
	}
	return fmt.Sprintf("authentication failed (%d): %s", err.Status, err.Message)
}

// FriendlyMessage implements the friendly interface.
func (err AuthError) FriendlyMessage() string {
	if err.Status == 0 {
		return "No API key was provided.\n" +
			"Set the BOLT_API_KEY environment variable or pass --api-key."
	}
	return fmt.Sprintf("The API key was rejected by the server (%s).\n"+
		"Check the value of BOLT_API_KEY or --api-key.",
		http.StatusText(err.Status))
}

// RemoteError is returned when a request to the remote project fails. A zero
// Status means the request never got a response.
type RemoteError struct {
	Status  int
	Message string
	Err     error
}

func (err RemoteError) Error() string {
	if err.Status == 0 {
		return fmt.Sprintf("remote request failed: %s", err.Message)
	}
	return fmt.Sprintf("remote responded with %d: %s", err.Status, err.Message)
}

func (err RemoteError) Unwrap() error {
	return err.Err
}

// NotFound returns whether the remote project or file doesn't exist.
func (err RemoteError) NotFound() bool {
	return err.Status == http.StatusNotFound
}

// DecodeError is returned when contents can't be interpreted as UTF-8 text.
// Callers skip the file rather than surfacing the error.
type DecodeError struct {
	Path string
}

func (err DecodeError) Error() string {
	return fmt.Sprintf("%q is not UTF-8 text", err.Path)
}

// FilesystemError is returned when a local file operation fails.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (err FilesystemError) Error() string {
	return fmt.Sprintf("%s %q: %s", err.Op, err.Path, err.Err)
}

func (err FilesystemError) Unwrap() error {
	return err.Err
}
