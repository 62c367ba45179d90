package remote

//go:generate mockery -name Client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"

	"github.com/sidkik/bolt-sync/pkg/errors"
	"github.com/sidkik/bolt-sync/pkg/version"
)

// DefaultBaseURL is the API server used when no other URL is configured.
const DefaultBaseURL = "https://stackblitz.com"

// notFoundErrTemplate is shown when the project doesn't exist, or isn't
// visible to the API key.
const notFoundErrTemplate = "The remote project at %s could not be found.\n" +
	"Check the project ID, and that the API key has access to it."

// fileType is the `type` of appFiles entries that hold file contents. Every
// other type (e.g. "folder") is treated as a directory.
const fileType = "file"

// Entry describes a single path in the remote project.
type Entry struct {
	Path        string
	IsBinary    bool
	IsDirectory bool
}

// Client provides access to the file tree of a remote project.
type Client interface {
	// ListFiles returns every entry in the project, sorted by path.
	ListFiles(ctx context.Context, projectID string) ([]Entry, error)

	// ReadFile returns the contents of a text file as of the most recent
	// listing. It returns a DecodeError if the file isn't UTF-8 text.
	ReadFile(ctx context.Context, projectID, path string) (string, error)

	// FetchFile is like ReadFile, but always requests the current state of
	// the project from the server.
	FetchFile(ctx context.Context, projectID, path string) (string, error)

	// WriteFile creates or replaces the contents of a file.
	WriteFile(ctx context.Context, projectID, path, contents string) error
}

// FilterFiles drops binary and directory entries, leaving the files that can
// be compared as text.
func FilterFiles(entries []Entry) []Entry {
	var files []Entry
	for _, entry := range entries {
		if entry.IsBinary || entry.IsDirectory {
			continue
		}
		files = append(files, entry)
	}
	return files
}

type appFile struct {
	Type     string          `json:"type"`
	IsBinary bool            `json:"isBinary"`
	Contents json.RawMessage `json:"contents"`
}

// appFiles is kept in its raw form so that fields we don't know about are
// sent back untouched when the project is patched.
type appFiles map[string]json.RawMessage

type projectDocument struct {
	Project struct {
		AppFiles appFiles `json:"appFiles"`
	} `json:"project"`
}

type patchDocument struct {
	Project patchProject `json:"project"`
}

type patchProject struct {
	AppFiles appFiles `json:"appFiles"`
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	clock      clockwork.Clock

	// projects caches the most recently fetched files of each project.
	projects map[string]appFiles
}

// New creates a Client that talks to the project API at baseURL, using apiKey
// as the bearer token.
func New(baseURL, apiKey string) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		clock:      clockwork.NewRealClock(),
		projects:   map[string]appFiles{},
	}
}

func (c *client) ListFiles(ctx context.Context, projectID string) ([]Entry, error) {
	files, err := c.fetch(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for path, raw := range files {
		var f appFile
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, errors.RemoteError{Status: http.StatusOK,
				Message: fmt.Sprintf("malformed entry for %q: %s", path, err), Err: err}
		}

		entries = append(entries, Entry{
			Path:        path,
			IsBinary:    f.IsBinary,
			IsDirectory: f.Type != fileType,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

func (c *client) ReadFile(ctx context.Context, projectID, path string) (string, error) {
	files, ok := c.projects[projectID]
	if !ok {
		var err error
		if files, err = c.fetch(ctx, projectID); err != nil {
			return "", err
		}
	}
	return readText(files, projectID, path)
}

func (c *client) FetchFile(ctx context.Context, projectID, path string) (string, error) {
	files, err := c.fetch(ctx, projectID)
	if err != nil {
		return "", err
	}
	return readText(files, projectID, path)
}

func readText(files appFiles, projectID, path string) (string, error) {
	raw, ok := files[path]
	if !ok {
		return "", errors.RemoteError{Status: http.StatusNotFound,
			Message: fmt.Sprintf("file %q not found in project %q", path, projectID)}
	}

	var f appFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return "", errors.RemoteError{Status: http.StatusOK,
			Message: fmt.Sprintf("malformed entry for %q: %s", path, err), Err: err}
	}

	if f.Type != fileType {
		return "", errors.RemoteError{Status: http.StatusNotFound,
			Message: fmt.Sprintf("%q is not a file", path)}
	}

	if f.IsBinary {
		return "", errors.DecodeError{Path: path}
	}

	var contents string
	if len(f.Contents) != 0 {
		if err := json.Unmarshal(f.Contents, &contents); err != nil {
			return "", errors.DecodeError{Path: path}
		}
	}

	if !utf8.ValidString(contents) {
		return "", errors.DecodeError{Path: path}
	}
	return contents, nil
}

func (c *client) WriteFile(ctx context.Context, projectID, path, contents string) error {
	// Always start from the latest state so that we don't revert changes made
	// to other files since the project was listed.
	files, err := c.fetch(ctx, projectID)
	if err != nil {
		return errors.WithContext(err, "get current files")
	}

	entry := map[string]interface{}{}
	if raw, ok := files[path]; ok {
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		if err := decoder.Decode(&entry); err != nil {
			return errors.RemoteError{Status: http.StatusOK,
				Message: fmt.Sprintf("malformed entry for %q: %s", path, err), Err: err}
		}
	}

	entry["type"] = fileType
	entry["isBinary"] = false
	entry["contents"] = contents
	entry["lastModified"] = c.clock.Now().Unix()

	encoded, err := json.Marshal(entry)
	if err != nil {
		return errors.WithContext(err, "marshal file")
	}

	updated := appFiles{}
	for k, v := range files {
		updated[k] = v
	}
	updated[path] = encoded

	body := patchDocument{Project: patchProject{AppFiles: updated}}
	if err := c.do(ctx, http.MethodPatch, projectPath(projectID), body, nil); err != nil {
		return err
	}

	c.projects[projectID] = updated
	return nil
}

func (c *client) fetch(ctx context.Context, projectID string) (appFiles, error) {
	var doc projectDocument
	if err := c.do(ctx, http.MethodGet, projectPath(projectID), nil, &doc); err != nil {
		return nil, err
	}

	files := doc.Project.AppFiles
	if files == nil {
		files = appFiles{}
	}
	c.projects[projectID] = files
	return files, nil
}

// do sends an authenticated request and decodes the JSON response into out.
func (c *client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return errors.WithContext(err, "create payload")
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.WithContext(err, "new request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.RemoteError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.RemoteError{Status: resp.StatusCode,
			Message: fmt.Sprintf("read response: %s", err), Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.AuthError{Status: resp.StatusCode, Message: responseMessage(respBytes)}
	case resp.StatusCode == http.StatusNotFound:
		return errors.RemoteError{Status: resp.StatusCode,
			Message: fmt.Sprintf("%s not found: %s", path, responseMessage(respBytes)),
			Err:     errors.NewFriendlyError(notFoundErrTemplate, c.baseURL+path)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return errors.RemoteError{Status: resp.StatusCode, Message: responseMessage(respBytes)}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return errors.RemoteError{Status: resp.StatusCode,
			Message: fmt.Sprintf("malformed response: %s", err), Err: err}
	}
	return nil
}

func projectPath(projectID string) string {
	return "/api/projects/" + url.PathEscape(projectID)
}

// responseMessage extracts a short message from an error response. The API
// sometimes responds with `{"error": "..."}`, and sometimes with plain text.
func responseMessage(body []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty response"
	}
	return msg
}
