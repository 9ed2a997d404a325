// internal/errors/errors.go
package errors

import "fmt"

// AuthenticationError is returned when the API rejects the credential (HTTP
// 401). It is fatal and non-retryable: the operator needs to rotate the token,
// not rerun the pipeline.
type AuthenticationError struct {
	Endpoint string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("credential rejected (401) for %s: token is invalid or expired", e.Endpoint)
}

// PrivateRepoError is returned when a public-only repository listing
// nonetheless contains a private repository. It indicates the credential's
// scope no longer matches the caller's security assumption; continuing would
// leak private metadata into a public-facing snapshot.
type PrivateRepoError struct {
	Repo string
}

func (e *PrivateRepoError) Error() string {
	return fmt.Sprintf("private repository %q returned by a public-only listing; check the token's scopes", e.Repo)
}

// InvalidIssueTypeError is returned when the issue/PR collector is given a
// mode string that matches neither "issue" nor "pull".
type InvalidIssueTypeError struct {
	Mode string
}

func (e *InvalidIssueTypeError) Error() string {
	return fmt.Sprintf("invalid issue type %q: must contain either 'issue' or 'pull'", e.Mode)
}

// PageError is returned in strict mode when a page request fails with a
// non-retryable, non-auth status. In the default lenient mode the failure is
// logged and the page skipped instead.
type PageError struct {
	URL        string
	StatusCode int
}

func (e *PageError) Error() string {
	return fmt.Sprintf("unable to fetch page %s: status %d", e.URL, e.StatusCode)
}
