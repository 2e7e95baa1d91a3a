package anilist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RequestError describes a failed GraphQL request: an HTTP-level failure,
// a GraphQL error array, or a rate limit signal.
type RequestError struct {
	Status      int
	Messages    []string
	RateLimited bool
	RetryAfter  time.Duration
}

func (e *RequestError) Error() string {
	switch {
	case e.RateLimited:
		return fmt.Sprintf("rate limited (status %d, retry after %s)", e.Status, e.RetryAfter)
	case len(e.Messages) > 0:
		return "GraphQL error: " + strings.Join(e.Messages, "; ")
	default:
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
}

// GraphQLError reports whether the failure came from the response's
// GraphQL error array rather than the transport.
func (e *RequestError) GraphQLError() bool {
	return len(e.Messages) > 0 && !e.RateLimited
}

// ServerError reports whether the failure was a 5xx-class response.
func (e *RequestError) ServerError() bool {
	return e.Status >= 500
}

var rateLimitMessage = regexp.MustCompile(`(?i)rate limit.*?(\d+)\s*second`)

// parseRateLimitMessage extracts a wait duration from an error message of
// the form "... rate limit ... N seconds ...".
func parseRateLimitMessage(msg string) (time.Duration, bool) {
	m := rateLimitMessage.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	secs, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}
