// Package whois shells out to the system whois client and extracts
// organization and country information from its text response. Parsing is
// separate from the subprocess call so it can be exercised on raw text.
package whois

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds a whois subprocess call.
const DefaultTimeout = 10 * time.Second

// NotAvailable is reported for fields absent from the response.
const NotAvailable = "N/A"

// ErrNotInstalled is returned when no whois client is found in PATH.
var ErrNotInstalled = errors.New("whois client not found in PATH")

// Record holds the fields extracted from a whois response.
type Record struct {
	Organization string
	Country      string
}

// Registries disagree on field names; tried in order, first match wins.
var orgPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)OrgName:\s*(.*)`),
	regexp.MustCompile(`(?i)organisation:\s*(.*)`),
	regexp.MustCompile(`(?i)Org-name:\s*(.*)`),
	regexp.MustCompile(`(?i)descr:\s*(.*)`),
	regexp.MustCompile(`(?i)netname:\s*(.*)`),
}

var countryPattern = regexp.MustCompile(`(?i)Country:\s*(.*)`)

// Parse extracts organization and country from raw whois response text.
// Missing fields default to NotAvailable.
func Parse(text string) Record {
	rec := Record{Organization: NotAvailable, Country: NotAvailable}
	for _, re := range orgPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			rec.Organization = strings.TrimSpace(m[1])
			break
		}
	}
	if m := countryPattern.FindStringSubmatch(text); m != nil {
		rec.Country = strings.TrimSpace(m[1])
	}
	return rec
}

// Lookup runs the system whois client for addr and parses its output.
// The context bounds the subprocess; callers typically use DefaultTimeout.
func Lookup(ctx context.Context, addr string) (Record, error) {
	path, err := exec.LookPath("whois")
	if err != nil {
		return Record{}, ErrNotInstalled
	}
	out, err := exec.CommandContext(ctx, path, addr).Output()
	if err != nil {
		return Record{}, errors.Wrapf(err, "whois %s", addr)
	}
	return Parse(string(out)), nil
}
