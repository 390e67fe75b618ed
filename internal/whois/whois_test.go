package whois

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const arinResponse = `
NetRange:       8.8.8.0 - 8.8.8.255
CIDR:           8.8.8.0/24
NetName:        GOGL
Organization:   Google LLC (GOGL)
OrgName:        Google LLC
OrgId:          GOGL
Address:        1600 Amphitheatre Parkway
City:           Mountain View
Country:        US
`

const ripeResponse = `
inetnum:        193.0.0.0 - 193.0.7.255
netname:        RIPE-NCC
descr:          RIPE Network Coordination Centre
country:        NL
organisation:   ORG-RIEN1-RIPE
`

func TestParseARIN(t *testing.T) {
	rec := Parse(arinResponse)
	assert.Equal(t, "Google LLC", rec.Organization)
	assert.Equal(t, "US", rec.Country)
}

func TestParseRIPE(t *testing.T) {
	// No OrgName field; organisation outranks descr and netname.
	rec := Parse(ripeResponse)
	assert.Equal(t, "ORG-RIEN1-RIPE", rec.Organization)
	assert.Equal(t, "NL", rec.Country)
}

func TestParseFallsBackToDescr(t *testing.T) {
	rec := Parse("descr: Example Carrier\nnetname: EXAMPLE-NET\n")
	assert.Equal(t, "Example Carrier", rec.Organization)
	assert.Equal(t, NotAvailable, rec.Country)
}

func TestParseNetnameLast(t *testing.T) {
	rec := Parse("netname: EXAMPLE-NET\n")
	assert.Equal(t, "EXAMPLE-NET", rec.Organization)
}

func TestParseEmpty(t *testing.T) {
	rec := Parse("no matching fields here")
	assert.Equal(t, NotAvailable, rec.Organization)
	assert.Equal(t, NotAvailable, rec.Country)
}

func TestParseCaseInsensitive(t *testing.T) {
	rec := Parse("ORGNAME: Example Org\nCOUNTRY: DE\n")
	assert.Equal(t, "Example Org", rec.Organization)
	assert.Equal(t, "DE", rec.Country)
}
