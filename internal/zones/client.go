package zones

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	zonecontract "tempus/contracts/zones"
	"tempus/pkg/chrono"
	dErrors "tempus/pkg/domain-errors"
)

const resolverTimeout = 5 * time.Second

// ResolverClient queries the external zone resolver over HTTP using the
// contracts/zones wire types. Safe for concurrent use.
type ResolverClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewResolverClient creates a client for the resolver at baseURL.
func NewResolverClient(baseURL string) *ResolverClient {
	return &ResolverClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: resolverTimeout,
		},
	}
}

// Resolve asks the resolver for the zone's offset at the given instant.
// The returned offset is validated before use so a misbehaving resolver
// cannot smuggle an out-of-range offset into arithmetic.
func (c *ResolverClient) Resolve(ctx context.Context, name string, at time.Time) (Zone, error) {
	if name == "" {
		return Zone{}, dErrors.New(dErrors.CodeInvalidInput, "zone name is required")
	}

	lookupURL := c.baseURL + zonecontract.LookupPath(name) +
		"?" + zonecontract.InstantParam + "=" + url.QueryEscape(zonecontract.FormatInstant(at))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return Zone{}, dErrors.Wrap(err, dErrors.CodeInternal, "build zone lookup request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Zone{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "zone resolver unreachable")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var lookup zonecontract.LookupResponse
		if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
			return Zone{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "decode zone resolver response")
		}
		if _, err := chrono.NewZoneOffset(lookup.OffsetSeconds); err != nil {
			return Zone{}, dErrors.Wrapf(err, dErrors.CodeInternal,
				"zone resolver returned an invalid offset for %q", name)
		}
		return Zone{Name: lookup.Zone, OffsetSeconds: lookup.OffsetSeconds}, nil

	case http.StatusNotFound:
		return Zone{}, dErrors.Newf(dErrors.CodeNotFound, "unknown zone %q", name)

	case http.StatusBadRequest:
		return Zone{}, dErrors.Newf(dErrors.CodeInvalidInput, "zone resolver rejected %q", name)

	default:
		return Zone{}, dErrors.Newf(dErrors.CodeUnavailable,
			"zone resolver returned status %d", resp.StatusCode)
	}
}
