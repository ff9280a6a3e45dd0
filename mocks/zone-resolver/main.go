// Mock zone resolver for local development and e2e runs. Serves a small
// deterministic zone table over the contracts/zones wire format, with a
// crude month-based daylight saving rule so the instant parameter
// actually changes answers. Not a real timezone database.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	zonecontract "tempus/contracts/zones"
)

// zoneRule describes one mock zone: a standard offset and, for zones
// with daylight saving, a summer offset applied April through October.
type zoneRule struct {
	standardSeconds int
	summerSeconds   int
	hasSummer       bool
	aliases         []string
}

var zoneTable = map[string]zoneRule{
	"UTC":              {standardSeconds: 0, aliases: []string{"Etc/UTC", "Z"}},
	"Europe/Paris":     {standardSeconds: 3600, summerSeconds: 7200, hasSummer: true},
	"Europe/London":    {standardSeconds: 0, summerSeconds: 3600, hasSummer: true},
	"America/New_York": {standardSeconds: -18000, summerSeconds: -14400, hasSummer: true},
	"Asia/Tokyo":       {standardSeconds: 32400},
	"Asia/Kolkata":     {standardSeconds: 19800},
	"Australia/Eucla":  {standardSeconds: 31500},
}

// aliasIndex maps every alias back to its canonical name.
var aliasIndex = func() map[string]string {
	index := make(map[string]string)
	for name, rule := range zoneTable {
		for _, alias := range rule.aliases {
			index[alias] = name
		}
	}
	return index
}()

func (r zoneRule) offsetAt(at time.Time) int {
	if r.hasSummer && at.UTC().Month() >= time.April && at.UTC().Month() <= time.October {
		return r.summerSeconds
	}
	return r.standardSeconds
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, zonecontract.ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}

func handleList(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(zoneTable))
	for name := range zoneTable {
		names = append(names, name)
	}
	sort.Strings(names)
	writeJSON(w, http.StatusOK, zonecontract.ListResponse{Zones: names})
}

func handleLookup(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/zones/")
	if name == "" {
		writeError(w, http.StatusBadRequest, zonecontract.ErrorInvalidRequest, "zone name is required")
		return
	}

	at := time.Now()
	if raw := r.URL.Query().Get(zonecontract.InstantParam); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, zonecontract.ErrorInvalidRequest, "instant must be RFC 3339")
			return
		}
		at = parsed
	}

	canonical := name
	if target, ok := aliasIndex[name]; ok {
		canonical = target
	}
	rule, ok := zoneTable[canonical]
	if !ok {
		writeError(w, http.StatusNotFound, zonecontract.ErrorZoneNotFound, "zone "+name+" is not served")
		return
	}

	writeJSON(w, http.StatusOK, zonecontract.LookupResponse{
		Zone:          canonical,
		OffsetSeconds: rule.offsetAt(at),
		Aliases:       rule.aliases,
	})
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8091"
	}

	latency := time.Duration(0)
	if raw := os.Getenv("MOCK_LATENCY_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil {
			latency = time.Duration(ms) * time.Millisecond
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /zones", handleList)
	mux.HandleFunc("GET /zones/", func(w http.ResponseWriter, r *http.Request) {
		if latency > 0 {
			time.Sleep(latency)
		}
		handleLookup(w, r)
	})

	log.Printf("mock zone resolver listening on :%s (latency %s)", port, latency)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
