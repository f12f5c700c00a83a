// Package contract provides contract test assertions for ricemill importer
// plugins.
package contract

import (
	"fmt"
	"strings"

	domainPlugin "github.com/felixgeelhaar/ricemill/pkg/domain/plugin"
)

// Result captures the outcome of a single contract assertion.
type Result struct {
	Name    string
	Passed  bool
	Message string
}

// AssertInitSuccess verifies that Init succeeds with valid config.
func AssertInitSuccess(importer domainPlugin.Importer) Result {
	err := importer.Init(map[string]string{"source": "test"})
	if err != nil {
		return Result{Name: "InitSuccess", Passed: false, Message: fmt.Sprintf("Init failed: %v", err)}
	}
	return Result{Name: "InitSuccess", Passed: true, Message: "Init succeeded"}
}

// AssertInitWithBadConfig verifies that Init returns an error for bad config.
func AssertInitWithBadConfig(importer domainPlugin.Importer) Result {
	err := importer.Init(map[string]string{"fail": "true"})
	if err == nil {
		return Result{Name: "InitWithBadConfig", Passed: false, Message: "expected Init to fail with fail=true config"}
	}
	return Result{Name: "InitWithBadConfig", Passed: true, Message: fmt.Sprintf("Init correctly failed: %v", err)}
}

// AssertFetchSucceeds verifies Fetch runs without error after Init.
func AssertFetchSucceeds(importer domainPlugin.Importer) Result {
	records, err := importer.Fetch()
	if err != nil {
		return Result{Name: "FetchSucceeds", Passed: false, Message: fmt.Sprintf("Fetch failed: %v", err)}
	}
	return Result{Name: "FetchSucceeds", Passed: true, Message: fmt.Sprintf("Fetch returned %d records", len(records))}
}

// AssertFetchedRecordsValid verifies every fetched record passes domain
// validation. An empty batch is acceptable.
func AssertFetchedRecordsValid(importer domainPlugin.Importer) Result {
	records, err := importer.Fetch()
	if err != nil {
		return Result{Name: "FetchedRecordsValid", Passed: false, Message: fmt.Sprintf("Fetch failed: %v", err)}
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return Result{Name: "FetchedRecordsValid", Passed: false, Message: fmt.Sprintf("record %d invalid: %v", i, err)}
		}
	}
	return Result{Name: "FetchedRecordsValid", Passed: true, Message: fmt.Sprintf("all %d records valid", len(records))}
}

// AssertFetchedRecordsNamed verifies every fetched record carries a feature
// name; nameless records cannot be summarized.
func AssertFetchedRecordsNamed(importer domainPlugin.Importer) Result {
	records, err := importer.Fetch()
	if err != nil {
		return Result{Name: "FetchedRecordsNamed", Passed: false, Message: fmt.Sprintf("Fetch failed: %v", err)}
	}
	for i := range records {
		if strings.TrimSpace(records[i].Feature) == "" {
			return Result{Name: "FetchedRecordsNamed", Passed: false, Message: fmt.Sprintf("record %d has no feature name", i)}
		}
	}
	return Result{Name: "FetchedRecordsNamed", Passed: true, Message: "every record names a feature"}
}
