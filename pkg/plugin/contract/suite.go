package contract

import (
	"fmt"

	domainPlugin "github.com/felixgeelhaar/ricemill/pkg/domain/plugin"
	infraPlugin "github.com/felixgeelhaar/ricemill/pkg/plugin"
)

// ContractSuite runs all contract assertions against a plugin binary.
type ContractSuite struct {
	loader *infraPlugin.Loader
}

// NewContractSuite creates a new contract suite.
func NewContractSuite() *ContractSuite {
	return &ContractSuite{
		loader: infraPlugin.NewLoader(),
	}
}

// SuiteResult aggregates results from running the full contract suite.
type SuiteResult struct {
	Results []Result
	Passed  int
	Failed  int
}

// RunWithImporter runs the contract suite against an already-loaded importer.
func (s *ContractSuite) RunWithImporter(importer domainPlugin.Importer) *SuiteResult {
	assertions := []func(domainPlugin.Importer) Result{
		AssertInitSuccess,
		AssertInitWithBadConfig,
		AssertFetchSucceeds,
		AssertFetchedRecordsValid,
		AssertFetchedRecordsNamed,
	}

	sr := &SuiteResult{}
	for _, assert := range assertions {
		result := assert(importer)
		sr.Results = append(sr.Results, result)
		if result.Passed {
			sr.Passed++
		} else {
			sr.Failed++
		}
	}
	return sr
}

// RunBinary loads a plugin binary and runs the full contract suite.
func (s *ContractSuite) RunBinary(path string) (*SuiteResult, error) {
	defer s.loader.Cleanup()

	importer, err := s.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load plugin: %w", err)
	}

	return s.RunWithImporter(importer), nil
}
