// Package providers defines the adapter surface for external HR and
// calendar systems. Providers feed employee and department rosters to the
// service layer; they sit entirely outside the scoring engine.
package providers

import (
	"fmt"
	"sort"
	"sync"
)

// Employee is the roster entry a provider returns.
type Employee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	DepartmentID string `json:"department_id"`
}

// Department groups employees for team-level queries.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Provider is one external HR/calendar integration.
type Provider interface {
	Name() string
	FetchEmployees() ([]Employee, error)
	FetchDepartments() ([]Department, error)
	TestConnection() error
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Provider{}
)

// Register makes a provider available by name. Later registrations replace
// earlier ones with the same name.
func Register(p Provider) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[p.Name()] = p
}

// Get looks up a registered provider.
func Get(name string) (Provider, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", name)
	}
	return p, nil
}

// Names lists registered providers, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// StaticProvider serves a fixed roster, used for development and tests.
type StaticProvider struct {
	ProviderName string
	Employees    []Employee
	Departments  []Department
}

func (s *StaticProvider) Name() string { return s.ProviderName }

func (s *StaticProvider) FetchEmployees() ([]Employee, error) {
	return append([]Employee(nil), s.Employees...), nil
}

func (s *StaticProvider) FetchDepartments() ([]Department, error) {
	return append([]Department(nil), s.Departments...), nil
}

func (s *StaticProvider) TestConnection() error { return nil }
