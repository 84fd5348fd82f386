package providers

import "testing"

func TestRegistry(t *testing.T) {
	p := &StaticProvider{
		ProviderName: "test-hr",
		Employees: []Employee{
			{ID: "e1", Name: "Alice", DepartmentID: "d1"},
			{ID: "e2", Name: "Bob", DepartmentID: "d1"},
		},
		Departments: []Department{{ID: "d1", Name: "Engineering"}},
	}
	Register(p)

	got, err := Get("test-hr")
	if err != nil {
		t.Fatalf("Expected registered provider, got %v", err)
	}
	if err := got.TestConnection(); err != nil {
		t.Errorf("Static provider connection should succeed: %v", err)
	}

	employees, err := got.FetchEmployees()
	if err != nil || len(employees) != 2 {
		t.Errorf("Expected 2 employees, got %d (%v)", len(employees), err)
	}

	departments, err := got.FetchDepartments()
	if err != nil || len(departments) != 1 {
		t.Errorf("Expected 1 department, got %d (%v)", len(departments), err)
	}

	if _, err := Get("missing"); err == nil {
		t.Errorf("Expected error for unknown provider")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	Register(&StaticProvider{ProviderName: "zeta"})
	Register(&StaticProvider{ProviderName: "alpha"})

	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Names not sorted: %v", names)
		}
	}
}
