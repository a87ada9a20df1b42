package mocks

// MockPolicyEnforcer implements domain.PolicyEnforcer for testing
type MockPolicyEnforcer struct {
	EnforceFunc   func(rvals ...interface{}) (bool, error)
	AddPolicyFunc func(params ...interface{}) (bool, error)
	GetPolicyFunc func() ([][]string, error)

	Policies [][]string
}

// NewMockPolicyEnforcer creates a new MockPolicyEnforcer that allows everything
func NewMockPolicyEnforcer() *MockPolicyEnforcer {
	return &MockPolicyEnforcer{}
}

// Enforce checks a request against the policies
func (m *MockPolicyEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	// Default behavior: allow
	return true, nil
}

// AddPolicy records a policy
func (m *MockPolicyEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	rule := make([]string, 0, len(params))
	for _, p := range params {
		rule = append(rule, p.(string))
	}
	m.Policies = append(m.Policies, rule)
	return true, nil
}

// GetPolicy returns the recorded policies
func (m *MockPolicyEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	return m.Policies, nil
}

// SavePolicy persists nothing
func (m *MockPolicyEnforcer) SavePolicy() error { return nil }
