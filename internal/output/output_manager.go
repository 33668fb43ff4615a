package output

import "github.com/icmptools/eping/internal/shared"

// Output interface for different output types
type Output interface {
	Start(info shared.SessionInfo)
	Reply(m shared.Measurement)
	Close() error
}

// Manager fans session events out to any number of registered outputs
type Manager struct {
	outputs []Output
}

func NewManager(outputs ...Output) *Manager {
	return &Manager{outputs: outputs}
}

func (om *Manager) Register(o Output) {
	om.outputs = append(om.outputs, o)
}

func (om *Manager) Start(info shared.SessionInfo) {
	for _, o := range om.outputs {
		o.Start(info)
	}
}

func (om *Manager) Reply(m shared.Measurement) {
	for _, o := range om.outputs {
		o.Reply(m)
	}
}

func (om *Manager) Close() {
	for _, o := range om.outputs {
		o.Close()
	}
}
