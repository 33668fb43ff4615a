package output

import (
	"net/netip"
	"testing"

	"github.com/icmptools/eping/internal/shared"
)

// mockOutput is a mock implementation of Output for testing
type mockOutput struct {
	startCalls []shared.SessionInfo
	replyCalls []shared.Measurement
	closeCalls int
}

func (m *mockOutput) Start(info shared.SessionInfo) {
	m.startCalls = append(m.startCalls, info)
}

func (m *mockOutput) Reply(r shared.Measurement) {
	m.replyCalls = append(m.replyCalls, r)
}

func (m *mockOutput) Close() error {
	m.closeCalls++
	return nil
}

func TestManager_Register(t *testing.T) {
	om := &Manager{}
	mock1 := &mockOutput{}
	mock2 := &mockOutput{}

	om.Register(mock1)
	if len(om.outputs) != 1 {
		t.Errorf("Register() outputs count = %d, want 1", len(om.outputs))
	}

	om.Register(mock2)
	if len(om.outputs) != 2 {
		t.Errorf("Register() outputs count = %d, want 2", len(om.outputs))
	}
}

func TestNewManager(t *testing.T) {
	mock1 := &mockOutput{}
	mock2 := &mockOutput{}

	om := NewManager(mock1, mock2)
	if len(om.outputs) != 2 {
		t.Errorf("NewManager() outputs count = %d, want 2", len(om.outputs))
	}
}

func TestManager_Start(t *testing.T) {
	om := &Manager{}
	mock1 := &mockOutput{}
	mock2 := &mockOutput{}
	om.Register(mock1)
	om.Register(mock2)

	info := shared.SessionInfo{
		Target:    "example.net",
		Addr:      netip.MustParseAddr("192.0.2.7"),
		DataBytes: 56,
		WireBytes: 84,
	}
	om.Start(info)

	if len(mock1.startCalls) != 1 {
		t.Errorf("mock1 Start calls = %d, want 1", len(mock1.startCalls))
	}
	if len(mock2.startCalls) != 1 {
		t.Errorf("mock2 Start calls = %d, want 1", len(mock2.startCalls))
	}
	if mock1.startCalls[0].Target != "example.net" {
		t.Errorf("Target = %s, want example.net", mock1.startCalls[0].Target)
	}
	if mock1.startCalls[0].WireBytes != 84 {
		t.Errorf("WireBytes = %d, want 84", mock1.startCalls[0].WireBytes)
	}
}

func TestManager_Reply(t *testing.T) {
	om := &Manager{}
	mock := &mockOutput{}
	om.Register(mock)

	m := shared.Measurement{
		Bytes: 64,
		Peer:  netip.MustParseAddr("192.0.2.7"),
		Seq:   3,
		TTL:   57,
		RTT:   12340,
	}
	om.Reply(m)

	if len(mock.replyCalls) != 1 {
		t.Fatalf("Reply calls = %d, want 1", len(mock.replyCalls))
	}
	if mock.replyCalls[0].Seq != 3 {
		t.Errorf("Seq = %d, want 3", mock.replyCalls[0].Seq)
	}
	if mock.replyCalls[0].RTT != 12340 {
		t.Errorf("RTT = %d, want 12340", mock.replyCalls[0].RTT)
	}
}

func TestManager_Close(t *testing.T) {
	om := &Manager{}
	mock1 := &mockOutput{}
	mock2 := &mockOutput{}
	om.Register(mock1)
	om.Register(mock2)

	om.Close()

	if mock1.closeCalls != 1 {
		t.Errorf("mock1 Close calls = %d, want 1", mock1.closeCalls)
	}
	if mock2.closeCalls != 1 {
		t.Errorf("mock2 Close calls = %d, want 1", mock2.closeCalls)
	}
}

func TestManager_MultipleOutputs(t *testing.T) {
	om := &Manager{}
	mock1 := &mockOutput{}
	mock2 := &mockOutput{}
	mock3 := &mockOutput{}
	om.Register(mock1)
	om.Register(mock2)
	om.Register(mock3)

	// Test that all outputs receive all calls
	om.Start(shared.SessionInfo{})
	om.Reply(shared.Measurement{})
	om.Close()

	for i, mock := range []*mockOutput{mock1, mock2, mock3} {
		if len(mock.startCalls) != 1 {
			t.Errorf("mock%d Start calls = %d, want 1", i+1, len(mock.startCalls))
		}
		if len(mock.replyCalls) != 1 {
			t.Errorf("mock%d Reply calls = %d, want 1", i+1, len(mock.replyCalls))
		}
		if mock.closeCalls != 1 {
			t.Errorf("mock%d Close calls = %d, want 1", i+1, mock.closeCalls)
		}
	}
}
