package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/icmptools/eping/internal/shared"
)

// JSONOutput streams session events as JSON lines to a file or stdout.
// Every line carries a type tag so consumers can tell the one-off start
// record apart from the reply stream.
type JSONOutput struct {
	mu       sync.Mutex
	file     *os.File
	enc      *json.Encoder
	toStdout bool
}

func NewJSONOutput(filename string) (*JSONOutput, error) {
	if filename == "" {
		// Output to stdout
		return &JSONOutput{
			file:     os.Stdout,
			enc:      json.NewEncoder(os.Stdout),
			toStdout: true,
		}, nil
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return &JSONOutput{
		file:     f,
		enc:      json.NewEncoder(f),
		toStdout: false,
	}, nil
}

func (j *JSONOutput) Start(info shared.SessionInfo) {
	j.mu.Lock()
	defer j.mu.Unlock()

	_ = j.enc.Encode(struct {
		Type string `json:"type"`
		shared.SessionInfo
	}{Type: "start", SessionInfo: info})
}

func (j *JSONOutput) Reply(m shared.Measurement) {
	j.mu.Lock()
	defer j.mu.Unlock()

	_ = j.enc.Encode(struct {
		Type string `json:"type"`
		shared.Measurement
		RTTMs string `json:"rtt_ms"`
	}{Type: "reply", Measurement: m, RTTMs: shared.FormatRTT(m.RTT)})
}

func (j *JSONOutput) Close() error {
	if j.toStdout {
		return nil
	}
	return j.file.Close()
}
