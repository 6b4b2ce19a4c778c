package worker

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
)

type CommandType string

const (
	CommandInit CommandType = "init"
	CommandStop CommandType = "stop"
)

// Command is sent by the orchestrator to a worker.
type Command struct {
	Type    CommandType   `json:"type"`
	JobKind model.JobKind `json:"jobKind,omitempty"`
	Restart bool          `json:"restart,omitempty"`
}

type MessageType string

const (
	MessageProgress  MessageType = "progress"
	MessageError     MessageType = "error"
	MessageCompleted MessageType = "completed"
)

// Message is sent by a worker to the orchestrator. Which fields are set
// depends on Type; every field of a progress message is optional.
type Message struct {
	Type MessageType `json:"type"`

	Progress    *model.Progress    `json:"progress,omitempty"`
	CurrentItem *model.CurrentItem `json:"currentItem,omitempty"`
	ResumeData  json.RawMessage    `json:"resumeData,omitempty"`
	Statistics  *model.Statistics  `json:"statistics,omitempty"`

	Error string `json:"error,omitempty"`

	Total       uint32 `json:"total,omitempty"`
	FailedCount int    `json:"failedCount,omitempty"`
}

// Patches translates a progress message into store patches. Absent fields
// produce no patch.
func (m Message) Patches() []store.Patch {
	if m.Type != MessageProgress {
		return nil
	}
	patches := make([]store.Patch, 0, 4)
	if m.Progress != nil {
		patches = append(patches, store.ProgressPatch{Progress: *m.Progress})
	}
	if m.CurrentItem != nil {
		patches = append(patches, store.CurrentItemPatch{Item: m.CurrentItem})
	}
	if len(m.ResumeData) > 0 && string(m.ResumeData) != "null" {
		patches = append(patches, store.ResumeDataPatch{Data: m.ResumeData})
	}
	if m.Statistics != nil {
		stats := *m.Statistics
		patches = append(patches, store.StatisticsPatch{Replace: &stats})
	}
	return patches
}

// Channel carries newline-delimited JSON in both directions. Send is safe
// for concurrent use; Receive is not.
type Channel struct {
	mu  sync.Mutex
	w   io.Writer
	enc *json.Encoder
	dec *json.Decoder
}

func NewChannel(r io.Reader, w io.Writer) *Channel {
	return &Channel{
		w:   w,
		enc: json.NewEncoder(w),
		dec: json.NewDecoder(bufio.NewReader(r)),
	}
}

func (c *Channel) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc.Encode(v)
}

func (c *Channel) Receive(v any) error {
	return c.dec.Decode(v)
}
