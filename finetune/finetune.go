// Package finetune appends completed turns as Alpaca-format training
// examples. Logging is best-effort: a failed write is reported but never
// fails the chat turn that produced the data.
package finetune

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// defaultInstruction is the fixed instruction field of every example.
const defaultInstruction = "You are an AI mentor for students learning AI & programming. Explain step-by-step."

// Example is one Alpaca-format training record.
type Example struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}

// Logger appends examples to a JSONL file.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger opens or creates the training-data file at path.
func NewLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure finetune dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("init finetune file: %w", err)
	}
	_ = f.Close()
	return &Logger{path: path}, nil
}

// Log appends one example built from the turn's context and answer.
func (l *Logger) Log(context, answer string) error {
	example := Example{
		Instruction: defaultInstruction,
		Input:       context,
		Output:      answer,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open finetune append: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(example); err != nil {
		return fmt.Errorf("encode finetune example: %w", err)
	}
	return nil
}
