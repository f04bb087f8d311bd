package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// maxGraphTopics caps the learning graph size.
const maxGraphTopics = 50

// TopicGraph tracks coarse query-topic frequencies across all users. It is
// used for trend inspection, not direct retrieval.
type TopicGraph struct {
	path string
	mu   sync.Mutex
}

// NewTopicGraph opens or creates the graph file at path.
func NewTopicGraph(path string) (*TopicGraph, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure graph dir: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			return nil, fmt.Errorf("init graph file: %w", err)
		}
	}
	return &TopicGraph{path: path}, nil
}

// Observe extracts the key topic from query, increments its count, and
// prunes the graph to the most frequent topics.
func (g *TopicGraph) Observe(query string) error {
	topic := keyTopic(query)

	g.mu.Lock()
	defer g.mu.Unlock()

	graph, err := g.load()
	if err != nil {
		return err
	}
	graph[topic]++

	return g.save(prune(graph, maxGraphTopics))
}

// Topics returns the current graph.
func (g *TopicGraph) Topics() (map[string]int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.load()
}

func (g *TopicGraph) load() (map[string]int, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	graph := make(map[string]int)
	if err := json.Unmarshal(data, &graph); err != nil {
		return nil, fmt.Errorf("parse graph: %w", err)
	}
	return graph, nil
}

func (g *TopicGraph) save(graph map[string]int) error {
	data, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}
	if err := os.WriteFile(g.path, data, 0o644); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	return nil
}

// keyTopic joins the words longer than 3 characters, truncated to 20 bytes.
// Longer words cluster better than stopword-heavy full queries.
func keyTopic(query string) string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	topic := strings.Join(words, " ")
	if len(topic) > 20 {
		topic = topic[:20]
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = "misc"
	}
	return topic
}

// prune keeps the max highest-count topics, ties broken by name for
// deterministic output.
func prune(graph map[string]int, max int) map[string]int {
	if len(graph) <= max {
		return graph
	}
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(graph))
	for name, count := range graph {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	out := make(map[string]int, max)
	for _, e := range entries[:max] {
		out[e.name] = e.count
	}
	return out
}
