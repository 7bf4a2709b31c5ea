package tools

import (
	"fmt"
	"sort"
	"sync"
)

// LocalToolSource holds the in-process tools.
type LocalToolSource struct {
	name  string
	tools map[string]Tool
	mu    sync.RWMutex
}

func NewLocalToolSource(name string) *LocalToolSource {
	if name == "" {
		name = "local"
	}

	return &LocalToolSource{
		name:  name,
		tools: make(map[string]Tool),
	}
}

func (s *LocalToolSource) GetName() string {
	return s.name
}

func (s *LocalToolSource) GetType() string {
	return "local"
}

func (s *LocalToolSource) RegisterTool(tool Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := tool.GetName()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	if _, exists := s.tools[name]; exists {
		return fmt.Errorf("tool %s already registered in source %s", name, s.name)
	}

	s.tools[name] = tool

	return nil
}

func (s *LocalToolSource) GetTool(name string) (Tool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tool, exists := s.tools[name]
	return tool, exists
}

func (s *LocalToolSource) ListTools() []ToolInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]ToolInfo, 0, len(s.tools))
	for _, tool := range s.tools {
		infos = append(infos, tool.GetInfo())
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos
}
