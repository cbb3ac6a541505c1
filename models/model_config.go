package models

import "fmt"

// ModelConfig describes the limits of one provider model.
type ModelConfig struct {
	Name            string `yaml:"name"`
	ContextWindow   int    `yaml:"context_window"`
	MaxOutput       int    `yaml:"max_output"`
	MaxContentChars int    `yaml:"max_content_chars"`
}

// Validate enforces the invariant max_output <= context_window.
func (m ModelConfig) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("model name is empty")
	}
	if m.ContextWindow <= 0 {
		return fmt.Errorf("model %s: context window must be positive", m.Name)
	}
	if m.MaxOutput <= 0 {
		return fmt.Errorf("model %s: max output must be positive", m.Name)
	}
	if m.MaxOutput > m.ContextWindow {
		return fmt.Errorf("model %s: max output %d exceeds context window %d", m.Name, m.MaxOutput, m.ContextWindow)
	}
	if m.MaxContentChars <= 0 {
		return fmt.Errorf("model %s: max content chars must be positive", m.Name)
	}
	return nil
}
