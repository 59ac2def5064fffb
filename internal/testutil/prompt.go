package testutil

import (
	"fmt"
	"sync"
)

// StubPrompter answers ReadSecret calls from a script and records everything
// it was shown.
type StubPrompter struct {
	mu      sync.Mutex
	answers []string
	Prompts []string
	Notices []string
}

// NewStubPrompter creates a StubPrompter that returns answers in order.
func NewStubPrompter(answers ...string) *StubPrompter {
	return &StubPrompter{answers: answers}
}

func (p *StubPrompter) ReadSecret(prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Prompts = append(p.Prompts, prompt)
	if len(p.answers) == 0 {
		return "", fmt.Errorf("stub prompter: no answer scripted for %q", prompt)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *StubPrompter) Notice(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Notices = append(p.Notices, msg)
}

// StubConfirmer returns a fixed answer and records the questions asked.
type StubConfirmer struct {
	mu        sync.Mutex
	Answer    bool
	Err       error
	Questions []string
}

func (c *StubConfirmer) Confirm(question string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Questions = append(c.Questions, question)
	return c.Answer, c.Err
}

// Asked reports how many times Confirm was called.
func (c *StubConfirmer) Asked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Questions)
}
