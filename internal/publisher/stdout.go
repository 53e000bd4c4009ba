package publisher

import (
	"context"
	"fmt"
)

// StdoutPublisher prints the rendered report to stdout.
type StdoutPublisher struct{}

func NewStdoutPublisher() *StdoutPublisher {
	return &StdoutPublisher{}
}

func (p *StdoutPublisher) Publish(_ context.Context, rep *Report) error {
	fmt.Println(Render(rep))
	return nil
}
