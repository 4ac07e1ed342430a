package stream

import (
	"fmt"
	"io"

	"docuchat/backend/internal/model"
)

// Console renders events for a terminal: content is printed as it arrives and
// tool activity goes on its own lines.
type Console struct {
	gate
	out     io.Writer
	verbose bool
	inLine  bool
}

// NewConsole creates a console sink. With verbose set, thinking and tool
// events are printed as well.
func NewConsole(out io.Writer, verbose bool) *Console {
	return &Console{out: out, verbose: verbose}
}

func (c *Console) Send(event model.StreamEvent) error {
	return c.write(event, func() error {
		return c.render(event)
	})
}

func (c *Console) render(event model.StreamEvent) error {
	var err error
	switch data := event.Data.(type) {
	case model.ContentEvent:
		_, err = io.WriteString(c.out, data.Chunk)
		c.inLine = true
	case model.ToolEvent:
		if c.verbose {
			err = c.line(fmt.Sprintf("[%s] %s", data.Tool, data.Message))
		}
	case model.ThinkingEvent:
		if c.verbose {
			err = c.line(fmt.Sprintf("[thinking] %s", data.Message))
		}
	case model.DoneEvent:
		err = c.endLine()
		if err == nil && c.verbose {
			err = c.line(fmt.Sprintf("[done] context=%t chunks=%d web=%t", data.HasContext, data.ChunksUsed, data.UsedWebSearch))
		}
	case model.ErrorEvent:
		err = c.line("Error: " + data.Error)
	}
	return err
}

func (c *Console) endLine() error {
	if !c.inLine {
		return nil
	}
	c.inLine = false
	_, err := io.WriteString(c.out, "\n")
	return err
}

func (c *Console) line(s string) error {
	if err := c.endLine(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.out, s)
	return err
}

func (c *Console) Close() error {
	c.close()
	return nil
}
