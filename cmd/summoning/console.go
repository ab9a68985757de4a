package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/udisondev/summoning/internal/world"
)

var errQuit = errors.New("quit requested")

// CommandSink accepts simulation commands.
type CommandSink interface {
	Submit(cmd world.Command) bool
}

// Bindings maps hotkeys to template names.
type Bindings interface {
	Binding(cmd string) (string, bool)
	Names() []string
}

// SnapshotSource exposes the latest simulation snapshot.
type SnapshotSource interface {
	Snapshot() *world.Snapshot
}

// Console reads player commands line by line.
type Console struct {
	in       io.Reader
	out      io.Writer
	sink     CommandSink
	bindings Bindings
	status   SnapshotSource
}

// NewConsole creates a console reading from in and answering on out.
func NewConsole(in io.Reader, out io.Writer, sink CommandSink, bindings Bindings, status SnapshotSource) *Console {
	return &Console{in: in, out: out, sink: sink, bindings: bindings, status: status}
}

// Run executes commands until ctx is canceled, input ends or "quit" is read.
// Quitting returns context.Canceled so the other workers shut down.
// The reader goroutine stays blocked in Scan after cancellation until the next
// line or EOF arrives; with os.Stdin that means it lives until process exit.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			slog.Warn("console input failed", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				slog.Info("console input closed")
				return nil
			}
			err := c.Execute(line)
			switch {
			case errors.Is(err, errQuit):
				return context.Canceled
			case err != nil:
				fmt.Fprintf(c.out, "error: %v\n", err)
			}
		}
	}
}

// Execute runs one command line.
func (c *Console) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	if name, ok := c.bindings.Binding(fields[0]); ok && len(fields) == 1 {
		return c.submit(world.SpawnCommand(name))
	}

	switch strings.ToLower(fields[0]) {
	case "spawn":
		if len(fields) != 2 {
			return errors.New("usage: spawn <template>")
		}
		return c.submit(world.SpawnCommand(fields[1]))

	case "select":
		if len(fields) != 3 {
			return errors.New("usage: select <x> <y>")
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("parsing x: %w", err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("parsing y: %w", err)
		}
		return c.submit(world.SelectCommand(x, y))

	case "status":
		snap := c.status.Snapshot()
		if snap == nil {
			fmt.Fprintln(c.out, "simulation not started")
			return nil
		}
		fmt.Fprintln(c.out, FormatStatus(snap))
		return nil

	case "help":
		fmt.Fprintf(c.out, "commands: spawn <%s> | select <x> <y> | status | quit | hotkeys 1-9\n",
			strings.Join(c.bindings.Names(), "|"))
		return nil

	case "quit", "exit":
		return errQuit

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func (c *Console) submit(cmd world.Command) error {
	if !c.sink.Submit(cmd) {
		return fmt.Errorf("%s command dropped, try again", cmd.Kind)
	}
	return nil
}
