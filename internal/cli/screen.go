// Package cli renders the setup screen on a terminal: a line-oriented loop
// that feeds user input into the setup flow controller and prints the state
// the controller exposes.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/Houeta/devpin/internal/models"
	"github.com/Houeta/devpin/internal/setup"
)

// Flow is the surface of the setup flow controller the screen drives. The
// real *setup.Controller satisfies it; tests can provide a stub.
type Flow interface {
	Start(ctx context.Context)
	SetUsername(text string)
	HandleMapPress(coordinate models.Coordinates)
	Submit(ctx context.Context) error
	Busy() bool
	State() setup.State
}

// Screen is the terminal rendition of the setup screen. It reads commands
// line by line, dispatches them to the flow, and doubles as the flow's
// navigator: a Replace call ends the loop the way a screen transition would.
type Screen struct {
	in  io.Reader
	out io.Writer
	log *slog.Logger

	flow Flow

	outMu sync.Mutex

	mu    sync.Mutex
	route string

	done     chan struct{}
	doneOnce sync.Once
}

// NewScreen creates a screen reading commands from in and printing to out.
func NewScreen(in io.Reader, out io.Writer, log *slog.Logger) *Screen {
	return &Screen{
		in:   in,
		out:  out,
		log:  log,
		done: make(chan struct{}),
	}
}

// Bind attaches the flow the screen drives. It must be called before Run;
// binding is a separate step because the flow controller in turn needs the
// screen as its navigator.
func (s *Screen) Bind(flow Flow) {
	s.flow = flow
}

// Replace implements setup.Navigator. The first call records the route and
// ends the command loop; the screen is not revisited afterwards.
func (s *Screen) Replace(route string) {
	s.mu.Lock()
	s.route = route
	s.mu.Unlock()

	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Route returns the route a Replace call navigated to, empty before that.
func (s *Screen) Route() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

// Run starts the flow and processes commands until the user exits, the
// input ends, ctx is cancelled, or the flow navigates away.
func (s *Screen) Run(ctx context.Context) error {
	if s.flow == nil {
		return errors.New("no flow bound to the screen")
	}

	// Whichever way the loop ends, release the reader goroutine.
	defer s.doneOnce.Do(func() {
		close(s.done)
	})

	s.flow.Start(ctx)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-s.done:
				return
			}
		}
	}()

	s.printf("Pick a spot and enter your GitHub username. Type \"help\" for commands.\n")

	for {
		s.printf("devpin> ")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			s.printf("Moving to the %s screen.\n", s.Route())
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if s.handle(ctx, line) {
				return nil
			}
		}
	}
}

// handle dispatches a single input line. It returns true when the loop
// should exit.
func (s *Screen) handle(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	switch parts[0] {
	case "help":
		s.printHelp()

	case "username":
		if len(parts) != 2 {
			s.printf("usage: username <login>\n")
			return false
		}
		s.flow.SetUsername(parts[1])

	case "pin":
		coordinate, err := parsePin(parts)
		if err != nil {
			s.printf("usage: pin <lat> <lon>, e.g. pin 48.8566 2.3522\n")
			return false
		}
		s.flow.HandleMapPress(coordinate)

	case "state":
		s.printState()

	case "signup":
		if s.flow.Busy() {
			s.printf("A signup attempt is already running.\n")
			return false
		}
		go s.submit(ctx)

	case "exit", "quit":
		s.printf("Bye!\n")
		return true

	default:
		s.printf("Unknown command: %s\n", parts[0])
	}

	return false
}

// submit runs the signup pipeline off the loop goroutine so the prompt
// stays responsive, the way the mobile screen stays interactive while a
// request is in flight.
func (s *Screen) submit(ctx context.Context) {
	err := s.flow.Submit(ctx)
	if err == nil {
		return
	}

	if errors.Is(err, setup.ErrSubmissionInFlight) {
		s.printf("A signup attempt is already running.\n")
		return
	}

	s.log.DebugContext(ctx, "Signup attempt failed", "error", err)
	if message := s.flow.State().ErrorMessage; message != "" {
		s.printf("%s\n", message)
	}
}

func parsePin(parts []string) (models.Coordinates, error) {
	if len(parts) != 3 {
		return models.Coordinates{}, errors.New("pin wants exactly two arguments")
	}

	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("failed to parse longitude: %w", err)
	}

	return models.Coordinates{Latitude: lat, Longitude: lon}, nil
}

func (s *Screen) printHelp() {
	s.printf("Available commands:\n" +
		"  username <login>   set the GitHub username\n" +
		"  pin <lat> <lon>    drop the marker at a coordinate\n" +
		"  state              show the current screen state\n" +
		"  signup             look the username up and register\n" +
		"  help               show this help\n" +
		"  exit               leave without signing up\n")
}

func (s *Screen) printState() {
	state := s.flow.State()

	s.printf("username: %q\n", state.Username)
	s.printf("pin: %.5f, %.5f\n", state.Marker.Latitude, state.Marker.Longitude)
	s.printf("viewport: %.5f, %.5f (span %.4f x %.4f)\n",
		state.Region.Center.Latitude, state.Region.Center.Longitude,
		state.Region.LatitudeDelta, state.Region.LongitudeDelta)
	s.printf("map locked: %t, busy: %t\n", state.MapLocked, state.Busy)
	if state.ErrorMessage != "" {
		s.printf("error: %s\n", state.ErrorMessage)
	}
}

func (s *Screen) printf(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}
