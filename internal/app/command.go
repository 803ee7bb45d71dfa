package app

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/render"
)

var (
	// ErrUnknownCommand is returned for an unrecognized command word.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadArguments is returned when a command's arguments do not parse.
	ErrBadArguments = errors.New("bad arguments")
)

// Command is one parsed interaction line, e.g. "zoom in" or "pan -10 5".
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits line into a command word and its arguments.
// Blank lines and lines starting with '#' parse to the zero Command.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}
	}
	fields := strings.Fields(line)
	return Command{Name: strings.ToLower(fields[0]), Args: fields[1:]}
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is what one command produced, ready to be encoded as a frame.
type Result struct {
	Command string          `json:"command" yaml:"command"`
	Error   string          `json:"error,omitempty" yaml:"error,omitempty"`
	Label   string          `json:"label,omitempty" yaml:"label,omitempty"`
	Changed *bool           `json:"changed,omitempty" yaml:"changed,omitempty"`
	Tooltip *render.Tooltip `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	State   Snapshot        `json:"state" yaml:"state"`
}

// Exec runs cmd against s and returns the resulting frame. A failed command
// still returns the current state with the error set.
func (s *State) Exec(cmd Command) (Result, error) {
	res := Result{Command: cmd.String()}
	err := s.exec(cmd, &res)
	if err != nil {
		res.Error = err.Error()
	}
	res.State = s.Snapshot()
	return res, err
}

func (s *State) exec(cmd Command, res *Result) error {
	switch cmd.Name {
	case "", "state":
		return nil
	case "year":
		year, err := intArg(cmd, 0)
		if err != nil {
			return err
		}
		return s.SetYear(year)
	case "preview":
		year, err := intArg(cmd, 0)
		if err != nil {
			return err
		}
		res.Label, err = s.PreviewYear(year)
		return err
	case "toggle":
		return s.execToggle(cmd)
	case "zoom":
		return s.execZoom(cmd, res)
	case "reset":
		s.Reset()
		return nil
	case "pan":
		dx, dy, err := pointArgs(cmd)
		if err != nil {
			return err
		}
		s.Pan(dx, dy)
		return nil
	case "wheel":
		if len(cmd.Args) != 3 {
			return fmt.Errorf("%s: want X Y FACTOR: %w", cmd.Name, ErrBadArguments)
		}
		x, y, err := pointArgs(Command{Name: cmd.Name, Args: cmd.Args[:2]})
		if err != nil {
			return err
		}
		factor, err := floatArg(cmd, 2)
		if err != nil {
			return err
		}
		s.ZoomAt(x, y, factor)
		return nil
	case "resize":
		w, h, err := pointArgs(cmd)
		if err != nil {
			return err
		}
		return s.Resize(w, h)
	case "hover":
		if len(cmd.Args) != 1 {
			return fmt.Errorf("%s: want ID: %w", cmd.Name, ErrBadArguments)
		}
		tip, err := s.Hover(cmd.Args[0])
		if err != nil {
			return err
		}
		res.Tooltip = &tip
		return nil
	case "unhover":
		if len(cmd.Args) != 1 {
			return fmt.Errorf("%s: want ID: %w", cmd.Name, ErrBadArguments)
		}
		return s.Unhover(cmd.Args[0])
	}
	return fmt.Errorf("%q: %w", cmd.Name, ErrUnknownCommand)
}

func (s *State) execToggle(cmd Command) error {
	if len(cmd.Args) != 2 {
		return fmt.Errorf("toggle: want CATEGORY on|off: %w", ErrBadArguments)
	}
	c, err := domain.ParseCategory(cmd.Args[0])
	if err != nil {
		return err
	}
	var on bool
	switch strings.ToLower(cmd.Args[1]) {
	case "on", "true", "1":
		on = true
	case "off", "false", "0":
	default:
		return fmt.Errorf("toggle: %q is not on or off: %w", cmd.Args[1], ErrBadArguments)
	}
	return s.Toggle(c, on)
}

func (s *State) execZoom(cmd Command, res *Result) error {
	if len(cmd.Args) != 1 {
		return fmt.Errorf("zoom: want in, out or a scale: %w", ErrBadArguments)
	}
	var changed bool
	switch strings.ToLower(cmd.Args[0]) {
	case "in", "+":
		changed = s.ZoomIn()
	case "out", "-":
		changed = s.ZoomOut()
	default:
		scale, err := floatArg(cmd, 0)
		if err != nil {
			return err
		}
		s.ZoomTo(scale)
		changed = true
	}
	res.Changed = &changed
	return nil
}

func intArg(cmd Command, i int) (int, error) {
	if len(cmd.Args) <= i {
		return 0, fmt.Errorf("%s: missing argument: %w", cmd.Name, ErrBadArguments)
	}
	n, err := strconv.Atoi(cmd.Args[i])
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer: %w", cmd.Name, cmd.Args[i], ErrBadArguments)
	}
	return n, nil
}

func floatArg(cmd Command, i int) (float64, error) {
	if len(cmd.Args) <= i {
		return 0, fmt.Errorf("%s: missing argument: %w", cmd.Name, ErrBadArguments)
	}
	v, err := strconv.ParseFloat(cmd.Args[i], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %q is not a finite number: %w", cmd.Name, cmd.Args[i], ErrBadArguments)
	}
	return v, nil
}

func pointArgs(cmd Command) (float64, float64, error) {
	if len(cmd.Args) != 2 {
		return 0, 0, fmt.Errorf("%s: want two numbers: %w", cmd.Name, ErrBadArguments)
	}
	a, err := floatArg(cmd, 0)
	if err != nil {
		return 0, 0, err
	}
	b, err := floatArg(cmd, 1)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
