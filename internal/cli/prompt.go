package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// prompt prints a label and reads one trimmed line. io.EOF propagates so
// the loops above can exit when input runs out.
func (s *Session) prompt(label string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", label)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptInt keeps asking until it reads a valid integer.
func (s *Session) promptInt(label string) (int, error) {
	for {
		raw, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			fmt.Fprintln(s.out, "Please enter a whole number.")
			continue
		}
		return n, nil
	}
}

// promptFloat keeps asking until it reads a valid number.
func (s *Session) promptFloat(label string) (float64, error) {
	for {
		raw, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		f, convErr := strconv.ParseFloat(raw, 64)
		if convErr != nil {
			fmt.Fprintln(s.out, "Please enter a number.")
			continue
		}
		return f, nil
	}
}

// promptOptionalInt treats an empty line as absent.
func (s *Session) promptOptionalInt(label string) (int, error) {
	raw, err := s.prompt(label + " (enter to skip)")
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	n, convErr := strconv.Atoi(raw)
	if convErr != nil {
		fmt.Fprintln(s.out, "Not a whole number, skipping.")
		return 0, nil
	}
	return n, nil
}

// promptOptionalFloat treats an empty line as absent.
func (s *Session) promptOptionalFloat(label string) (float64, error) {
	raw, err := s.prompt(label + " (enter to skip)")
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	f, convErr := strconv.ParseFloat(raw, 64)
	if convErr != nil {
		fmt.Fprintln(s.out, "Not a number, skipping.")
		return 0, nil
	}
	return f, nil
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) println(args ...any) {
	fmt.Fprintln(s.out, args...)
}
