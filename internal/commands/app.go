package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Controls is what the console commands act on.
type Controls interface {
	SelectShape(id string) error
	SelectMaterial(id string) error
	// RemoveSelected removes the anchor of the selected shape and reports whether one was selected.
	RemoveSelected() bool
	ClearScene()
	ScaleSelected(factor float32) bool
	RotateSelected(degrees float32) bool
	SetShowFPS(show bool)
	SetShowPlanes(show bool)
}

var errNoSelection = errors.New("no shape selected, tap one first")

// RegisterApp adds the simulator's console commands. out receives confirmations.
func RegisterApp(r *Registry, c Controls, out func(string)) {
	r.Register("shape", "shape <cube|sphere|cylinder>", nil, func(args []string) error {
		id, err := single("shape", args)
		if err != nil {
			return err
		}
		if err := c.SelectShape(id); err != nil {
			return err
		}
		out("shape: " + id)
		return nil
	})
	r.Register("material", "material <color|texture|custom>", nil, func(args []string) error {
		id, err := single("material", args)
		if err != nil {
			return err
		}
		if err := c.SelectMaterial(id); err != nil {
			return err
		}
		out("material: " + id)
		return nil
	})
	r.Register("remove", "remove", nil, func([]string) error {
		if !c.RemoveSelected() {
			return errNoSelection
		}
		out("removed")
		return nil
	})
	r.Register("clear", "clear", nil, func([]string) error {
		c.ClearScene()
		out("cleared")
		return nil
	})
	r.Register("scale", "scale <factor>", nil, func(args []string) error {
		f, err := number("scale", args)
		if err != nil {
			return err
		}
		if f <= 0 {
			return fmt.Errorf("scale: factor must be positive")
		}
		if !c.ScaleSelected(f) {
			return errNoSelection
		}
		return nil
	})
	r.Register("rotate", "rotate <degrees>", nil, func(args []string) error {
		d, err := number("rotate", args)
		if err != nil {
			return err
		}
		if !c.RotateSelected(d) {
			return errNoSelection
		}
		return nil
	})
	registerToggle(r, "fps", c.SetShowFPS)
	registerToggle(r, "planes", c.SetShowPlanes)
}

func registerToggle(r *Registry, name string, set func(bool)) {
	fs := NewFlagSet(name)
	show := fs.Bool("show", false, "show the overlay")
	hide := fs.Bool("hide", false, "hide the overlay")
	r.Register(name, name+" --show|--hide", fs, func([]string) error {
		// Flags persist between runs of the same FlagSet.
		defer func() { *show, *hide = false, false }()
		if *show == *hide {
			return fmt.Errorf("%s: pass exactly one of --show or --hide", name)
		}
		set(*show)
		return nil
	})
}

func single(name string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: expected one argument", name)
	}
	return strings.ToLower(args[0]), nil
}

func number(name string, args []string) (float32, error) {
	s, err := single(name, args)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return float32(v), nil
}
