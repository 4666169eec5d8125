// SPDX-License-Identifier: MIT

package contract

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMissingParameter is matched by every *MissingParameterError.
	ErrMissingParameter = errors.New("contract: missing required parameters")

	// ErrUnknownView is returned by Lookup for an unregistered view name.
	ErrUnknownView = errors.New("contract: unknown view")
)

// ParameterSource is anything that can list its parameter names;
// *surface.Surface satisfies it.
type ParameterSource interface {
	Parameters() []string
}

// View is a visualization family and the exact parameters it requires.
type View struct {
	Name     string
	Required []string
}

// Built-in views.
var (
	FullMomentTensor = View{Name: "full_moment_tensor", Required: []string{"rho", "v", "w", "kappa", "sigma", "h"}}
	DoubleCouple     = View{Name: "double_couple", Required: []string{"kappa", "sigma", "h"}}
	Lune             = View{Name: "lune", Required: []string{"v", "w"}}
	Force            = View{Name: "force", Required: []string{"F0", "phi", "h"}}
	Depth            = View{Name: "depth", Required: []string{"depth"}}
)

var views = []View{FullMomentTensor, DoubleCouple, Lune, Force, Depth}

// Views returns the built-in views.
func Views() []View { return append([]View(nil), views...) }

// Lookup returns the built-in view called name.
func Lookup(name string) (View, error) {
	for _, v := range views {
		if v.Name == name {
			return v, nil
		}
	}

	return View{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// MissingParameterError lists the required names absent from a store.
type MissingParameterError struct {
	View    string   // empty when checked against a bare name set
	Missing []string // sorted
}

// Error implements error.
func (e *MissingParameterError) Error() string {
	if e.View == "" {
		return fmt.Sprintf("contract: missing parameters [%s]", strings.Join(e.Missing, " "))
	}

	return fmt.Sprintf("contract: view %s: missing parameters [%s]", e.View, strings.Join(e.Missing, " "))
}

// Is makes errors.Is(err, ErrMissingParameter) hold.
func (e *MissingParameterError) Is(target error) bool { return target == ErrMissingParameter }

// Check verifies that p exposes every name in required.
// Returns nil or *MissingParameterError.
// Complexity: O(|p| + |required|·log|required|).
func Check(p ParameterSource, required []string) error {
	return check("", p, required)
}

// Check verifies that p satisfies the view.
func (v View) Check(p ParameterSource) error {
	return check(v.Name, p, v.Required)
}

func check(view string, p ParameterSource, required []string) error {
	have := make(map[string]bool)
	for _, name := range p.Parameters() {
		have[name] = true
	}

	var missing []string
	for _, name := range required {
		if !have[name] {
			missing = append(missing, name)
			have[name] = true // report each name once
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)

	return &MissingParameterError{View: view, Missing: missing}
}
