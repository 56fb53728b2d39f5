// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGetKnownIssues(t *testing.T) {
	t.Parallel()

	ids := []Id{
		MalformedDeclarationId,
		MissingIdentityId,
		UnresolvedDependencyId,
		InvalidDependencyKindId,
		ModuleExistsId,
		GitNotFoundId,
	}
	for _, id := range ids {
		iss := Get(id)
		if iss == nil {
			t.Errorf("Get(%d) = nil", id)
			continue
		}
		if iss.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, iss.Id())
		}
		if iss.MarkdownMsg() == "" {
			t.Errorf("issue %d has no markdown message", id)
		}
	}
}

func TestValuesCoversAllIssues(t *testing.T) {
	t.Parallel()

	if got := len(Values()); got != 6 {
		t.Errorf("Values() has %d issues, want 6", got)
	}
}

func TestRenderUsesMarkdownMessage(t *testing.T) {
	// Not parallel: swaps the package-level renderer.

	// Stub the renderer so the test doesn't depend on terminal styling.
	orig := render
	render = func(in, _ string) (string, error) { return in, nil }
	defer func() { render = orig }()

	out, err := Get(UnresolvedDependencyId).Render("dark")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Unknown dependency!") {
		t.Error("rendered output is missing the issue headline")
	}
}
