// pattern: Functional Core

package render

import (
	"fmt"
	"strings"

	"shimctl/internal/fail"
	"shimctl/internal/shim"
)

// Target renders where a shim dispatches to.
func (s *Styles) Target(t shim.DispatchTarget) string {
	if t.HasPath() {
		return s.PathStyle().Render(t.Path)
	}
	switch t.Kind {
	case shim.SystemFallback:
		return s.NoteStyle().Render("[system]")
	case shim.PendingInstall:
		return s.WarnStyle().Render(fmt.Sprintf("[will install version %s]", t.Version))
	case shim.Unimplemented:
		return s.ErrorStyle().Render("[shim not implemented!]")
	default:
		return s.ErrorStyle().Render("[executable not installed!]")
	}
}

// Entry renders one listed shim: the bare name, or "name -> target" once resolved.
func (s *Styles) Entry(e shim.Entry) string {
	name := s.NameStyle().Render(e.Name)
	if !e.Resolved {
		return name
	}
	return name + " -> " + s.Target(e.Target)
}

// Error renders a command failure. Messages written for users are shown as
// is; anything else is flagged as unexpected and shown with its details.
func (s *Styles) Error(err error) string {
	if fail.IsUserFriendly(err) {
		return s.ErrorStyle().Render("error:") + " " + err.Error()
	}

	var sb strings.Builder
	sb.WriteString(s.ErrorStyle().Render("error:"))
	sb.WriteString(" an unexpected error occurred\n")
	sb.WriteString(s.SubtleStyle().Render("details: " + err.Error()))
	sb.WriteString("\n")
	sb.WriteString(s.SubtleStyle().Render("run with --debug and check the log file for more information"))
	return sb.String()
}

// Failure renders one shim that autoshim could not create.
func (s *Styles) Failure(f shim.Failure) string {
	return s.Error(f.Err)
}
