package converter

import (
	"strings"
)

// assemble prepends the document header to body and appends the author bio
// when requested.
func (s *state) assemble(body string) Result {
	title := s.currentTitle()
	if title == "" {
		s.addWarning(WarningMissingTitle, "h1", "no title configured or found in the document")
	}

	summary := s.config.Summary
	if summary == "" {
		summary = s.summary
	}

	var sb strings.Builder
	sb.WriteString("= " + title + "\n")
	if s.config.Author != "" {
		sb.WriteString(":author: " + s.config.Author + "\n")
	}
	sb.WriteString(":figure-caption!:\n")
	sb.WriteString(":imagesdir: " + s.config.ImageDirectory + "\n\n")
	if summary != "" {
		sb.WriteString("[.lead]\n" + summary + "\n\n")
	}
	sb.WriteString(strings.TrimLeft(body, "\n"))

	if s.config.IncludeBio {
		if bio := strings.TrimSpace(resolve(s.bio)); bio != "" {
			sb.WriteString("\n[.bio]\n****\n" + bio + "\n****\n")
		}
	}

	return Result{
		AsciiDoc: cleanup(sb.String()),
		Body:     body,
		Title:    title,
		Author:   s.config.Author,
		Summary:  summary,
		Renames:  s.renames,
		Warnings: s.warnings,
	}
}

// cleanup removes the passthrough escape in front of cross references and
// normalizes the text to end in a single newline.
func cleanup(text string) string {
	text = strings.ReplaceAll(text, "pass:[[]<<", "[<<")
	text = strings.TrimRight(text, " \t\n")
	if text == "" {
		return ""
	}
	return text + "\n"
}
