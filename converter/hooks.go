package converter

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnresolved indicates that a link could not be resolved by a hook.
var ErrUnresolved = errors.New("unresolved link reference")

// ResolutionMode controls how unresolved hook results are handled.
type ResolutionMode string

const (
	// ResolutionBestEffort continues conversion and keeps the original href.
	ResolutionBestEffort ResolutionMode = "best_effort"
	// ResolutionStrict fails conversion when a hook returns ErrUnresolved.
	ResolutionStrict ResolutionMode = "strict"
)

// LinkHook can rewrite regular links during conversion. Bibliography
// citations and anchors are never passed to it.
type LinkHook func(ctx context.Context, in LinkInput) (LinkOutput, error)

// LinkInput describes a link being rendered.
type LinkInput struct {
	Href  string
	ID    string
	Text  string
	Attrs map[string]string
}

// LinkOutput contains hook-provided link rendering data.
type LinkOutput struct {
	Href string
	// TextOnly renders the link content without a link macro.
	TextOnly bool
	Handled  bool
}

func (s *state) applyLinkHook(nodeType string, input LinkInput) (LinkOutput, bool, error) {
	if s.config.LinkHook == nil {
		return LinkOutput{}, false, nil
	}

	if err := s.ctx.Err(); err != nil {
		return LinkOutput{}, false, err
	}

	output, err := s.config.LinkHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return LinkOutput{}, false, fmt.Errorf("unresolved link reference %q: %w", input.Href, err)
			}
			s.addWarning(
				WarningUnresolvedReference,
				nodeType,
				fmt.Sprintf("unresolved link reference %q; keeping original href", input.Href),
			)
			return LinkOutput{}, false, nil
		}
		return LinkOutput{}, false, fmt.Errorf("link hook failed: %w", err)
	}

	if !output.Handled {
		return LinkOutput{}, false, nil
	}

	output.Href = strings.TrimSpace(output.Href)
	if !output.TextOnly && output.Href == "" {
		return LinkOutput{}, false, errors.New("invalid link hook output: handled link requires non-empty href unless textOnly is true")
	}

	return output, true, nil
}
