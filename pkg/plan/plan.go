// Package plan replays scripted drops against an editor session.
//
// A plan is a YAML document listing drops and content edits. Cells are
// addressed by child-index paths from the root: "" is the root, "1" its
// second child, "1.0" the first child of that.
//
//	title: Landing page
//	steps:
//	  - module: header-content-footer
//	  - at: 1
//	    module: 1x2
//	  - at: 0
//	    content: Site title
package plan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/editor"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPlan is returned for malformed plan documents.
var ErrInvalidPlan = errors.New("invalid plan")

// Step is a single drop and/or content edit.
type Step struct {
	At      string  `mapstructure:"at"`
	Module  string  `mapstructure:"module"`
	Content *string `mapstructure:"content"`
}

// Plan is an ordered list of steps.
type Plan struct {
	Title string `mapstructure:"title"`
	Steps []Step `mapstructure:"steps"`
}

// Parse reads a plan document.
func Parse(r io.Reader) (*Plan, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Plan{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	pathsAsText(&doc)

	var raw map[string]any
	if err := doc.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}

	var p Plan
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		// Content like `content: 42` arrives as a number.
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &p,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}

	for i, step := range p.Steps {
		if step.Module == "" && step.Content == nil {
			return nil, fmt.Errorf("%w: step %d has neither module nor content", ErrInvalidPlan, i+1)
		}
		if _, err := ParsePath(step.At); err != nil {
			return nil, fmt.Errorf("%w: step %d: %v", ErrInvalidPlan, i+1, err)
		}
	}
	return &p, nil
}

// pathsAsText retags unquoted `at` values as strings so that paths keep
// their source text: `at: 1.0` is "1.0", not the float 1.
func pathsAsText(doc *yaml.Node) {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	steps := mappingValue(root, "steps")
	if steps == nil || steps.Kind != yaml.SequenceNode {
		return
	}
	for _, step := range steps.Content {
		if at := mappingValue(step, "at"); at != nil && at.Kind == yaml.ScalarNode && at.ShortTag() != "!!null" {
			at.Tag = "!!str"
		}
	}
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// Load reads a plan from a file.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ParsePath converts "1.0.2" into child indices.
func ParsePath(path string) ([]int, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	parts := strings.Split(path, ".")
	indices := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad path segment %q in %q", part, path)
		}
		indices[i] = n
	}
	return indices, nil
}

// Apply replays the plan. Drops go through RequestDrop, so the drop policy
// applies exactly as for interactive drops. Application stops at the first
// failing step.
func Apply(ctx context.Context, s *editor.Session, p *Plan) error {
	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		indices, err := ParsePath(step.At)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		node, ok := s.Current().Descend(indices...)
		if !ok {
			return fmt.Errorf("step %d: %w: path %q", i+1, domain.ErrNodeNotFound, step.At)
		}
		if step.Module != "" {
			if err := s.RequestDrop(ctx, node.ID(), step.Module); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if step.Content != nil {
			if err := s.SetContent(ctx, node.ID(), *step.Content); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return nil
}

// Build runs the plan on a fresh session.
func Build(ctx context.Context, p *Plan, opts ...editor.Option) (*editor.Session, error) {
	s := editor.New(opts...)
	if err := Apply(ctx, s, p); err != nil {
		return nil, err
	}
	return s, nil
}
