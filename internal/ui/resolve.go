package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/timebox/internal/planner"
	"github.com/javiermolinar/timebox/internal/task"
)

var errAmbiguousID = errors.New("ambiguous id prefix")

// resolveTask finds the task whose id equals or starts with ref.
func resolveTask(p *planner.Planner, ref string) (*task.Task, error) {
	ids := make([]string, 0)
	for _, t := range p.Tasks() {
		ids = append(ids, t.ID)
	}
	id, err := matchID(ids, ref)
	if err != nil {
		return nil, fmt.Errorf("task %q: %w", ref, err)
	}
	return p.Task(id)
}

// resolveBlock finds the block whose id equals or starts with ref.
func resolveBlock(p *planner.Planner, ref string) (*task.Block, error) {
	blocks := p.Blocks()
	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ID)
	}
	id, err := matchID(ids, ref)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			err = task.ErrBlockNotFound
		}
		return nil, fmt.Errorf("block %q: %w", ref, err)
	}
	for _, b := range blocks {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, task.ErrBlockNotFound
}

// matchID returns the id equal to ref, or the single id prefixed by it.
func matchID(ids []string, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", task.ErrTaskNotFound
	}
	var match string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", errAmbiguousID
			}
			match = id
		}
	}
	if match == "" {
		return "", task.ErrTaskNotFound
	}
	return match, nil
}
