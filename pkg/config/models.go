package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownModel is returned when a model label has no registry entry.
var ErrUnknownModel = errors.New("unknown model")

// ModelRegistry maps human-readable model labels to provider model identifiers.
type ModelRegistry map[string]string

// DefaultModels returns a fresh copy of the built-in registry.
func DefaultModels() ModelRegistry {
	return ModelRegistry{
		"GPT-1":                  "text-gpt-1-en-12b",
		"GPT-2":                  "text-gpt-2-en-117b",
		"GPT-3":                  "text-davinci-002",
		"GPT-3.5":                "text-davinci-003",
		"GPT-3.5 Turbo Instruct": "gpt-3.5-turbo-instruct",
		"GPT-4":                  "text-davinci-004",
		"Jurassic-1 Jumbo":       "text-jurassic-1-jumbo-en-175b",
		"Megatron-Turing NLG":    "text-megatron-turing-nlg-345m-355b",
		"WuDao 2.0":              "text-wudao-2-0-en-1.76T",
	}
}

// Lookup resolves label to its provider identifier.
func (r ModelRegistry) Lookup(label string) (string, error) {
	id, ok := r[label]
	if !ok || strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, label)
	}
	return id, nil
}

// Labels returns the registered labels in sorted order.
func (r ModelRegistry) Labels() []string {
	labels := make([]string, 0, len(r))
	for label := range r {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Clone returns an independent copy, optionally extended with extra entries.
func (r ModelRegistry) Clone(extra map[string]string) ModelRegistry {
	out := make(ModelRegistry, len(r)+len(extra))
	for label, id := range r {
		out[label] = id
	}
	for label, id := range extra {
		label = strings.TrimSpace(label)
		id = strings.TrimSpace(id)
		if label == "" || id == "" {
			continue
		}
		out[label] = id
	}
	return out
}
