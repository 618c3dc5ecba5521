// Package i18n holds the CLI's translated messages. A Catalog is built once
// at startup and never mutated, so it can be shared freely.
package i18n

import (
	"fmt"
	"sort"
)

// DefaultLanguage is used when no preference is stored.
const DefaultLanguage = "fr"

// Languages lists the supported language codes in display order.
var Languages = []string{"fr", "ln", "sw", "en", "kg"}

type Catalog struct {
	messages map[string]map[string]string
	fallback string
}

// New copies messages (language -> key -> text). Lookups missing in a
// language fall back to the fallback language, then to the key itself.
func New(messages map[string]map[string]string, fallback string) *Catalog {
	c := &Catalog{messages: make(map[string]map[string]string, len(messages)), fallback: fallback}
	for lang, m := range messages {
		cp := make(map[string]string, len(m))
		for k, v := range m {
			cp[k] = v
		}
		c.messages[lang] = cp
	}
	return c
}

// Default returns the catalog of built-in messages.
func Default() *Catalog {
	return New(builtin, DefaultLanguage)
}

// T returns the message for key in lang, formatted with args when given.
func (c *Catalog) T(lang, key string, args ...any) string {
	msg, ok := c.messages[lang][key]
	if !ok {
		msg, ok = c.messages[c.fallback][key]
	}
	if !ok {
		msg = key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Supported reports whether lang is one of Languages.
func (c *Catalog) Supported(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Keys lists the keys known in lang, sorted.
func (c *Catalog) Keys(lang string) []string {
	keys := make([]string, 0, len(c.messages[lang]))
	for k := range c.messages[lang] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
