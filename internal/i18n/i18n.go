/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package i18n resolves UI label keys against embedded YAML catalogs.
// Unknown keys and unknown languages fall back gracefully so rendering never
// depends on a complete catalog.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

const fallbackLang = "en"

// Catalog is one language's key→label table.
type Catalog struct {
	lang    string
	entries map[string]string
}

// LoadCatalog reads the embedded catalog for lang, falling back to English
// when the language has no catalog.
func LoadCatalog(lang string) (*Catalog, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = fallbackLang
	}
	data, err := catalogFS.ReadFile(fmt.Sprintf("catalogs/%s.yaml", lang))
	if err != nil {
		if lang == fallbackLang {
			return nil, fmt.Errorf("read catalog %s: %w", lang, err)
		}
		return LoadCatalog(fallbackLang)
	}
	entries := map[string]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", lang, err)
	}
	return &Catalog{lang: lang, entries: entries}, nil
}

// Lang reports which language the catalog actually resolved to.
func (c *Catalog) Lang() string { return c.lang }

// Translate returns the label for key, or the key itself when untranslated.
func (c *Catalog) Translate(key string) string {
	if c == nil {
		return key
	}
	if v, ok := c.entries[key]; ok {
		return v
	}
	return key
}
