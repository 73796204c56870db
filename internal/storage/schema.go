/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// reportSchema is the JSON Schema every report.json must satisfy. It guards
// the structural invariants a loaded file relies on; semantic checks (page
// bounds, minimum sizes) stay with the interaction layer.
const reportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "ArgoBooks report definition",
  "type": "object",
  "required": ["title", "pageSize", "orientation", "pageCount", "elements"],
  "properties": {
    "title": {"type": "string"},
    "pageSize": {"enum": ["A4", "A5", "Letter"]},
    "orientation": {"enum": ["portrait", "landscape"]},
    "margins": {
      "type": "object",
      "properties": {
        "left": {"type": "number", "minimum": 0},
        "top": {"type": "number", "minimum": 0},
        "right": {"type": "number", "minimum": 0},
        "bottom": {"type": "number", "minimum": 0}
      }
    },
    "background": {"type": "string", "pattern": "^#([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$"},
    "showHeader": {"type": "boolean"},
    "showFooter": {"type": "boolean"},
    "headerText": {"type": "string"},
    "pageCount": {"type": "integer", "minimum": 1},
    "gridSize": {"type": "number", "minimum": 0},
    "showGrid": {"type": "boolean"},
    "snapToGrid": {"type": "boolean"},
    "hasManualChartLayout": {"type": "boolean"},
    "nextId": {"type": "integer", "minimum": 0},
    "elements": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "kind", "x", "y", "width", "height"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "kind": {"enum": ["chart", "table", "label", "image", "dateRange", "summary"]},
          "x": {"type": "number"},
          "y": {"type": "number"},
          "width": {"type": "number", "minimum": 0},
          "height": {"type": "number", "minimum": 0},
          "zOrder": {"type": "integer"},
          "pageNumber": {"type": "integer", "minimum": 1},
          "visible": {"type": "boolean"},
          "locked": {"type": "boolean"}
        }
      }
    }
  }
}`

// ValidateManifest checks raw report.json bytes against the schema.
func ValidateManifest(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(reportSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var sb strings.Builder
	for i, e := range result.Errors() {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.String())
	}
	return errors.New("report definition invalid: " + sb.String())
}
