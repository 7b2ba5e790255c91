package mine

import (
	"encoding/json"
	"sort"

	"brandrank/internal/brand"
)

// maxDepth bounds the payload walk so a pathological structure cannot blow
// the stack.
const maxDepth = 64

var containerKeys = []string{"brandsInfo", "brandInfo"}

// nameKeys is checked in order within a container: canonical key first, then
// the abbreviated and localized spellings seen across API versions.
var nameKeys = []string{"brandName", "brandNm", "korBrandName", "korBrandNm"}

// JSON mines brand names out of observed network payloads. Each payload is
// decoded independently; a malformed payload is skipped and the rest still
// contribute. The walk is a full-tree scan: matching a container at one node
// does not stop recursion into its siblings or children.
func JSON(payloads [][]byte) []string {
	list := brand.NewList()
	for _, raw := range payloads {
		var root any
		if err := json.Unmarshal(raw, &root); err != nil {
			continue
		}
		walkPayload(root, 0, list)
	}
	return list.Names()
}

func walkPayload(node any, depth int, list *brand.List) {
	if depth > maxDepth {
		return
	}
	switch v := node.(type) {
	case map[string]any:
		for _, key := range containerKeys {
			if container, ok := v[key].(map[string]any); ok {
				if name, ok := nameFrom(container); ok {
					list.Add(name)
				}
			}
		}
		// Decoding loses document order, so sibling keys are visited
		// sorted to keep discovery order stable between runs.
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			walkPayload(v[key], depth+1, list)
		}
	case []any:
		for _, child := range v {
			walkPayload(child, depth+1, list)
		}
	}
}

// nameFrom takes the first name field present in the container, whether or
// not its value survives normalization.
func nameFrom(container map[string]any) (string, bool) {
	for _, key := range nameKeys {
		if s, ok := container[key].(string); ok {
			return brand.Normalize(s)
		}
	}
	return "", false
}
