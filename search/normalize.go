package search

import (
	"fmt"
	"regexp"
	"strings"
)

// PayloadKind is a closed enum of the payload shapes a search provider is
// known to return. Classification is structural, never content based.
type PayloadKind int

const (
	// KindUnstructured is the catch-all for payloads matching no known shape;
	// the payload is stringified and scanned for URLs.
	KindUnstructured PayloadKind = iota
	// KindResultsList is a map carrying a "results" list of item maps.
	KindResultsList
	// KindAnswerWithCitations is a map carrying an "answer" plus "citations".
	KindAnswerWithCitations
	// KindRawList is a bare list of item maps with varying field names.
	KindRawList
)

// String returns the string representation of the payload kind.
func (k PayloadKind) String() string {
	switch k {
	case KindResultsList:
		return "results_list"
	case KindAnswerWithCitations:
		return "answer_with_citations"
	case KindRawList:
		return "raw_list"
	case KindUnstructured:
		return "unstructured"
	default:
		return "unknown"
	}
}

const (
	noContent = "No content available"
	noURL     = "No source URL available"
)

// Field names probed on raw list items, in priority order.
var (
	contentKeys = []string{"content", "snippet", "text", "description"}
	urlKeys     = []string{"url", "link", "href", "source"}
)

var urlRe = regexp.MustCompile(`https?://[^\s]+`)

// Classify determines the payload kind by structure alone.
func Classify(payload any) PayloadKind {
	switch p := payload.(type) {
	case map[string]any:
		if _, ok := p["results"]; ok {
			return KindResultsList
		}
		_, hasAnswer := p["answer"]
		_, hasCitations := p["citations"]
		if hasAnswer && hasCitations {
			return KindAnswerWithCitations
		}
		return KindUnstructured
	case []any:
		return KindRawList
	default:
		return KindUnstructured
	}
}

// Normalize converts a raw search payload into a Result whose narrative
// contains one entry per source item and preserves every URL verbatim.
// Items missing content or a URL get the fixed placeholder strings.
func Normalize(payload any) Result {
	kind := Classify(payload)
	switch kind {
	case KindResultsList:
		items, _ := payload.(map[string]any)["results"].([]any)
		return normalizeItems(kind, items, false)
	case KindAnswerWithCitations:
		return normalizeAnswer(payload.(map[string]any))
	case KindRawList:
		return normalizeItems(kind, payload.([]any), true)
	default:
		return normalizeUnstructured(payload)
	}
}

// normalizeItems renders a list of item maps. Probing of alternate field
// names is only done for raw lists; the canonical results list knows its
// content/snippet/url fields.
func normalizeItems(kind PayloadKind, items []any, probe bool) Result {
	res := Result{Kind: kind}
	var sb strings.Builder
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			fmt.Fprintf(&sb, "\n\n- Result %d: %s", i+1, stringify(item))
			res.Sources = append(res.Sources, Source{Content: stringify(item)})
			continue
		}

		content := noContent
		url := noURL
		if probe {
			for _, k := range contentKeys {
				if v, ok := m[k]; ok {
					content = stringify(v)
					break
				}
			}
			for _, k := range urlKeys {
				if v, ok := m[k]; ok {
					url = stringify(v)
					break
				}
			}
		} else {
			if v, ok := m["content"]; ok {
				content = stringify(v)
			} else if v, ok := m["snippet"]; ok {
				content = stringify(v)
			}
			if v, ok := m["url"]; ok {
				url = stringify(v)
			}
		}

		fmt.Fprintf(&sb, "\n\n- %s\n🔗 SOURCE: %s", content, url)
		res.Sources = append(res.Sources, Source{Content: content, URL: url})
	}
	res.Narrative = sb.String()
	return res
}

// normalizeAnswer renders the answer followed by a sources block listing each
// citation.
func normalizeAnswer(p map[string]any) Result {
	res := Result{Kind: KindAnswerWithCitations}
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n\n%s", stringify(p["answer"]))
	sb.WriteString("\n\n🔗 SOURCES:")

	citations, _ := p["citations"].([]any)
	for _, citation := range citations {
		m, ok := citation.(map[string]any)
		if !ok {
			fmt.Fprintf(&sb, "\n- %s", stringify(citation))
			res.Sources = append(res.Sources, Source{Content: stringify(citation)})
			continue
		}
		url := "No URL available"
		title := "Untitled source"
		if v, ok := m["url"]; ok {
			url = stringify(v)
		}
		if v, ok := m["title"]; ok {
			title = stringify(v)
		}
		fmt.Fprintf(&sb, "\n- %s: %s", title, url)
		res.Sources = append(res.Sources, Source{Title: title, URL: url})
	}
	res.Narrative = sb.String()
	return res
}

// normalizeUnstructured stringifies the payload and scans it for URLs.
func normalizeUnstructured(payload any) Result {
	res := Result{Kind: KindUnstructured}
	text := stringify(payload)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n\n%s", text)

	if urls := urlRe.FindAllString(text, -1); len(urls) > 0 {
		sb.WriteString("\n\n🔗 SOURCES FOUND:")
		for _, url := range urls {
			fmt.Fprintf(&sb, "\n- %s", url)
			res.Sources = append(res.Sources, Source{URL: url})
		}
	}
	res.Narrative = sb.String()
	return res
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
