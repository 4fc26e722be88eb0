package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agext/levenshtein"

	"orderintake/internal/config"
	"orderintake/internal/domain"
	"orderintake/internal/port"
)

// Candidate is a field candidate with its supporting evidence. A zero
// evidence slice means the field was not found; downstream scores that
// as zero confidence rather than raising an error.
type Candidate struct {
	Value    string
	Evidence []domain.Evidence
}

// DateCandidate is a delivery date candidate.
type DateCandidate struct {
	Value    time.Time
	Found    bool
	Evidence []domain.Evidence
}

// ItemCandidate is a line item candidate. Product is nil when the SKU
// could not be resolved against the catalog.
type ItemCandidate struct {
	SKU         string
	Quantity    int
	Product     *domain.Product
	Evidence    []domain.Evidence
	Suggestions []string
}

// Candidates is the full extraction output for one email. Items keep
// their order of appearance; duplicate SKU lines are distinct candidates.
type Candidates struct {
	Email   Candidate
	Address Candidate
	Date    DateCandidate
	Items   []ItemCandidate
	Notes   string
}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	skuRe   = regexp.MustCompile(`(?i)\b[A-Z]{2,3}-\d{3,4}\b`)

	streetTokenRe = regexp.MustCompile(`(?i)\b(street|st|avenue|ave|road|rd|lane|ln|blvd|boulevard|drive|dr|way|court|ct|plaza|circle|parkway|square|suite|apt|unit|po box)\b`)

	qtyLeadingXRe  = regexp.MustCompile(`^\s*(\d+)\s*[xX]\b`)
	qtyTrailingXRe = regexp.MustCompile(`\b[xX]\s*(\d+)\b`)
	qtyWordRe      = regexp.MustCompile(`(?i)\bqty[:.\s]*(\d+)\b`)
	qtyUnitRe      = regexp.MustCompile(`(?i)\b(\d+)\s*(?:pcs|pieces|units?)\b`)
	leadingNumRe   = regexp.MustCompile(`^\s*(\d+)\b`)

	notesRe   = regexp.MustCompile(`(?im)^\s*notes?\s*[:\-]\s*(.+)$`)
	letKnowRe = regexp.MustCompile(`(?im)^\s*((?:please\s+)?let me know\b.*)$`)

	// cleanups applied to a line before fuzzy description matching
	nonProductCharsRe = regexp.MustCompile(`[\d*.,:;()\[\]-]+`)
	fillerWordsRe     = regexp.MustCompile(`(?i)\b(x|of|need|want|order|please|send|include)\b`)
)

// addressLabels mark a labeled delivery address block, strongest signal first.
var addressLabels = []string{
	"ship them to", "please deliver to", "delivery address",
	"ship to", "deliver to", "send to", "recipient", "address",
}

// dateLabels mark lines likely to carry the requested delivery date.
var dateLabels = []string{
	"required delivery date", "requested delivery date", "delivery date",
	"deliver before", "deliver on", "needed on", "arrive by",
	"no later than", "expected on", "deadline", "date", "before", "by",
}

// nonProductPhrases disqualify a quantity-bearing line from becoming an
// unresolved item; they show up in delivery and sign-off prose.
var nonProductPhrases = []string{
	"deliver", "let me know", "pricing", "availability",
	"thanks", "thank you", "regards", "sincerely",
}

var levParams = levenshtein.NewParams()

// Extractor finds candidate values with evidence. It decides nothing:
// scoring and validation happen downstream.
type Extractor struct {
	cfg config.ExtractConfig
}

// NewExtractor creates an Extractor with the given policy values.
func NewExtractor(cfg config.ExtractConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract scans a normalized email against one catalog snapshot.
func (e *Extractor) Extract(catalog port.CatalogSnapshot, email *NormalizedEmail) *Candidates {
	lines := strings.Split(email.Body, "\n")
	consumed := make([]bool, len(lines))

	out := &Candidates{}
	out.Email = extractEmail(email)
	out.Address = extractAddress(lines, consumed)
	out.Date = extractDate(lines, consumed, email)
	out.Notes = extractNotes(email.Body)

	for i, line := range lines {
		if consumed[i] || strings.TrimSpace(line) == "" {
			continue
		}
		if item, ok := e.scanItemLine(catalog, line); ok {
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// extractEmail prefers the sender header; failing that, the first
// RFC-shaped address in the body.
func extractEmail(email *NormalizedEmail) Candidate {
	if email.Sender != "" {
		return Candidate{
			Value:    email.Sender,
			Evidence: []domain.Evidence{{Kind: domain.EvidenceHeaderEmail, Detail: email.Sender}},
		}
	}
	if m := emailRe.FindString(email.Body); m != "" {
		return Candidate{
			Value:    m,
			Evidence: []domain.Evidence{{Kind: domain.EvidenceBodyPatternEmail, Detail: m}},
		}
	}
	return Candidate{}
}

// extractAddress looks for a labeled block first, then falls back to
// heuristic detection of an address-shaped line.
func extractAddress(lines []string, consumed []bool) Candidate {
	for i, line := range lines {
		lower := asciiLower(line)
		for _, label := range addressLabels {
			idx := strings.Index(lower, label)
			if idx < 0 {
				continue
			}
			rest := strings.Trim(line[idx+len(label):], " \t:–-")
			if rest != "" {
				consumed[i] = true
				return Candidate{
					Value:    rest,
					Evidence: []domain.Evidence{{Kind: domain.EvidenceLabeledAddress, Detail: label}},
				}
			}
			// Label on its own line: the block spans following lines
			// until a blank line or another label.
			var block []string
			for j := i + 1; j < len(lines) && len(block) < 3; j++ {
				next := strings.TrimSpace(lines[j])
				if next == "" || hasAnyLabel(asciiLower(next)) {
					break
				}
				block = append(block, next)
				consumed[j] = true
			}
			if len(block) > 0 {
				consumed[i] = true
				return Candidate{
					Value:    strings.Join(block, ", "),
					Evidence: []domain.Evidence{{Kind: domain.EvidenceLabeledAddress, Detail: label}},
				}
			}
		}
	}

	// Heuristic fallback: an unconsumed line with a street-like token
	// that does not look like an item line.
	for i, line := range lines {
		if consumed[i] {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || skuRe.MatchString(trimmed) || qtyUnitRe.MatchString(trimmed) || qtyWordRe.MatchString(trimmed) {
			continue
		}
		if streetTokenRe.MatchString(trimmed) && strings.Contains(trimmed, ",") {
			consumed[i] = true
			return Candidate{
				Value:    trimmed,
				Evidence: []domain.Evidence{{Kind: domain.EvidenceHeuristicAddress, Detail: trimmed}},
			}
		}
	}
	return Candidate{}
}

func hasAnyLabel(lower string) bool {
	for _, label := range addressLabels {
		if strings.Contains(lower, label) {
			return true
		}
	}
	for _, label := range dateLabels {
		if strings.HasPrefix(lower, label) {
			return true
		}
	}
	return false
}

// extractDate scans labeled lines first, then the whole body.
func extractDate(lines []string, consumed []bool, email *NormalizedEmail) DateCandidate {
	for i, line := range lines {
		if consumed[i] {
			continue
		}
		lower := asciiLower(line)
		for _, label := range dateLabels {
			if !strings.Contains(lower, label) {
				continue
			}
			if t, ev, ok := findDate(line, email.ReceivedAt); ok {
				consumed[i] = true
				return DateCandidate{Value: t, Found: true, Evidence: []domain.Evidence{ev}}
			}
		}
	}
	for i, line := range lines {
		if consumed[i] {
			continue
		}
		if t, ev, ok := findDate(line, email.ReceivedAt); ok {
			return DateCandidate{Value: t, Found: true, Evidence: []domain.Evidence{ev}}
		}
	}
	return DateCandidate{}
}

func extractNotes(body string) string {
	if m := notesRe.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := letKnowRe.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// scanItemLine turns one line into an item candidate when it carries a
// quantity token and a product reference.
func (e *Extractor) scanItemLine(catalog port.CatalogSnapshot, line string) (ItemCandidate, bool) {
	qty, marker := findQuantity(line)

	if sku := skuRe.FindString(line); sku != "" {
		sku = strings.ToUpper(sku)
		if qty <= 0 {
			qty = 1
		}
		if p, ok := catalog.BySKU(sku); ok {
			return ItemCandidate{
				SKU:      p.SKU,
				Quantity: qty,
				Product:  p,
				Evidence: []domain.Evidence{{Kind: domain.EvidenceExactSKU, Detail: sku}},
			}, true
		}
		return ItemCandidate{
			SKU:         sku,
			Quantity:    qty,
			Evidence:    []domain.Evidence{{Kind: domain.EvidenceUnresolved, Detail: sku}},
			Suggestions: e.suggest(catalog, productCandidateText(line)),
		}, true
	}

	candidate := productCandidateText(line)
	if len(candidate) < 3 {
		return ItemCandidate{}, false
	}

	bestSKU, bestDesc, bestSim := bestDescriptionMatch(catalog, candidate)
	if bestSim >= e.cfg.SimilarityFloor {
		if qty <= 0 {
			qty = 1
		}
		p, _ := catalog.BySKU(bestSKU)
		return ItemCandidate{
			SKU:      bestSKU,
			Quantity: qty,
			Product:  p,
			Evidence: []domain.Evidence{{
				Kind:       domain.EvidenceFuzzyDescription,
				Detail:     bestDesc,
				Similarity: bestSim,
			}},
		}, true
	}

	// A quantity marker without any resolution still yields an item:
	// the quantity is reported and the SKU stays unknown.
	if marker && qty > 0 && !containsNonProductPhrase(line) {
		return ItemCandidate{
			Quantity:    qty,
			Evidence:    []domain.Evidence{{Kind: domain.EvidenceUnresolved, Detail: candidate}},
			Suggestions: e.suggest(catalog, candidate),
		}, true
	}
	return ItemCandidate{}, false
}

// findQuantity returns the quantity on a line and whether it came from
// an explicit marker (x, qty, pcs/units) rather than a bare leading int.
func findQuantity(line string) (int, bool) {
	for _, re := range []*regexp.Regexp{qtyLeadingXRe, qtyTrailingXRe, qtyWordRe, qtyUnitRe} {
		if m := re.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	if m := leadingNumRe.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, false
		}
	}
	return 0, false
}

func productCandidateText(line string) string {
	s := skuRe.ReplaceAllString(line, " ")
	s = qtyWordRe.ReplaceAllString(s, " ")
	s = qtyUnitRe.ReplaceAllString(s, " ")
	s = nonProductCharsRe.ReplaceAllString(s, " ")
	s = fillerWordsRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// asciiLower lowercases ASCII letters only, preserving byte offsets so
// an index found in the result is valid in the original line. Unicode
// case mapping can change byte lengths (İ, Ⱥ), which would make such an
// index slice the wrong span or run past the end. Labels are ASCII.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func containsNonProductPhrase(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range nonProductPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func bestDescriptionMatch(catalog port.CatalogSnapshot, candidate string) (sku, desc string, sim float64) {
	lower := strings.ToLower(candidate)
	for _, entry := range catalog.Descriptions() {
		s := levenshtein.Similarity(lower, strings.ToLower(entry.Description), levParams)
		if s > sim {
			sku, desc, sim = entry.SKU, entry.Description, s
		}
	}
	return sku, desc, sim
}

// suggest returns up to two catalog descriptions above the suggestion
// floor, best first, for unresolved items.
func (e *Extractor) suggest(catalog port.CatalogSnapshot, candidate string) []string {
	if candidate == "" {
		return nil
	}
	lower := strings.ToLower(candidate)
	type scored struct {
		desc string
		sim  float64
	}
	var matches []scored
	for _, entry := range catalog.Descriptions() {
		s := levenshtein.Similarity(lower, strings.ToLower(entry.Description), levParams)
		if s >= e.cfg.SuggestionFloor {
			matches = append(matches, scored{desc: entry.Description, sim: s})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].sim > matches[j].sim })
	var out []string
	for i := 0; i < len(matches) && i < 2; i++ {
		out = append(out, matches[i].desc)
	}
	return out
}
