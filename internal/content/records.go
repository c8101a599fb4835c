package content

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Project is one of the 52 weekly showcase entries. JSON field names match
// the arrays the static site and admin panel exchange, so they must not
// change.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Thumbnails  []string `json:"thumbnails"`
	Link        string   `json:"link"`
	Week        int      `json:"week"`
	Year        int      `json:"year"`
}

// Experiment is an entry in the horizontal-scroll gallery. Images holds
// zero-based indices resolved to /images/experiments2/{NN}-{index+1}.webp at
// render time rather than literal paths.
type Experiment struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Tags   []string `json:"tags"`
	Tokens int      `json:"tokens"`
	Link   string   `json:"link"`
	Text   string   `json:"text"`
	Images []int    `json:"images"`
	Video  string   `json:"video,omitempty"`
}

const (
	ProjectIDPrefix    = "project-"
	ExperimentIDPrefix = "exp-"
)

var numericSuffix = regexp.MustCompile(`-(\d+)$`)

// Validate checks the minimum fields the admin save endpoint requires.
// Week and year arrive as JSON numbers; the typed decode already guarantees
// they are numeric, so only presence of id and title is checked here.
func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("project missing id")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("project %s missing title", p.ID)
	}
	return nil
}

// Validate checks the minimum fields for an experiment record.
func (e Experiment) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("experiment missing id")
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("experiment %s missing title", e.ID)
	}
	return nil
}

// Number extracts the numeric portion of the project id, falling back to the
// week field when the id does not carry one.
func (p Project) Number() (int, bool) {
	if n, ok := idNumber(p.ID, ProjectIDPrefix); ok {
		return n, true
	}
	if p.Week > 0 {
		return p.Week, true
	}
	return 0, false
}

// Number extracts the numeric portion of the experiment id.
func (e Experiment) Number() (int, bool) {
	return idNumber(e.ID, ExperimentIDPrefix)
}

func idNumber(id, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeTags removes duplicate tags, preserving first-seen order. Matching
// is case-sensitive and exact, as in the admin UI.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return tags
	}
	seen := make(map[string]struct{}, len(tags))
	out := tags[:0]
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// NextProjectID returns the id the add action assigns: the highest existing
// numeric suffix plus one, zero-padded to two digits.
func NextProjectID(projects []Project) string {
	max := 0
	for _, p := range projects {
		if n, ok := idNumber(p.ID, ProjectIDPrefix); ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%02d", ProjectIDPrefix, max+1)
}

// NextExperimentID returns the next sequential experiment id.
func NextExperimentID(experiments []Experiment) string {
	max := 0
	for _, e := range experiments {
		if n, ok := idNumber(e.ID, ExperimentIDPrefix); ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%02d", ExperimentIDPrefix, max+1)
}

// ParseAssetSuffix extracts the numeric suffix from an asset filename such as
// "03-2.webp", returning zero when none is present.
func ParseAssetSuffix(name string) int {
	base := strings.TrimSuffix(name, ".webp")
	match := numericSuffix.FindStringSubmatch(base)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}
