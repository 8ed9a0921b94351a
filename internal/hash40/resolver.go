package hash40

// Status classifies the outcome of resolving input text to a hash.
type Status int

const (
	// StatusHashLiteral means the text parsed as a literal hex hash.
	StatusHashLiteral Status = iota
	// StatusInvalidHex means the text used the hex prefix convention but the
	// digits were malformed; no hash was produced.
	StatusInvalidHex
	// StatusLabelExists means the text matched a known label.
	StatusLabelExists
	// StatusLabelNotExists means the text is an unregistered label; the hash
	// was derived from the text itself. Not an error: the editor can write
	// hashes whose labels are merely unknown.
	StatusLabelNotExists
	// StatusLabelsUnavailable means the corpus could not be acquired and the
	// hash was derived from the text. Degraded, never fatal.
	StatusLabelsUnavailable
)

// Resolution is the result of resolving input text.
type Resolution struct {
	Hash   Hash40
	Status Status
}

// Valid reports whether the resolution produced a usable hash.
func (r Resolution) Valid() bool {
	return r.Status != StatusInvalidHex
}

// Resolver maps between labels and hashes over a shared read-only corpus.
type Resolver struct {
	corpus *Corpus
}

// NewResolver wraps a corpus. A nil corpus is allowed; lookups then resolve
// through derived hashes with StatusLabelsUnavailable.
func NewResolver(corpus *Corpus) *Resolver {
	return &Resolver{corpus: corpus}
}

// Resolve turns input text into a hash. Text with the hex prefix is parsed as
// a literal; anything else is treated as a label, known or derived.
func (r *Resolver) Resolve(text string) Resolution {
	if IsHexLiteral(text) {
		h, err := ParseHex(text)
		if err != nil {
			return Resolution{Status: StatusInvalidHex}
		}
		return Resolution{Hash: h, Status: StatusHashLiteral}
	}
	view, ok := r.corpus.snapshot()
	if !ok {
		return Resolution{Hash: FromLabel(text), Status: StatusLabelsUnavailable}
	}
	defer view.release()
	if h, known := view.hashOf(text); known {
		return Resolution{Hash: h, Status: StatusLabelExists}
	}
	return Resolution{Hash: FromLabel(text), Status: StatusLabelNotExists}
}

// LabelFor returns the known label for a hash, if any.
func (r *Resolver) LabelFor(h Hash40) (string, bool) {
	view, ok := r.corpus.snapshot()
	if !ok {
		return "", false
	}
	defer view.release()
	return view.nameOf(h)
}

// DisplayName renders a hash as its label when known, raw hex otherwise.
func (r *Resolver) DisplayName(h Hash40) string {
	if name, ok := r.LabelFor(h); ok {
		return name
	}
	return h.Hex()
}

// MatchPrefix returns every known label with the given prefix, ascending,
// capped at limit entries (limit <= 0 means no cap). Recomputed from scratch
// per call; the corpus sizes this serves do not warrant an incremental index.
func (r *Resolver) MatchPrefix(prefix string, limit int) []string {
	if prefix == "" || IsHexLiteral(prefix) {
		return nil
	}
	view, ok := r.corpus.snapshot()
	if !ok {
		return nil
	}
	defer view.release()
	return view.withPrefix(prefix, limit)
}

// Candidates tracks the autocomplete cursor over a prefix match list. The
// cursor starts unselected and resets whenever the underlying input text
// changes (Reset is called with a fresh match list).
type Candidates struct {
	matches []string
	cursor  int
}

// Reset installs a new match list and clears the selection.
func (c *Candidates) Reset(matches []string) {
	c.matches = matches
	c.cursor = -1
}

// Matches returns the current match list.
func (c *Candidates) Matches() []string {
	return c.matches
}

// Next advances the cursor, clamped to the last match.
func (c *Candidates) Next() {
	if len(c.matches) == 0 {
		return
	}
	if c.cursor < len(c.matches)-1 {
		c.cursor++
	}
}

// Prev retreats the cursor, clamped to the first match.
func (c *Candidates) Prev() {
	if len(c.matches) == 0 {
		return
	}
	if c.cursor > 0 {
		c.cursor--
	} else {
		c.cursor = 0
	}
}

// Current returns the selected candidate, if any.
func (c *Candidates) Current() (string, bool) {
	if c.cursor < 0 || c.cursor >= len(c.matches) {
		return "", false
	}
	return c.matches[c.cursor], true
}

// Index returns the cursor position (-1 when nothing is selected).
func (c *Candidates) Index() int {
	return c.cursor
}
