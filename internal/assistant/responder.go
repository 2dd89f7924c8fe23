package assistant

import "strings"

// Entry is one canned answer with its canonical question and the keywords
// that trigger it when the substring pass misses.
type Entry struct {
	Topic    string
	Question string // canonical form, lowercase
	Keywords []string
	Answer   string
}

const disclaimer = "*Note: This is general information. For specific legal matters, please consult with a qualified lawyer.*"

// Responder maps free-text questions to canned answers. It is pure: no
// I/O, no mutation after construction, and it always returns an answer.
type Responder struct {
	entries  []Entry
	fallback string
}

// NewResponder builds a responder from an ordered entry table. The fallback
// message is derived from the table so the two cannot drift apart.
func NewResponder(entries []Entry) *Responder {
	var b strings.Builder
	b.WriteString("I can help you with these common legal questions instantly:\n\n**Available Topics:**\n")
	for _, e := range entries {
		b.WriteString("• **")
		b.WriteString(e.Topic)
		b.WriteString("** - Ask: \"")
		b.WriteString(titleQuestion(e.Question))
		b.WriteString("\"\n")
	}
	b.WriteString("\nPlease try asking one of these questions for instant answers!")
	return &Responder{entries: entries, fallback: b.String()}
}

// Respond answers a free-text question. Single pass, first match wins:
// substring check in both directions against the canonical questions, then
// a keyword scan, then the fallback topic list.
func (r *Responder) Respond(question string) string {
	norm := strings.ToLower(strings.TrimSpace(question))
	if norm == "" {
		return r.fallback
	}
	if a, ok := r.match(norm); ok {
		return a
	}
	return r.fallback
}

// ExplainTopic answers "what is <topic>" and always appends the disclaimer,
// fallback included.
func (r *Responder) ExplainTopic(topic string) string {
	norm := strings.ToLower(strings.TrimSpace("what is " + topic))
	answer, ok := r.match(norm)
	if !ok {
		answer = r.fallback
	}
	return answer + "\n\n" + disclaimer
}

func (r *Responder) match(norm string) (string, bool) {
	for _, e := range r.entries {
		if strings.Contains(norm, e.Question) || strings.Contains(e.Question, norm) {
			return e.Answer, true
		}
	}
	for _, e := range r.entries {
		for _, kw := range e.Keywords {
			if strings.Contains(norm, kw) {
				return e.Answer, true
			}
		}
	}
	return "", false
}

func titleQuestion(q string) string {
	if q == "" {
		return q
	}
	return strings.ToUpper(q[:1]) + q[1:] + "?"
}
