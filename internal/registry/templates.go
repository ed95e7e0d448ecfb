package registry

import "strings"

// CertificateKind is the closed enumeration of check categories a new
// register issue can be opened for.
type CertificateKind string

const (
	// KindJournal is a check performed for a journal submission.
	KindJournal CertificateKind = "journal"

	// KindConference is a check performed for a conference or workshop.
	KindConference CertificateKind = "conference"

	// KindCommunity is a community-initiated check of a published work.
	KindCommunity CertificateKind = "community"
)

// Kinds returns all known certificate kinds.
func Kinds() []CertificateKind {
	return []CertificateKind{KindJournal, KindConference, KindCommunity}
}

// Template is the pre-filled content for a certificate issue. Title and Body
// may contain {{token}} placeholders resolved by Fill.
type Template struct {
	Title     string
	Body      string
	Labels    []string
	Assignees []string
}

// templates maps each certificate kind to its issue template. The table is
// only reachable through TemplateFor, which keeps the lookup total.
var templates = map[CertificateKind]Template{
	KindJournal: {
		Title: "Certificate {{id}} | {{paper}}",
		Body: `**Certificate identifier**: {{id}}

**Paper**: {{paper}}

**Codechecker**: @{{checker}}

- [ ] Workflow reproduced
- [ ] Report uploaded
- [ ] Certificate number confirmed against the register
`,
		Labels: []string{"journal", "id assigned"},
	},
	KindConference: {
		Title: "Certificate {{id}} | {{paper}}",
		Body: `**Certificate identifier**: {{id}}

**Venue**: {{venue}}

**Codechecker**: @{{checker}}

- [ ] Workflow reproduced
- [ ] Report uploaded
`,
		Labels: []string{"conference", "id assigned"},
	},
	KindCommunity: {
		Title: "Certificate {{id}} | {{paper}}",
		Body: `**Certificate identifier**: {{id}}

**Work**: {{paper}}

**Codechecker**: @{{checker}}

This is a community check; see the register documentation for scope.
`,
		Labels: []string{"community", "id assigned"},
	},
}

// TemplateFor resolves the issue template for a certificate kind. Unknown
// kinds are a ConfigurationError, never a silent zero value.
func TemplateFor(kind CertificateKind) (Template, error) {
	tpl, ok := templates[kind]
	if !ok {
		return Template{}, &ConfigurationError{What: "certificate kind", Value: string(kind)}
	}
	return tpl, nil
}

// Fill substitutes {{token}} placeholders in the template's title and body.
// Unknown placeholders are left in place so a half-filled template remains
// visibly half-filled.
func (t Template) Fill(vars map[string]string) Template {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	r := strings.NewReplacer(pairs...)

	filled := t
	filled.Title = r.Replace(t.Title)
	filled.Body = r.Replace(t.Body)
	return filled
}
