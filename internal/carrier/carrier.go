package carrier

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultLogo is shown for carriers we have no artwork for.
const DefaultLogo = "/images/operadoras/default-logo.png"

// Rule maps keyword fragments to a carrier id. An empty ID marks a carrier
// that is recognised but has no pricing relationship.
type Rule struct {
	ID       string   `yaml:"id" json:"id"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Info is the presentation data for a known carrier.
type Info struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Logo string `yaml:"logo" json:"logo"`
}

// DefaultRules is evaluated top to bottom and the first hit wins. Keep
// broader fragments below the specific ones they would shadow.
var DefaultRules = []Rule{
	{ID: "amil", Keywords: []string{"amil"}},
	{ID: "sulamerica", Keywords: []string{"sulamerica", "sul america"}},
	{ID: "bradesco", Keywords: []string{"bradesco"}},
	{ID: "porto", Keywords: []string{"porto"}},
	{ID: "assim", Keywords: []string{"assim"}},
	{ID: "levesaude", Keywords: []string{"leve"}},
	{ID: "unimed", Keywords: []string{"unimed"}},
	{ID: "preventsenior", Keywords: []string{"prevent"}},
	{ID: "medsenior", Keywords: []string{"medsenior", "med senior"}},
	{ID: "", Keywords: []string{"golden"}},
}

var DefaultInfo = []Info{
	{ID: "amil", Name: "Amil", Logo: "/images/operadoras/amil-logo.png"},
	{ID: "sulamerica", Name: "SulAmérica", Logo: "/images/operadoras/sulamerica-logo.png"},
	{ID: "bradesco", Name: "Bradesco Saúde", Logo: "/images/operadoras/bradesco-logo.png"},
	{ID: "porto", Name: "Porto Saúde", Logo: "/images/operadoras/portosaude-logo.png"},
	{ID: "assim", Name: "Assim Saúde", Logo: "/images/operadoras/assimsaude-logo.png"},
	{ID: "levesaude", Name: "Leve Saúde", Logo: "/images/operadoras/levesaude-logo.png"},
	{ID: "unimed", Name: "Unimed FERJ", Logo: "/images/operadoras/unimed-logo.png"},
	{ID: "preventsenior", Name: "Prevent Senior", Logo: "/images/operadoras/preventsenior-logo.png"},
	{ID: "medsenior", Name: "MedSênior", Logo: "/images/operadoras/medsenior-logo.png"},
}

// Resolver turns free-text carrier names into canonical ids.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	rules []Rule
	info  map[string]Info
	order []string
}

func NewResolver(rules []Rule, info []Info) *Resolver {
	r := &Resolver{
		rules: make([]Rule, 0, len(rules)),
		info:  make(map[string]Info, len(info)),
	}

	for _, rule := range rules {
		kws := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			if kw = Normalize(kw); kw != "" {
				kws = append(kws, kw)
			}
		}
		r.rules = append(r.rules, Rule{ID: rule.ID, Keywords: kws})
	}

	for _, in := range info {
		if _, dup := r.info[in.ID]; !dup {
			r.order = append(r.order, in.ID)
		}
		r.info[in.ID] = in
	}

	return r
}

// Default returns a resolver over the built-in tables.
func Default() *Resolver {
	return NewResolver(DefaultRules, DefaultInfo)
}

// Resolve returns the canonical id for name, or "" when the name is empty,
// unknown, or belongs to a carrier without pricing. "" means "do not exclude".
func (r *Resolver) Resolve(name string) string {
	n := Normalize(name)
	if n == "" {
		return ""
	}

	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(n, kw) {
				return rule.ID
			}
		}
	}
	return ""
}

// Lookup returns presentation info for id.
func (r *Resolver) Lookup(id string) (Info, bool) {
	in, ok := r.info[id]
	return in, ok
}

// DisplayName prefers the known name and falls back to id.
func (r *Resolver) DisplayName(id string) string {
	if in, ok := r.info[id]; ok && in.Name != "" {
		return in.Name
	}
	return id
}

func (r *Resolver) Logo(id string) string {
	if in, ok := r.info[id]; ok && in.Logo != "" {
		return in.Logo
	}
	return DefaultLogo
}

// Known lists carriers in table order.
func (r *Resolver) Known() []Info {
	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.info[id])
	}
	return out
}

// Normalize strips diacritics, lower-cases and trims s.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
