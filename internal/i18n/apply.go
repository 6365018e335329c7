package i18n

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vorokhovskii-creator/felix-hub/internal/dom"
)

// MarkerAttr is the attribute carrying a translation key in rendered documents.
const MarkerAttr = "data-i18n"

// Apply paints a parsed document in lang: it sets dir and lang on the root
// element and replaces the content of every element carrying MarkerAttr.
// Inputs and textareas get their placeholder replaced when they carry one,
// otherwise their value; every other element gets its text content replaced.
func Apply(doc *html.Node, lang string) {
	if root := dom.FindFirst(doc, dom.ByTag(atom.Html)); root != nil {
		dom.SetAttr(root, "dir", Direction(lang))
		dom.SetAttr(root, "lang", lang)
	}

	for _, el := range dom.FindAll(doc, dom.ByAttr(MarkerAttr)) {
		key, _ := dom.Attr(el, MarkerAttr)
		if key == "" {
			continue
		}
		translation := T(lang, key)

		switch el.DataAtom {
		case atom.Input, atom.Textarea:
			switch {
			case dom.HasAttr(el, "placeholder"):
				dom.SetAttr(el, "placeholder", translation)
			case el.DataAtom == atom.Textarea:
				// a textarea's value is its content
				dom.SetText(el, translation)
			default:
				dom.SetAttr(el, "value", translation)
			}
		default:
			dom.SetText(el, translation)
		}
	}
}
