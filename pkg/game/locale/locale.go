// Package locale loads the message catalog for HUD and menu text.
package locale

import (
	"log"
	"os"
	"path/filepath"

	"github.com/leonelquinteros/gotext"
)

const (
	// DefaultDir holds one directory of catalogs per language.
	DefaultDir = "locales"
	// Domain is the catalog file name without extension.
	Domain = "default"
)

// Init points gotext at dir/lang/default.po. Without a catalog the English
// message IDs are shown as they are.
func Init(dir, lang string) {
	if lang == "" {
		lang = "en"
	}
	gotext.Configure(dir, lang, Domain)
	if !HasCatalog(dir, lang) {
		log.Printf("No %s catalog in %s, using built-in text", lang, dir)
	}
}

// HasCatalog reports whether a catalog for lang exists under dir.
func HasCatalog(dir, lang string) bool {
	for _, p := range []string{
		filepath.Join(dir, lang, Domain+".po"),
		filepath.Join(dir, lang, "LC_MESSAGES", Domain+".po"),
	} {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

// Word translates a message id picked at run time, such as a weather or
// emotion name, without treating it as a format.
func Word(id string) string {
	return lookup(id)
}

var lookup = gotext.Get
