package service

import (
	"log"

	"github.com/Aashish23092/paystub-extraction/dto"
	"github.com/Aashish23092/paystub-extraction/utils/paystub"
)

// LogHooks reports parser events through the standard logger. Discrepancies
// and unresolved fields are always logged; the token trace only when verbose.
func LogHooks(verbose bool) paystub.Hooks {
	hooks := paystub.Hooks{
		Discrepancy: func(d paystub.Discrepancy) {
			log.Printf("Warning: %s: calculated net (%s) differs from statement net (%s) by %s",
				d.Document,
				dto.FormatCents(d.Calculated),
				dto.FormatCents(d.Stated),
				dto.FormatCents(d.Difference()))
		},
		Unresolved: func(e paystub.UnresolvedEvent) {
			log.Printf("Warning: %s: no value found after %q (%d tokens buffered)", e.Document, e.Path, e.Buffered)
		},
	}
	if !verbose {
		return hooks
	}

	hooks.Token = func(e paystub.TokenEvent) {
		log.Printf("%s: token %d %q", e.Document, e.Index, e.Token)
	}
	hooks.Tree = func(e paystub.TreeEvent) {
		log.Printf("%s: %s %s", e.Document, e.Kind, e.Path)
	}
	hooks.Capture = func(e paystub.CaptureEvent) {
		log.Printf("%s: capture %s = %s", e.Document, e.Field.Name, e.Field.Value)
	}
	return hooks
}
