package resolver

import (
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/dimgrid/internal/diag"
	"github.com/specialistvlad/dimgrid/internal/entry"
)

// checkAnnotations compares every resolved item that declares an expected
// dimension against that dimension. Items failing the check are removed from
// the output. Targets that were dropped by an earlier stage are skipped; they
// have been reported already.
func (r *resolver) checkAnnotations() {
	var failed int
	for _, name := range slices.Sorted(maps.Keys(r.items)) {
		e := r.unique(name)
		ann := e.Annotation()
		if ann == nil {
			continue
		}
		if d := r.annotationProblem(e, *ann); d != nil {
			r.report(d)
			delete(r.items, name)
			failed++
		}
	}
	r.logger.Debug("Stage complete.", "stage", "annotations", "dropped", failed)
}

func (r *resolver) annotationProblem(e entry.Entry, ann entry.Ident) *diag.Diagnostic {
	name := e.Name().Name
	idents := []entry.Ident{e.Name(), ann}

	defs := r.declared[ann.Name]
	switch {
	case len(defs) == 0:
		return &diag.Diagnostic{
			Kind:    diag.UndefinedAnnotationTarget,
			Idents:  idents,
			Summary: fmt.Sprintf("%s %q is annotated with undefined dimension %q", e.Kind(), name, ann.Name),
		}
	case len(defs) > 1:
		return nil
	}

	target := defs[0]
	if target.Kind() != entry.KindDimension {
		return &diag.Diagnostic{
			Kind:    diag.WrongKindInAnnotation,
			Idents:  idents,
			Summary: fmt.Sprintf("%s %q is annotated with %s %q, not a dimension", e.Kind(), name, target.Kind(), ann.Name),
		}
	}

	want, ok := r.resolved[ann.Name]
	if !ok {
		return nil
	}
	got := r.resolved[name]
	if want.Dim.Equal(got.Dim) {
		return nil
	}
	return &diag.Diagnostic{
		Kind:    diag.ViolatedAnnotation,
		Idents:  idents,
		Summary: fmt.Sprintf("%s %q does not have dimension %q", e.Kind(), name, ann.Name),
		Detail:  fmt.Sprintf("expected %s, found %s", want.Dim, got.Dim),
	}
}
