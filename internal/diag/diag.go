// Package diag defines the problems the resolver reports. Diagnostics never
// abort resolution; whether any of them fails a build is the caller's call.
package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/dimgrid/internal/entry"
)

// Kind discriminates diagnostics. The order matches the resolver stage that
// emits them and is used to sort output.
type Kind uint8

const (
	Undefined Kind = iota + 1
	MultiplyDefined
	KindNotAllowed
	Unresolvable
	NonFiniteMagnitude
	ExponentOverflow
	UndefinedAnnotationTarget
	WrongKindInAnnotation
	ViolatedAnnotation
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "Undefined"
	case MultiplyDefined:
		return "MultiplyDefined"
	case KindNotAllowed:
		return "KindNotAllowed"
	case Unresolvable:
		return "Unresolvable"
	case NonFiniteMagnitude:
		return "NonFiniteMagnitude"
	case ExponentOverflow:
		return "ExponentOverflow"
	case UndefinedAnnotationTarget:
		return "UndefinedAnnotationTarget"
	case WrongKindInAnnotation:
		return "WrongKindInAnnotation"
	case ViolatedAnnotation:
		return "ViolatedAnnotation"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Kind Kind
	// Idents are the offending identifiers. The first one is the subject;
	// the rest are related sites (other definitions, referencing entries).
	Idents  []entry.Ident
	Summary string
	Detail  string
	// Cycles lists the strongly connected components found among the
	// entries of an Unresolvable diagnostic, each sorted by name.
	Cycles [][]string
}

// Subject returns the name of the primary offending identifier.
func (d *Diagnostic) Subject() string {
	if len(d.Idents) == 0 {
		return ""
	}
	return d.Idents[0].Name
}

// Names returns the names of all idents, in order.
func (d *Diagnostic) Names() []string {
	out := make([]string, len(d.Idents))
	for i, id := range d.Idents {
		out[i] = id.Name
	}
	return out
}

func (d *Diagnostic) Error() string {
	if d.Detail == "" {
		return d.Kind.String() + ": " + d.Summary
	}
	return d.Kind.String() + ": " + d.Summary + ": " + d.Detail
}

// Diagnostics is an ordered list of diagnostics.
type Diagnostics []*Diagnostic

// HasErrors reports whether any diagnostic was produced. Every kind is an
// error; the method mirrors hcl.Diagnostics for callers that switch between
// both.
func (ds Diagnostics) HasErrors() bool { return len(ds) > 0 }

// OfKind returns the diagnostics of kind k.
func (ds Diagnostics) OfKind(k Kind) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Sort orders diagnostics by kind, then subject, then the full ident list,
// making output independent of input order.
func (ds Diagnostics) Sort() {
	slices.SortStableFunc(ds, func(a, b *Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.Subject(), b.Subject()),
			slices.Compare(a.Names(), b.Names()),
		)
	})
}

func (ds Diagnostics) Error() string {
	switch len(ds) {
	case 0:
		return "no diagnostics"
	case 1:
		return ds[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d problems:", len(ds))
	for _, d := range ds {
		sb.WriteString("\n- ")
		sb.WriteString(d.Error())
	}
	return sb.String()
}

// HCL converts the diagnostics for rendering with hcl.NewDiagnosticTextWriter.
// The first ident with a source range becomes the subject; related sites are
// expected to be spelled out in Detail.
func (ds Diagnostics) HCL() hcl.Diagnostics {
	out := make(hcl.Diagnostics, 0, len(ds))
	for _, d := range ds {
		hd := &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  d.Kind.String() + ": " + d.Summary,
			Detail:   d.Detail,
		}
		for _, id := range d.Idents {
			if !id.HasRange() {
				continue
			}
			rng := id.Range
			hd.Subject = &rng
			break
		}
		out = append(out, hd)
	}
	return out
}
