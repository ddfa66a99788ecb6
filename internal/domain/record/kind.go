package record

import "github.com/kailas-cloud/cyync-lookup/internal/domain/scope"

// Kind is the closed set of record types with dedicated normalization.
type Kind int

// Known kinds. KindOther carries a discovered type name instead.
const (
	KindOther Kind = iota
	KindAsset
	KindForm
	KindPage
	KindTask
)

// UnknownName is the type name of an item no classification rule matched.
const UnknownName = "unknown"

// Type is the classification outcome: a known Kind or Other(name).
type Type struct {
	kind Kind
	name string
}

var knownTypes = map[string]Kind{
	scope.Assets: KindAsset,
	scope.Forms:  KindForm,
	scope.Pages:  KindPage,
	scope.Tasks:  KindTask,
}

// Known type values.
var (
	Asset = Type{kind: KindAsset, name: scope.Assets}
	Form  = Type{kind: KindForm, name: scope.Forms}
	Page  = Type{kind: KindPage, name: scope.Pages}
	Task  = Type{kind: KindTask, name: scope.Tasks}
	// Unknown is the fallback when no rule matches.
	Unknown = Type{kind: KindOther, name: UnknownName}
)

// TypeOf resolves a type name to a known Type when possible, else Other(name).
func TypeOf(name string) Type {
	if k, ok := knownTypes[name]; ok {
		return Type{kind: k, name: name}
	}
	return Other(name)
}

// Other creates a type for a discovered, unregistered type name.
func Other(name string) Type { return Type{kind: KindOther, name: name} }

// Kind returns the kind tag.
func (t Type) Kind() Kind { return t.kind }

// Name returns the detail-tree key for the type.
func (t Type) Name() string { return t.name }

// Known reports whether the type has a dedicated transformer.
func (t Type) Known() bool { return t.kind != KindOther }

// Label returns the summary tag label.
func (t Type) Label() string {
	if t.Known() {
		return scope.Display(t.name)
	}
	return t.name
}

func (t Type) String() string { return t.name }
