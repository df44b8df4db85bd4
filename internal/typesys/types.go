// Package typesys defines the descriptors of type-system facts that apideps
// consumes and the Provider capability that supplies them.
package typesys

import (
	"fmt"
	"strings"
)

// TypeID identifies a type. Two TypeIDs denote the same type if and only if
// they are equal. The encoding is owned by the Provider that issued it.
type TypeID string

// String returns the qualified name of the type.
func (t TypeID) String() string {
	return string(t)
}

// Namespace is the grouping key of a type (package, module or namespace).
type Namespace string

// Visibility describes who may use a member.
type Visibility int

const (
	VisibilityOther     Visibility = iota // private, package-private, unexported
	VisibilityExported                    // usable by any code
	VisibilityProtected                   // usable by descendants only
)

// String returns the lower-case name of the visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityExported:
		return "exported"
	case VisibilityProtected:
		return "protected"
	default:
		return "other"
	}
}

// ParseVisibility maps a visibility keyword to a Visibility. It accepts the
// Go-flavoured names as well as the Java modifiers used by schema files.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exported", "public":
		return VisibilityExported, nil
	case "protected":
		return VisibilityProtected, nil
	case "other", "private", "package", "unexported", "":
		return VisibilityOther, nil
	default:
		return VisibilityOther, fmt.Errorf("unknown visibility %q", s)
	}
}

// MemberKind distinguishes constructors, methods and fields.
type MemberKind int

const (
	MemberConstructor MemberKind = iota
	MemberMethod
	MemberField
)

// String returns the lower-case name of the member kind.
func (k MemberKind) String() string {
	switch k {
	case MemberConstructor:
		return "constructor"
	case MemberMethod:
		return "method"
	case MemberField:
		return "field"
	default:
		return "unknown"
	}
}

// ParseMemberKind maps a kind keyword to a MemberKind.
func ParseMemberKind(s string) (MemberKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "constructor", "ctor":
		return MemberConstructor, nil
	case "method", "func":
		return MemberMethod, nil
	case "field":
		return MemberField, nil
	default:
		return MemberMethod, fmt.Errorf("unknown member kind %q", s)
	}
}

// Member describes a constructor, method or field declared on exactly one type.
type Member struct {
	Declaring  TypeID
	Kind       MemberKind
	Name       string
	Signature  string // distinguishes overloads; empty for fields
	Visibility Visibility
	Params     []TypeID // constructors and methods
	Throws     []TypeID // constructors and methods
	Result     TypeID   // methods; empty when the method returns nothing
	FieldType  TypeID   // fields
	// Extra lists further result or value types when a member mentions more
	// than one, such as the additional results of a Go function.
	Extra []TypeID
}

// MemberKey is the identity of a member declaration.
type MemberKey struct {
	Declaring TypeID
	Kind      MemberKind
	Name      string
	Signature string
}

// Key returns the identity of m. Members with equal keys are the same
// declaration, however many times a provider enumerates them.
func (m Member) Key() MemberKey {
	return MemberKey{
		Declaring: m.Declaring,
		Kind:      m.Kind,
		Name:      m.Name,
		Signature: m.Signature,
	}
}

// References returns every type descriptor m mentions, in declaration order:
// result, parameters and thrown types for methods, parameters and thrown
// types for constructors, the value type for fields. Extra types follow the
// result or value type.
func (m Member) References() []TypeID {
	switch m.Kind {
	case MemberField:
		refs := make([]TypeID, 0, 1+len(m.Extra))
		if m.FieldType != "" {
			refs = append(refs, m.FieldType)
		}
		return append(refs, m.Extra...)
	case MemberMethod:
		refs := make([]TypeID, 0, 1+len(m.Extra)+len(m.Params)+len(m.Throws))
		if m.Result != "" {
			refs = append(refs, m.Result)
		}
		refs = append(refs, m.Extra...)
		refs = append(refs, m.Params...)
		return append(refs, m.Throws...)
	default:
		refs := make([]TypeID, 0, len(m.Extra)+len(m.Params)+len(m.Throws))
		refs = append(refs, m.Extra...)
		refs = append(refs, m.Params...)
		return append(refs, m.Throws...)
	}
}

// String renders the member as Declaring.Name(Signature).
func (m Member) String() string {
	if m.Kind == MemberField {
		return fmt.Sprintf("%s.%s", m.Declaring, m.Name)
	}
	return fmt.Sprintf("%s.%s(%s)", m.Declaring, m.Name, m.Signature)
}

// SignatureOf builds the conventional overload signature from parameter types.
func SignatureOf(params []TypeID) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}
