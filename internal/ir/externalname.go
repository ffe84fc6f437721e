package ir

import (
	"fmt"

	"ssacore/internal/entity"
)

// ExternalNameKind discriminates how an external symbol is named.
type ExternalNameKind int

const (
	// NameUser identifies a symbol by an index into the module's
	// user-supplied external-name table (spec.md's UserExternalNameRef).
	NameUser ExternalNameKind = iota
	// NameTestCase is a short inline literal name used by unit tests and the
	// textual IR round-trip, avoiding a table indirection for throwaway
	// symbols.
	NameTestCase
	// NameLibCall identifies one of the compiler's own runtime helpers
	// (e.g. a software trap handler or libm stub).
	NameLibCall
)

// ExternalName names a function or data symbol outside the current Function.
type ExternalName struct {
	Kind     ExternalNameKind
	UserRef  entity.UserExternalNameRef // Kind == NameUser
	TestCase string                     // Kind == NameTestCase
	LibCall  string                     // Kind == NameLibCall
}

func (n ExternalName) String() string {
	switch n.Kind {
	case NameUser:
		return fmt.Sprintf("userextname%d", uint32(n.UserRef))
	case NameTestCase:
		return "%" + n.TestCase
	case NameLibCall:
		return "%" + n.LibCall
	default:
		return "<unknown external name>"
	}
}

// TLSModel is the thread-local-storage access model for a Linkage that
// targets TLS storage.
type TLSModel int

const (
	TLSModelNone TLSModel = iota
	TLSModelLocalExec
	TLSModelInitialExec
	TLSModelGeneralDynamic
)

func (m TLSModel) String() string {
	switch m {
	case TLSModelLocalExec:
		return "local_exec"
	case TLSModelInitialExec:
		return "initial_exec"
	case TLSModelGeneralDynamic:
		return "general_dynamic"
	default:
		return "none"
	}
}

// LinkageKind discriminates whether a GlobalValue names ordinary global data
// or thread-local storage.
type LinkageKind int

const (
	LinkageGlobal LinkageKind = iota
	LinkageTLS
)

// Linkage describes how an external symbol is stored and accessed.
type Linkage struct {
	Kind LinkageKind
	TLS  TLSModel // Kind == LinkageTLS
}
