package domain

// CatalogKind names a reference table held by the catalog store.
type CatalogKind string

const (
	KindJobTitle    CatalogKind = "jobtitle"
	KindProblemType CatalogKind = "problem"
	KindStatus      CatalogKind = "status"
	KindDepartment  CatalogKind = "department"
	KindOffice      CatalogKind = "office"
)

// CatalogKinds lists every kind in a stable order.
var CatalogKinds = []CatalogKind{
	KindJobTitle,
	KindProblemType,
	KindStatus,
	KindDepartment,
	KindOffice,
}

// Valid reports whether k is a known catalog kind.
func (k CatalogKind) Valid() bool {
	for _, kind := range CatalogKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Label is the human readable resource name used in error messages.
func (k CatalogKind) Label() string {
	switch k {
	case KindJobTitle:
		return "job title"
	case KindProblemType:
		return "problem type"
	case KindStatus:
		return "status"
	case KindDepartment:
		return "department"
	case KindOffice:
		return "office"
	default:
		return string(k)
	}
}

// Paired reports whether entries of this kind are only managed through job/problem pairs.
func (k CatalogKind) Paired() bool {
	return k == KindJobTitle || k == KindProblemType
}

// CatalogEntry is a plain id to name mapping.
type CatalogEntry struct {
	ID   int64
	Name string
}
