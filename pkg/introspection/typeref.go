package introspection

// Unknown is the name reported for references that do not resolve.
const Unknown = "UNKNOWN"

// UnwrapNamed strips NON_NULL and LIST wrappers and returns the innermost
// kind and name. A reference without a resolvable name yields
// (KindUnknown, Unknown).
func UnwrapNamed(ref *TypeRef) (Kind, string) {
	cur := ref
	for cur != nil && (cur.Kind == KindNonNull || cur.Kind == KindList) {
		cur = cur.OfType
	}
	if cur == nil || cur.Name == "" {
		return KindUnknown, Unknown
	}
	if cur.Kind == "" {
		return KindUnknown, cur.Name
	}
	return cur.Kind, cur.Name
}

// IsNonNull reports whether the outermost wrapper is NON_NULL. A list of
// non-null items ([T!]) is nullable at the list level and is not required.
func IsNonNull(ref *TypeRef) bool {
	return ref != nil && ref.Kind == KindNonNull
}

// HasListWrapper reports whether a LIST wrapper occurs before the named type.
func HasListWrapper(ref *TypeRef) bool {
	for cur := ref; cur != nil && (cur.Kind == KindNonNull || cur.Kind == KindList); cur = cur.OfType {
		if cur.Kind == KindList {
			return true
		}
	}
	return false
}

// String renders the reference in GraphQL type notation, e.g. [ID!]!.
func (r *TypeRef) String() string {
	if r == nil {
		return Unknown
	}
	switch r.Kind {
	case KindNonNull:
		return r.OfType.String() + "!"
	case KindList:
		return "[" + r.OfType.String() + "]"
	}
	if r.Name == "" {
		return Unknown
	}
	return r.Name
}
