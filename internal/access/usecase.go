package access

import "context"

// Gate answers role predicates for an account. Every call reads the grant store once;
// any lookup failure denies.
type Gate interface {
	AllRolesGranted(ctx context.Context, email string, required []string) bool
	AnyRoleGranted(ctx context.Context, email string, candidates []string) bool
	AllGrantedLabels(ctx context.Context, email string) ([]string, error)
}
